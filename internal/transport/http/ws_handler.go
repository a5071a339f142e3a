package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"level-assessment-service/internal/app"
	"level-assessment-service/internal/domain"
)

type WSHandler struct {
	service    *app.AssessmentService
	dispatcher *Dispatcher
	upgrader   websocket.Upgrader
}

func NewWSHandler(service *app.AssessmentService, teacher *app.TeacherAggregator) *WSHandler {
	return &WSHandler{
		service:    service,
		dispatcher: newDispatcher(service, teacher),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// ServeWS upgrades HTTP requests to websockets and routes client commands
// through the dispatch table. Identity comes from the query string, as set by
// the auth gateway in front of the service.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var user *domain.User
	if email := q.Get("email"); email != "" {
		u := domain.NewUser(email, q.Get("role"), q.Get("name"))
		user = &u
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage, 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	client := &connection{
		send: func(msgType string, payload any) {
			select {
			case send <- outboundMessage{Type: msgType, Payload: payload}:
			case <-writerDone:
			}
		},
	}

	ctx := r.Context()
	if user != nil {
		client.user = *user
		ctx = app.WithUser(ctx, *user)
	}
	ctx = app.WithNotifier(ctx, notifierFor(client))

	client.send("ready", map[string]any{"role": client.user.Role, "variants": domain.Variants})

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if err := h.dispatcher.Dispatch(ctx, client, inbound.Type, inbound.Payload); err != nil {
			code, message := describeError(err)
			if code == "internal" {
				log.Printf("ws command %s failed: %v", inbound.Type, err)
			}
			client.send("error", errorPayload{Command: inbound.Type, Code: code, Message: message})
		}
	}

	close(send)
	<-writerDone
}
