package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"level-assessment-service/internal/app"
	"level-assessment-service/internal/domain"
)

var (
	errUnsupportedCommand = errors.New("unsupported command")
	errInvalidPayload     = errors.New("invalid payload")
)

// connection is the per-client state commands operate on.
type connection struct {
	user    domain.User
	session *app.Session
	send    func(msgType string, payload any)
}

type commandFunc func(ctx context.Context, c *connection, payload json.RawMessage) error

// Dispatcher maps action names to engine handlers.
type Dispatcher struct {
	handlers map[string]commandFunc
}

func newDispatcher(service *app.AssessmentService, teacher *app.TeacherAggregator) *Dispatcher {
	d := &Dispatcher{handlers: make(map[string]commandFunc)}
	d.register("start", startCommand(service))
	d.register("answer", answerCommand())
	d.register("results", resultsCommand(service))
	d.register("delete", deleteCommand(service))
	d.register("integrate", integrateCommand(service))
	d.register("teacher", teacherCommand(teacher))
	return d
}

func (d *Dispatcher) register(action string, fn commandFunc) {
	d.handlers[action] = fn
}

// Dispatch runs the handler registered for action.
func (d *Dispatcher) Dispatch(ctx context.Context, c *connection, action string, payload json.RawMessage) error {
	fn, ok := d.handlers[action]
	if !ok {
		return fmt.Errorf("%w: %q", errUnsupportedCommand, action)
	}
	return fn(ctx, c, payload)
}

func decodePayload(raw json.RawMessage, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidPayload, err)
	}
	return nil
}

type startPayload struct {
	Variant string `json:"variant"`
}

func startCommand(service *app.AssessmentService) commandFunc {
	return func(ctx context.Context, c *connection, raw json.RawMessage) error {
		var payload startPayload
		if err := decodePayload(raw, &payload); err != nil {
			return err
		}
		if c.session == nil {
			c.session = service.NewSession(ctx)
		}
		if err := c.session.Start(ctx, payload.Variant); err != nil {
			return err
		}
		c.send("session", toSessionView(c.session.Snapshot()))
		if q, ok := c.session.CurrentQuestion(); ok {
			c.send("question", toQuestionView(q))
		}
		return nil
	}
}

type answerPayload struct {
	SelectedIndex *int `json:"selectedIndex"`
}

func answerCommand() commandFunc {
	return func(ctx context.Context, c *connection, raw json.RawMessage) error {
		var payload answerPayload
		if err := decodePayload(raw, &payload); err != nil {
			return err
		}
		if payload.SelectedIndex == nil {
			return fmt.Errorf("%w: selectedIndex required", errInvalidPayload)
		}
		if c.session == nil {
			return domain.ErrSessionNotInProgress
		}
		answer, result, err := c.session.SubmitAnswer(ctx, *payload.SelectedIndex)
		if result == nil && err != nil {
			return err
		}
		c.send("answerResult", toAnswerView(answer))
		if result == nil {
			if q, ok := c.session.CurrentQuestion(); ok {
				c.send("question", toQuestionView(q))
			}
			return nil
		}
		if err != nil {
			// the run is complete even if the local write failed
			log.Printf("session %s: %v", c.session.ID(), err)
		}
		desc, _ := c.session.Descriptor()
		c.send("completed", completedView{Result: toResultView(*result), Descriptor: desc})
		return nil
	}
}

func resultsCommand(service *app.AssessmentService) commandFunc {
	return func(ctx context.Context, c *connection, _ json.RawMessage) error {
		results, err := service.Results().List(ctx)
		if err != nil {
			return err
		}
		c.send("results", toResultViews(results))
		return nil
	}
}

type deletePayload struct {
	ID      int64 `json:"id"`
	Confirm bool  `json:"confirm"`
}

func deleteCommand(service *app.AssessmentService) commandFunc {
	return func(ctx context.Context, c *connection, raw json.RawMessage) error {
		var payload deletePayload
		if err := decodePayload(raw, &payload); err != nil {
			return err
		}
		ctx = app.WithNotifier(ctx, answeredConfirm{Notifier: notifierFor(c), answer: payload.Confirm})
		if err := service.Results().Delete(ctx, payload.ID); err != nil {
			return err
		}
		c.send("deleted", map[string]int64{"id": payload.ID})
		return nil
	}
}

type integratePayload struct {
	Level       string `json:"level"`
	Description string `json:"description"`
}

func integrateCommand(service *app.AssessmentService) commandFunc {
	return func(ctx context.Context, c *connection, raw json.RawMessage) error {
		var payload integratePayload
		if err := decodePayload(raw, &payload); err != nil {
			return err
		}
		desc := domain.Descriptor{Level: payload.Level, Description: payload.Description}
		if desc.Level == "" {
			latest, err := service.Results().LatestDescriptor(ctx)
			if err != nil {
				return err
			}
			desc = latest
		}
		if err := service.Results().IntegrateLevel(ctx, desc.Level, desc.Description); err != nil {
			return err
		}
		c.send("integrated", desc)
		return nil
	}
}

func teacherCommand(teacher *app.TeacherAggregator) commandFunc {
	return func(ctx context.Context, c *connection, _ json.RawMessage) error {
		panel, err := teacher.Render(ctx)
		if err != nil {
			return err
		}
		c.send("teacherView", panel)
		return nil
	}
}
