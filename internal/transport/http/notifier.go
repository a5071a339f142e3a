package http

import (
	"context"

	"level-assessment-service/internal/app"
)

// connNotifier pushes notices to the client as "notice" messages.
// Confirmations are answered by the command payload, so the default is no.
type connNotifier struct {
	c *connection
}

func notifierFor(c *connection) connNotifier {
	return connNotifier{c: c}
}

func (n connNotifier) Alert(_ context.Context, message string) {
	n.c.send("notice", noticePayload{Message: message})
}

func (n connNotifier) Confirm(context.Context, string) bool {
	return false
}

// answeredConfirm carries the user's answer to a confirmation prompt sent with the request.
type answeredConfirm struct {
	app.Notifier
	answer bool
}

func (a answeredConfirm) Confirm(context.Context, string) bool {
	return a.answer
}

// collectingNotifier records notices raised while serving a REST request.
type collectingNotifier struct {
	notices *[]string
	confirm bool
}

func (n collectingNotifier) Alert(_ context.Context, message string) {
	*n.notices = append(*n.notices, message)
}

func (n collectingNotifier) Confirm(context.Context, string) bool {
	return n.confirm
}
