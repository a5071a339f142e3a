package app

import (
	"context"
	"log"
)

// User-facing advisory text. Raw transport errors never reach the user.
const (
	NoticeTeacherCannotTakeTest = "Teachers can review student results but cannot take the test."
	NoticeTestNotStarted        = "Please start a test first."
	NoticeTestFinished          = "This test is already finished. Start a new one to try again."
	NoticeInvalidOption         = "Please choose one of the four options."
	NoticeIntegrateFailed       = "We couldn't save your level right now. Please try again."
	NoticeTeacherFetchFailed    = "Could not load student results. Please try again later."
	ConfirmDeleteResult         = "Delete this result? This cannot be undone."
)

// Notifier is the alert/confirm surface of the presentation layer.
type Notifier interface {
	Alert(ctx context.Context, message string)
	Confirm(ctx context.Context, message string) bool
}

// LogNotifier writes alerts to the log and answers confirmations with AutoConfirm.
type LogNotifier struct {
	AutoConfirm bool
}

func (n LogNotifier) Alert(_ context.Context, message string) {
	log.Printf("notice: %s", message)
}

func (n LogNotifier) Confirm(_ context.Context, message string) bool {
	log.Printf("confirm %q -> %v", message, n.AutoConfirm)
	return n.AutoConfirm
}

type notifierKey struct{}

// WithNotifier routes notices raised while handling ctx to n.
func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, notifierKey{}, n)
}

// ContextNotifier delegates to the notifier attached to the context, or Fallback.
type ContextNotifier struct {
	Fallback Notifier
}

func (c ContextNotifier) Alert(ctx context.Context, message string) {
	c.resolve(ctx).Alert(ctx, message)
}

func (c ContextNotifier) Confirm(ctx context.Context, message string) bool {
	return c.resolve(ctx).Confirm(ctx, message)
}

func (c ContextNotifier) resolve(ctx context.Context) Notifier {
	if n, ok := ctx.Value(notifierKey{}).(Notifier); ok && n != nil {
		return n
	}
	if c.Fallback != nil {
		return c.Fallback
	}
	return LogNotifier{}
}
