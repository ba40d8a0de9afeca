// Package alert forwards conditions that need an operator: unknown codes,
// inconsistent pricing, upstream failures.
package alert

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

type Notifier interface {
	Notify(kind string, err error)
}

// Sender delivers a plain text message to a chat.
type Sender interface {
	SendText(chatID int64, text string) error
}

type Multi []Notifier

func (m Multi) Notify(kind string, err error) {
	for _, n := range m {
		n.Notify(kind, err)
	}
}

// Operator messages the operator chat. Delivery failures are only logged.
type Operator struct {
	send   Sender
	chatID int64
	log    *zap.Logger
}

func NewOperator(send Sender, chatID int64, log *zap.Logger) *Operator {
	return &Operator{send: send, chatID: chatID, log: log}
}

func (o *Operator) Notify(kind string, err error) {
	o.text(fmt.Sprintf("⚠️ %s: %v", kind, err))
}

func (o *Operator) Started(version string) {
	o.text("Бот запущен, версия " + version)
}

func (o *Operator) text(msg string) {
	if err := o.send.SendText(o.chatID, msg); err != nil {
		o.log.Warn("operator alert not delivered", zap.Error(err))
	}
}

// Sentry reports to Sentry. Use InitSentry first.
type Sentry struct{}

func (Sentry) Notify(kind string, err error) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("kind", kind)
		sentry.CaptureException(err)
	})
}

// InitSentry returns nil and no notifier when dsn is empty.
func InitSentry(dsn, release string, log *zap.Logger) (Notifier, error) {
	if dsn == "" {
		log.Info("sentry disabled")
		return nil, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:     dsn,
		Release: release,
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			if event.Request != nil {
				event.Request.QueryString = ""
			}
			return event
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sentry init: %w", err)
	}
	return Sentry{}, nil
}

func FlushSentry() {
	sentry.Flush(2 * time.Second)
}
