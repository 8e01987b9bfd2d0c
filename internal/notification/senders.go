package notification

import (
	"context"
	"log"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SMSSender interface {
	Send(ctx context.Context, phone, body string) error
}

type PushSender interface {
	Send(ctx context.Context, clientID uint64, title, body string) error
}

// Log-backed senders stand in until a real SMTP/SMS/push provider is
// configured; they always succeed.

type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, body string) error {
	log.Printf("mail: to=%s subject=%q", to, subject)
	log.Printf("mail: %s", body)
	return nil
}

type LogSMSSender struct{}

func (LogSMSSender) Send(_ context.Context, phone, body string) error {
	log.Printf("sms: to=%s body=%q", phone, body)
	return nil
}

type LogPushSender struct{}

func (LogPushSender) Send(_ context.Context, clientID uint64, title, body string) error {
	log.Printf("push: client=%d title=%q body=%q", clientID, title, body)
	return nil
}
