package notification

import (
	"context"
	"fmt"
	"log"

	"cfc-deblocages/internal/domain/alert"
	"cfc-deblocages/internal/domain/client"
	"cfc-deblocages/internal/domain/loan"
)

// Service is the default Sink: it loads the alert with its loan and
// client, pushes the message through every configured channel and records
// which channels went out on the alert row.
type Service struct {
	alerts  alert.Repository
	loans   loan.Repository
	clients client.Repository

	mailer Mailer
	sms    SMSSender
	push   PushSender

	adminEmail string
}

func NewService(alerts alert.Repository, loans loan.Repository, clients client.Repository,
	mailer Mailer, sms SMSSender, push PushSender, adminEmail string) *Service {
	return &Service{
		alerts:     alerts,
		loans:      loans,
		clients:    clients,
		mailer:     mailer,
		sms:        sms,
		push:       push,
		adminEmail: adminEmail,
	}
}

func (s *Service) Dispatch(ctx context.Context, alertID uint64) (Receipt, error) {
	a, err := s.alerts.GetByID(ctx, alertID)
	if err != nil {
		return Receipt{}, fmt.Errorf("load alert %d: %w", alertID, err)
	}
	l, err := s.loans.GetByID(ctx, a.LoanID)
	if err != nil {
		return Receipt{}, fmt.Errorf("load loan %d: %w", a.LoanID, err)
	}
	c, err := s.clients.GetByID(ctx, l.ClientID)
	if err != nil {
		return Receipt{}, fmt.Errorf("load client %d: %w", l.ClientID, err)
	}

	subject := fmt.Sprintf("Alerte CFC - %s", a.Type)
	var rcpt Receipt

	if c.Email != "" {
		if err := s.mailer.Send(ctx, c.Email, subject, clientBody(a, l, c)); err != nil {
			log.Printf("notification: email to %s: %v", c.Email, err)
		} else {
			rcpt.Email = true
		}
	}
	if c.Phone != "" {
		if err := s.sms.Send(ctx, c.Phone, smsBody(a, l)); err != nil {
			log.Printf("notification: sms to %s: %v", c.Phone, err)
		} else {
			rcpt.SMS = true
		}
	}
	if err := s.push.Send(ctx, c.ID, subject, a.Message); err != nil {
		log.Printf("notification: push to client %d: %v", c.ID, err)
	} else {
		rcpt.Push = true
	}

	if s.adminEmail != "" {
		if err := s.mailer.Send(ctx, s.adminEmail, "[CFC Admin] "+subject, adminBody(a, l, c)); err != nil {
			log.Printf("notification: admin email: %v", err)
		}
	}

	a.EmailSent = rcpt.Email
	a.SMSSent = rcpt.SMS
	if err := s.alerts.Save(ctx, a); err != nil {
		log.Printf("notification: save sent flags for alert %d: %v", a.ID, err)
	}
	return rcpt, nil
}

func clientBody(a *alert.Alert, l *loan.Loan, c *client.Client) string {
	return fmt.Sprintf("Bonjour %s,\n\nPrêt %s (%s):\n%s\n\nCFC Déblocages",
		c.Name, l.LoanNumber, l.Type, a.Message)
}

func smsBody(a *alert.Alert, l *loan.Loan) string {
	return fmt.Sprintf("CFC - Prêt %s: %s", l.LoanNumber, a.Message)
}

func adminBody(a *alert.Alert, l *loan.Loan, c *client.Client) string {
	return fmt.Sprintf("Alerte %s (%s)\nPrêt: %s\nClient: %s (%s)\n%s",
		a.Type, a.Severity, l.LoanNumber, c.Name, c.ClientNumber, a.Message)
}
