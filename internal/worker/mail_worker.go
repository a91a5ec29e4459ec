package worker

// mail_worker.go
// Processes order confirmation mail jobs from QueueOrderMail.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/infra"
)

// MailWorker sends order confirmation mails via SMTP.
type MailWorker struct {
	mailer *infra.Mailer
}

func NewMailWorker(mailer *infra.Mailer) *MailWorker {
	return &MailWorker{mailer: mailer}
}

// Process sends the confirmation mail for one submitted order.
func (w *MailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload OrderMailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("mail_worker: invalid payload: %w", err)
	}
	if payload.ToEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("Order #%d confirmed", payload.OrderNumber)
	body := fmt.Sprintf("Order #%d for %s has been accepted.\nOrder total: %s\n",
		payload.OrderNumber, payload.Customer, payload.Total)
	return w.mailer.Send(payload.ToEmail, subject, body)
}
