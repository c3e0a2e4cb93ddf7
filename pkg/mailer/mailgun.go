package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun sends jobs through the Mailgun API.
type Mailgun struct {
	client  *mg.MailgunImpl
	Sender  string
	Timeout time.Duration
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{client: mg.NewMailgun(domain, apiKey), Sender: sender, Timeout: 10 * time.Second}
}

// Deliver sends one job. The HTML part is attached only when the job carries one.
func (m *Mailgun) Deliver(ctx context.Context, job EmailJob) error {
	if err := job.Validate(); err != nil {
		return err
	}
	msg := m.client.NewMessage(m.Sender, job.Subject, job.Text, job.To)
	if job.HTML != "" {
		msg.SetHtml(job.HTML)
	}
	c, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()
	_, _, err := m.client.Send(c, msg)
	return err
}
