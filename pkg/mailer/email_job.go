package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for the email worker.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html,omitempty"`
}

var ErrInvalidJob = errors.New("email job needs a recipient and a subject")

// Validate reports whether the worker can deliver the job.
func (j EmailJob) Validate() error {
	if strings.TrimSpace(j.To) == "" || !strings.Contains(j.To, "@") || strings.TrimSpace(j.Subject) == "" {
		return ErrInvalidJob
	}
	return nil
}

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueSink hands notifications to the email worker through the broker. It implements
// notify.Sink.
type QueueSink struct {
	Pub Publisher
}

func NewQueueSink(pub Publisher) *QueueSink {
	return &QueueSink{Pub: pub}
}

func (s *QueueSink) Send(ctx context.Context, to, subject, body string) error {
	job := EmailJob{To: to, Subject: subject, Text: body}
	if err := job.Validate(); err != nil {
		return err
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		return fmt.Errorf("publish email job: %w", err)
	}
	return nil
}
