package notify

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogSink records messages instead of delivering them. Used when no broker is configured.
type LogSink struct {
	Logger *logrus.Logger
}

func (s LogSink) Send(_ context.Context, to, subject, body string) error {
	s.Logger.WithFields(logrus.Fields{"to": to, "subject": subject, "body_len": len(body)}).Info("notification (log only)")
	return nil
}
