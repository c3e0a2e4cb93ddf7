package application

import (
	"context"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/go-community-events/internal/domain/repository"
	"github.com/oksasatya/go-community-events/pkg/notify"
)

func send(n Notifier, logger *logrus.Logger, to, subject, body string) {
	if n == nil || to == "" {
		return
	}
	if !n.Notify(notify.Message{To: to, Subject: subject, Body: body}) && logger != nil {
		logger.WithFields(logrus.Fields{"to": to, "subject": subject}).Warn("notification not queued")
	}
}

// notifyUsers resolves ids to addresses and queues one message per distinct user.
// Lookup failures are logged and never reach the caller.
func notifyUsers(ctx context.Context, users repo.UserRepository, n Notifier, logger *logrus.Logger, ids []string, subject, body string) {
	if n == nil || len(ids) == 0 {
		return
	}
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	recipients, err := users.ListByIDs(ctx, unique)
	if err != nil {
		if logger != nil {
			logger.WithError(err).WithField("subject", subject).Warn("resolve notification recipients failed")
		}
		return
	}
	for _, u := range recipients {
		send(n, logger, u.Email, subject, body)
	}
}
