// Package mail delivers download links for finished curricula and keeps the
// marketing audience in sync. Delivery is best effort: a mail failure never
// fails a generation run.
package mail

import (
	"context"
	"log/slog"

	"github.com/currforge/currforge/curriculum"
)

// Notifier sends the completion email for a finished run.
type Notifier interface {
	SendCurriculum(ctx context.Context, email string, result *curriculum.RequestResult) error
}

// Noop is a Notifier that does nothing beyond logging. Used when mail is
// disabled in config.
type Noop struct {
	Log *slog.Logger
}

func (n Noop) SendCurriculum(ctx context.Context, email string, result *curriculum.RequestResult) error {
	if n.Log != nil {
		n.Log.Info("mail disabled, skipping delivery", "email", email, "documents", len(result.Documents()))
	}
	return nil
}
