package goals

import (
	"context"
	"log/slog"

	"github.com/ayush/goalsetter/internal/apperr"
	"github.com/ayush/goalsetter/internal/models"
)

// Operation names what the caller wants to do with a goal.
type Operation string

const (
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

const (
	msgGoalNotFound  = "Goal not found"
	msgNotAuthorized = "User not authorized"
)

// Authorize decides whether caller may perform op on goal. A nil goal is
// reported as not found. Callers must return on a non-nil error before
// touching or disclosing the goal.
func Authorize(ctx context.Context, goal *models.Goal, caller models.Identity, op Operation) error {
	if goal == nil {
		return apperr.NotFound(msgGoalNotFound)
	}
	if caller.ID == "" || goal.UserID != caller.ID {
		slog.WarnContext(ctx, "goal access denied",
			"goal_id", goal.ID.Hex(),
			"caller_id", caller.ID,
			"op", string(op),
		)
		return apperr.NotAuthorized(msgNotAuthorized)
	}
	return nil
}
