package goals

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ayush/goalsetter/internal/apperr"
	"github.com/ayush/goalsetter/internal/models"
	"github.com/ayush/goalsetter/internal/store"
)

const msgTextRequired = "Please enter a goal"

// Store defines the interface for goal persistence.
type Store interface {
	FindByOwner(ctx context.Context, userID string) ([]models.Goal, error)
	FindByID(ctx context.Context, id string) (*models.Goal, error)
	Create(ctx context.Context, text, ownerID string) (*models.Goal, error)
	UpdateFields(ctx context.Context, id string, upd models.GoalUpdate) (*models.Goal, error)
	DeleteByID(ctx context.Context, id string) error
}

// Service applies the ownership guard around every goal store call.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, caller models.Identity) ([]models.Goal, error) {
	goals, err := s.store.FindByOwner(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

func (s *Service) Create(ctx context.Context, caller models.Identity, text string) (*models.Goal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation(msgTextRequired)
	}
	goal, err := s.store.Create(ctx, text, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	return goal, nil
}

func (s *Service) Get(ctx context.Context, caller models.Identity, id string) (*models.Goal, error) {
	goal, err := s.authorized(ctx, caller, id, OpRead)
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// Update applies the fields present in upd. The owner is not updatable.
func (s *Service) Update(ctx context.Context, caller models.Identity, id string, upd models.GoalUpdate) (*models.Goal, error) {
	goal, err := s.authorized(ctx, caller, id, OpUpdate)
	if err != nil {
		return nil, err
	}

	if upd.Text != nil {
		text := strings.TrimSpace(*upd.Text)
		if text == "" {
			return nil, apperr.Validation(msgTextRequired)
		}
		upd.Text = &text
	}
	if upd.Empty() {
		return goal, nil
	}

	updated, err := s.store.UpdateFields(ctx, id, upd)
	if err != nil {
		return nil, storeErr("update goal", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, caller models.Identity, id string) error {
	if _, err := s.authorized(ctx, caller, id, OpDelete); err != nil {
		return err
	}
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return storeErr("delete goal", err)
	}
	return nil
}

// authorized loads the goal and runs the guard. It returns the goal only
// when the guard allows op.
func (s *Service) authorized(ctx context.Context, caller models.Identity, id string, op Operation) (*models.Goal, error) {
	goal, err := s.store.FindByID(ctx, id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("find goal: %w", err)
	}
	if err := Authorize(ctx, goal, caller, op); err != nil {
		return nil, err
	}
	return goal, nil
}

// storeErr maps a goal vanishing between the guard and the write to 404.
func storeErr(op string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound(msgGoalNotFound).Wrap(err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
