package goals

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayush/goalsetter/internal/models"
	"github.com/ayush/goalsetter/internal/store"
)

type fakeStore struct {
	mu      sync.Mutex
	goals   map[string]models.Goal
	writes  int
	findErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{goals: map[string]models.Goal{}}
}

func (f *fakeStore) FindByOwner(_ context.Context, userID string) ([]models.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Goal{}
	for _, g := range f.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeStore) FindByID(_ context.Context, id string) (*models.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	g, ok := f.goals[id]
	if !ok {
		return nil, fmt.Errorf("goal %s: %w", id, store.ErrNotFound)
	}
	return &g, nil
}

func (f *fakeStore) Create(_ context.Context, text, ownerID string) (*models.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	now := time.Now().UTC()
	g := models.Goal{ID: primitive.NewObjectID(), UserID: ownerID, Text: text, CreatedAt: now, UpdatedAt: now}
	f.goals[g.ID.Hex()] = g
	return &g, nil
}

func (f *fakeStore) UpdateFields(_ context.Context, id string, upd models.GoalUpdate) (*models.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.goals[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	f.writes++
	if upd.Text != nil {
		g.Text = *upd.Text
	}
	g.UpdatedAt = time.Now().UTC()
	f.goals[id] = g
	return &g, nil
}

func (f *fakeStore) DeleteByID(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.goals[id]; !ok {
		return store.ErrNotFound
	}
	f.writes++
	delete(f.goals, id)
	return nil
}

func (f *fakeStore) put(owner, text string) models.Goal {
	g, _ := f.Create(context.Background(), text, owner)
	f.mu.Lock()
	f.writes--
	f.mu.Unlock()
	return *g
}

type fakeFiles struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	failPut bool
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeFiles) Upload(_ context.Context, key string, data []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPut {
		return errors.New("minio unavailable")
	}
	f.objects[key] = data
	f.types[key] = contentType
	return nil
}

func (f *fakeFiles) Download(_ context.Context, key string) ([]byte, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return nil, "", fmt.Errorf("object %s: %w", key, store.ErrNotFound)
	}
	return data, f.types[key], nil
}
