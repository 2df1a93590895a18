package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal is a single goal document stored in MongoDB.
type Goal struct {
	ID        primitive.ObjectID `json:"id"         bson:"_id,omitempty"`
	UserID    string             `json:"user"       bson:"user"`
	Text      string             `json:"text"       bson:"text"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// GoalRequest is the JSON body for POST /api/goals.
type GoalRequest struct {
	Text string `json:"text"`
}

// GoalUpdate is the JSON body for PUT /api/goals/{id}. Nil fields are left
// untouched. The owner is not part of it, so a "user" key in the body is
// dropped during decoding.
type GoalUpdate struct {
	Text *string `json:"text,omitempty"`
}

// Empty reports whether the update carries no fields.
func (u GoalUpdate) Empty() bool {
	return u.Text == nil
}
