package post

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is the persistent post model. The store assigns the ObjectID at
// creation; it never changes afterwards.
type Post struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Body      string             `json:"body" bson:"body"`
	Tags      []string           `json:"tags" bson:"tags"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreatePayload is the decoded body of a create request. Pointer fields
// keep "absent" distinguishable from "present but empty" so the validator
// can enforce required fields without reflection.
type CreatePayload struct {
	Title *string   `json:"title"`
	Body  *string   `json:"body"`
	Tags  *[]string `json:"tags"`
}

// UpdatePayload is the decoded body of a merge-update request. Every field
// is optional; nil means "leave the stored value alone".
type UpdatePayload struct {
	Title *string   `json:"title"`
	Body  *string   `json:"body"`
	Tags  *[]string `json:"tags"`
}

// Empty reports whether the patch carries no fields at all.
func (u UpdatePayload) Empty() bool {
	return u.Title == nil && u.Body == nil && u.Tags == nil
}
