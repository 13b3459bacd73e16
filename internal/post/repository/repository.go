package repository

import (
	"context"

	"github.com/openpress/post-service/internal/post"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository is the store contract the service layer consumes. Absence of
// a post surfaces as post.ErrNotFound where noted; every other error is a
// store failure.
type Repository interface {
	// Create persists the post and returns it with its assigned id and
	// store-stamped timestamps.
	Create(ctx context.Context, p *post.Post) (*post.Post, error)
	// FindPage returns up to limit posts ordered most-recent-first,
	// skipping offset. An empty slice is a valid result.
	FindPage(ctx context.Context, limit, offset int64) ([]*post.Post, error)
	// Count returns the total number of stored posts.
	Count(ctx context.Context) (int64, error)
	// FindByID returns post.ErrNotFound when no post matches.
	FindByID(ctx context.Context, id primitive.ObjectID) (*post.Post, error)
	// UpdateByID merges the supplied fields into the stored record and
	// returns the record after the merge; post.ErrNotFound when absent.
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch post.UpdatePayload) (*post.Post, error)
	// DeleteByID removes the post. Deleting a nonexistent id is a no-op
	// success, not an error.
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}
