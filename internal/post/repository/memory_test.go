package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/openpress/post-service/internal/post"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strp(s string) *string { return &s }

func TestMemoryRepoCRUD(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()

	created, err := r.Create(ctx, &post.Post{Title: "A", Body: "B", Tags: []string{"x"}})
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())
	require.False(t, created.CreatedAt.IsZero())

	got, err := r.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "A", got.Title)
	require.Equal(t, "B", got.Body)
	require.Equal(t, []string{"x"}, got.Tags)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	updated, err := r.UpdateByID(ctx, created.ID, post.UpdatePayload{Title: strp("new")})
	require.NoError(t, err)
	require.Equal(t, "new", updated.Title)
	require.Equal(t, "B", updated.Body)
	require.Equal(t, []string{"x"}, updated.Tags)

	require.NoError(t, r.DeleteByID(ctx, created.ID))
	_, err = r.FindByID(ctx, created.ID)
	require.ErrorIs(t, err, post.ErrNotFound)
}

func TestMemoryRepo_FindPageOrderAndBounds(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	for i := 0; i < 11; i++ {
		_, err := r.Create(ctx, &post.Post{Title: fmt.Sprintf("p%d", i), Body: "b", Tags: []string{}})
		require.NoError(t, err)
	}

	first, err := r.FindPage(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, first, 10)
	// most recent first: the last insert leads the page
	require.Equal(t, "p10", first[0].Title)
	require.Equal(t, "p1", first[9].Title)

	second, err := r.FindPage(ctx, 10, 10)
	require.NoError(t, err)
	require.Len(t, second, 1)
	require.Equal(t, "p0", second[0].Title)

	third, err := r.FindPage(ctx, 10, 20)
	require.NoError(t, err)
	require.Empty(t, third)
}

func TestMemoryRepo_DeleteNonexistentIsNoop(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	require.NoError(t, r.DeleteByID(ctx, primitive.NewObjectID()))
}

func TestMemoryRepo_UpdateNonexistent(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	_, err := r.UpdateByID(ctx, primitive.NewObjectID(), post.UpdatePayload{Title: strp("x")})
	require.ErrorIs(t, err, post.ErrNotFound)
}

func TestMemoryRepo_HandsOutCopies(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	created, err := r.Create(ctx, &post.Post{Title: "A", Body: "B", Tags: []string{"x"}})
	require.NoError(t, err)

	got, err := r.FindByID(ctx, created.ID)
	require.NoError(t, err)
	got.Body = "mutated"
	got.Tags[0] = "mutated"

	again, err := r.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "B", again.Body)
	require.Equal(t, []string{"x"}, again.Tags)
}
