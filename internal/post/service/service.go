package service

import (
	"context"

	"github.com/openpress/post-service/internal/post"
	"github.com/openpress/post-service/internal/post/repository"
)

// Service runs one request worth of orchestration per call: validate or
// guard first, touch the store only afterwards. It holds no state across
// requests; the repository is injected at construction and its lifecycle
// belongs to the composing application.
type Service interface {
	// Create validates the raw payload and persists a new post.
	Create(ctx context.Context, payload []byte) (*post.Post, error)
	// List resolves the raw page parameter and returns that page
	// most-recent-first with bodies cut to preview length, plus the
	// last page number for the caller to surface out of band.
	List(ctx context.Context, rawPage string) ([]*post.Post, int64, error)
	// Get returns the post named by the raw identifier.
	Get(ctx context.Context, rawID string) (*post.Post, error)
	// Update merges the validated patch into the stored post and returns
	// the result. A patch carrying no fields returns the post unchanged.
	Update(ctx context.Context, rawID string, payload []byte) (*post.Post, error)
	// Delete removes the post; deleting an id that does not exist still
	// succeeds.
	Delete(ctx context.Context, rawID string) error
}

func New(repo repository.Repository) Service {
	return &postService{repo: repo}
}

type postService struct {
	repo repository.Repository
}

func (s *postService) Create(ctx context.Context, payload []byte) (*post.Post, error) {
	p, err := post.ValidateCreate(payload)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &post.Post{
		Title: *p.Title,
		Body:  *p.Body,
		Tags:  *p.Tags,
	})
}

func (s *postService) List(ctx context.Context, rawPage string) ([]*post.Post, int64, error) {
	page, err := post.ResolvePage(rawPage)
	if err != nil {
		return nil, 0, err
	}
	posts, err := s.repo.FindPage(ctx, post.PageSize, post.PageOffset(page))
	if err != nil {
		return nil, 0, err
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	for _, p := range posts {
		p.Body = post.Preview(p.Body)
	}
	return posts, post.LastPage(count), nil
}

func (s *postService) Get(ctx context.Context, rawID string) (*post.Post, error) {
	id, err := post.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *postService) Update(ctx context.Context, rawID string, payload []byte) (*post.Post, error) {
	id, err := post.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	patch, err := post.ValidateUpdate(payload)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return s.repo.FindByID(ctx, id)
	}
	return s.repo.UpdateByID(ctx, id, patch)
}

func (s *postService) Delete(ctx context.Context, rawID string) error {
	id, err := post.ParseID(rawID)
	if err != nil {
		return err
	}
	return s.repo.DeleteByID(ctx, id)
}
