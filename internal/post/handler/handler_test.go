package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/openpress/post-service/internal/post"
	"github.com/openpress/post-service/internal/post/repository"
	"github.com/openpress/post-service/internal/post/service"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newServer(t *testing.T) (*gin.Engine, *repository.MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	g := gin.New()
	repo := repository.NewMemoryRepo()
	RegisterPostRoutes(g, service.New(repo))
	return g, repo
}

func do(g *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func TestCreatePost(t *testing.T) {
	g, _ := newServer(t)

	w := do(g, http.MethodPost, "/posts", `{"title":"A","body":"B","tags":["x"]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created post.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.False(t, created.ID.IsZero())
	require.Equal(t, "A", created.Title)
	require.Equal(t, "B", created.Body)
	require.Equal(t, []string{"x"}, created.Tags)
}

func TestCreatePost_InvalidPayload(t *testing.T) {
	g, repo := newServer(t)

	w := do(g, http.MethodPost, "/posts", `{"body":"B","tags":[]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error  string            `json:"error"`
		Fields []post.FieldError `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Contains(t, resp.Fields, post.FieldError{Field: "title", Reason: "required"})

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestListPosts_PaginationAndTruncation(t *testing.T) {
	g, repo := newServer(t)

	long := strings.Repeat("z", 250)
	for i := 0; i < 11; i++ {
		_, err := repo.Create(context.Background(), &post.Post{Title: fmt.Sprintf("p%d", i), Body: long, Tags: []string{}})
		require.NoError(t, err)
	}

	w := do(g, http.MethodGet, "/posts", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "2", w.Header().Get("Last-Page"))

	var page []post.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page, 10)
	require.Equal(t, "p10", page[0].Title)
	for _, p := range page {
		require.Equal(t, strings.Repeat("z", 200)+"...", p.Body)
	}

	w = do(g, http.MethodGet, "/posts?page=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "2", w.Header().Get("Last-Page"))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page, 1)
	require.Equal(t, "p0", page[0].Title)
}

func TestListPosts_Empty(t *testing.T) {
	g, _ := newServer(t)

	w := do(g, http.MethodGet, "/posts", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "0", w.Header().Get("Last-Page"))
	require.JSONEq(t, `[]`, w.Body.String())
}

func TestListPosts_InvalidPage(t *testing.T) {
	g, _ := newServer(t)
	for _, q := range []string{"0", "-1", "abc"} {
		w := do(g, http.MethodGet, "/posts?page="+q, "")
		require.Equal(t, http.StatusBadRequest, w.Code, "page=%s", q)
	}
}

func TestGetPost(t *testing.T) {
	g, repo := newServer(t)
	created, err := repo.Create(context.Background(), &post.Post{Title: "A", Body: "B", Tags: []string{"x"}})
	require.NoError(t, err)

	w := do(g, http.MethodGet, "/posts/"+created.ID.Hex(), "")
	require.Equal(t, http.StatusOK, w.Code)

	var got post.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "B", got.Body)
}

func TestGetPost_MalformedID(t *testing.T) {
	g, _ := newServer(t)
	w := do(g, http.MethodGet, "/posts/not-an-id", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPost_NotFound(t *testing.T) {
	g, _ := newServer(t)
	w := do(g, http.MethodGet, "/posts/"+primitive.NewObjectID().Hex(), "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdatePost_MergesFields(t *testing.T) {
	g, repo := newServer(t)
	created, err := repo.Create(context.Background(), &post.Post{Title: "A", Body: "B", Tags: []string{"x"}})
	require.NoError(t, err)

	w := do(g, http.MethodPatch, "/posts/"+created.ID.Hex(), `{"title":"new"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got post.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "new", got.Title)
	require.Equal(t, "B", got.Body)
	require.Equal(t, []string{"x"}, got.Tags)
}

func TestUpdatePost_Failures(t *testing.T) {
	g, repo := newServer(t)
	created, err := repo.Create(context.Background(), &post.Post{Title: "A", Body: "B", Tags: []string{}})
	require.NoError(t, err)

	// malformed id
	w := do(g, http.MethodPatch, "/posts/xyz", `{"title":"new"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// bad payload type
	w = do(g, http.MethodPatch, "/posts/"+created.ID.Hex(), `{"title":5}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// well-formed but unknown id
	w = do(g, http.MethodPatch, "/posts/"+primitive.NewObjectID().Hex(), `{"title":"new"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePost(t *testing.T) {
	g, repo := newServer(t)
	created, err := repo.Create(context.Background(), &post.Post{Title: "A", Body: "B", Tags: []string{}})
	require.NoError(t, err)

	w := do(g, http.MethodDelete, "/posts/"+created.ID.Hex(), "")
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Empty(t, w.Body.String())

	// gone afterwards
	w = do(g, http.MethodGet, "/posts/"+created.ID.Hex(), "")
	require.Equal(t, http.StatusNotFound, w.Code)

	// deleting the same id again is still a 204
	w = do(g, http.MethodDelete, "/posts/"+created.ID.Hex(), "")
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeletePost_MalformedID(t *testing.T) {
	g, _ := newServer(t)
	w := do(g, http.MethodDelete, "/posts/short", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStoreFailureMapsTo500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	RegisterPostRoutes(g, service.New(downRepo{}))

	w := do(g, http.MethodPost, "/posts", `{"title":"A","body":"B","tags":[]}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "store down")

	w = do(g, http.MethodGet, "/posts", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	w = do(g, http.MethodGet, "/posts/"+primitive.NewObjectID().Hex(), "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

// downRepo simulates a store outage on every call.
type downRepo struct{}

var errStoreDown = errors.New("store down")

func (downRepo) Create(context.Context, *post.Post) (*post.Post, error) { return nil, errStoreDown }
func (downRepo) FindPage(context.Context, int64, int64) ([]*post.Post, error) {
	return nil, errStoreDown
}
func (downRepo) Count(context.Context) (int64, error) { return 0, errStoreDown }
func (downRepo) FindByID(context.Context, primitive.ObjectID) (*post.Post, error) {
	return nil, errStoreDown
}
func (downRepo) UpdateByID(context.Context, primitive.ObjectID, post.UpdatePayload) (*post.Post, error) {
	return nil, errStoreDown
}
func (downRepo) DeleteByID(context.Context, primitive.ObjectID) error { return errStoreDown }
