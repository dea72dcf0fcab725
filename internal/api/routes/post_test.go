package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miniblog/internal/api/middleware"
	"miniblog/internal/core/posts"
)

// stubAuth injects a fixed caller identity, or rejects when empty
type stubAuth struct {
	userID string
}

func (s stubAuth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.userID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Authentication required"}`))
			return
		}
		next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), s.userID)))
	})
}

// mockPostService implements posts.Service with the real validation
// and not-found semantics over an in-memory view
type mockPostService struct {
	views map[string]*posts.PostView
}

func newMockPostService() *mockPostService {
	return &mockPostService{views: make(map[string]*posts.PostView)}
}

func (m *mockPostService) ListPosts(ctx context.Context) ([]*posts.PostView, error) {
	result := []*posts.PostView{}
	for _, view := range m.views {
		result = append(result, view)
	}
	return result, nil
}

func (m *mockPostService) GetPost(ctx context.Context, id string) (*posts.PostView, error) {
	if view, ok := m.views[id]; ok {
		return view, nil
	}
	return nil, posts.ErrPostNotFound
}

func (m *mockPostService) CreatePost(ctx context.Context, authorID string, req posts.CreatePostRequest) (*posts.PostView, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, posts.NewValidationError("text", "Please provide post text")
	}
	view := &posts.PostView{
		ID:        "p1",
		Text:      req.Text,
		ImageURL:  req.ImageURL,
		CreatedAt: time.Now().UTC(),
		User:      posts.UserRef{ID: authorID, Name: "Alice"},
		Likes:     []posts.LikeView{},
		Comments:  []posts.CommentView{},
	}
	m.views[view.ID] = view
	return view, nil
}

func (m *mockPostService) ToggleLike(ctx context.Context, postID, userID string) (*posts.PostView, error) {
	view, ok := m.views[postID]
	if !ok {
		return nil, posts.ErrPostNotFound
	}
	for i, like := range view.Likes {
		if like.User.ID == userID {
			view.Likes = append(view.Likes[:i], view.Likes[i+1:]...)
			return view, nil
		}
	}
	view.Likes = append(view.Likes, posts.LikeView{User: posts.UserRef{ID: userID, Name: "Bob"}})
	return view, nil
}

func (m *mockPostService) AddComment(ctx context.Context, postID, userID, text string) (*posts.PostView, error) {
	if strings.TrimSpace(text) == "" {
		return nil, posts.NewValidationError("text", "Please provide comment text")
	}
	view, ok := m.views[postID]
	if !ok {
		return nil, posts.ErrPostNotFound
	}
	view.Comments = append(view.Comments, posts.CommentView{
		User: posts.UserRef{ID: userID, Name: "Bob"},
		Text: text,
	})
	return view, nil
}

func newPostRouter(service posts.Service, auth middleware.Authenticator) *chi.Mux {
	r := chi.NewRouter()
	RegisterPostRoutes(r, service, auth)
	return r
}

func TestGetPosts_EmptyStore(t *testing.T) {
	r := newPostRouter(newMockPostService(), stubAuth{userID: "u1"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateThenListPost(t *testing.T) {
	service := newMockPostService()
	r := newPostRouter(service, stubAuth{userID: "u1"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"text":"hello"}`))
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created posts.PostView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "hello", created.Text)
	assert.Equal(t, "Alice", created.User.Name)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []posts.PostView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "hello", listed[0].Text)
	assert.Empty(t, listed[0].Likes)
	assert.Empty(t, listed[0].Comments)
}

func TestCreatePost_MissingText(t *testing.T) {
	r := newPostRouter(newMockPostService(), stubAuth{userID: "u1"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{}`))
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Please provide post text"}`, rec.Body.String())
}

func TestCreatePost_Unauthenticated(t *testing.T) {
	r := newPostRouter(newMockPostService(), stubAuth{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"text":"hello"}`))
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetPost_NotFound(t *testing.T) {
	r := newPostRouter(newMockPostService(), stubAuth{userID: "u1"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Post not found"}`, rec.Body.String())
}

func TestToggleLike_LikeThenUnlike(t *testing.T) {
	service := newMockPostService()
	_, err := service.CreatePost(context.Background(), "u1", posts.CreatePostRequest{Text: "hello"})
	require.NoError(t, err)

	r := newPostRouter(service, stubAuth{userID: "u2"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/posts/p1/like", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var view posts.PostView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Likes, 1)
	assert.Equal(t, "u2", view.Likes[0].User.ID)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/posts/p1/like", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Empty(t, view.Likes)
}

func TestToggleLike_PostNotFound(t *testing.T) {
	r := newPostRouter(newMockPostService(), stubAuth{userID: "u1"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/posts/missing/like", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddComment(t *testing.T) {
	service := newMockPostService()
	_, err := service.CreatePost(context.Background(), "u1", posts.CreatePostRequest{Text: "hello"})
	require.NoError(t, err)

	r := newPostRouter(service, stubAuth{userID: "u2"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/posts/p1/comment", strings.NewReader(`{"text":"nice"}`))
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var view posts.PostView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "nice", view.Comments[0].Text)
	assert.Equal(t, "Bob", view.Comments[0].User.Name)
}

func TestAddComment_MissingText(t *testing.T) {
	service := newMockPostService()
	_, err := service.CreatePost(context.Background(), "u1", posts.CreatePostRequest{Text: "hello"})
	require.NoError(t, err)

	r := newPostRouter(service, stubAuth{userID: "u2"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/posts/p1/comment", strings.NewReader(`{"text":""}`))
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Please provide comment text"}`, rec.Body.String())
}

func TestAddComment_PostNotFound(t *testing.T) {
	r := newPostRouter(newMockPostService(), stubAuth{userID: "u1"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/posts/missing/comment", strings.NewReader(`{"text":"nice"}`))
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
