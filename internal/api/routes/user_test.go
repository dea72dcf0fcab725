package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miniblog/internal/core/users"
)

// mockUserService implements users.Service over an in-memory edge set
type mockUserService struct {
	known map[string]bool
	edges map[[2]string]bool
}

func newMockUserService(ids ...string) *mockUserService {
	known := make(map[string]bool)
	for _, id := range ids {
		known[id] = true
	}
	return &mockUserService{known: known, edges: make(map[[2]string]bool)}
}

func (m *mockUserService) CreateUser(ctx context.Context, req users.CreateUserRequest) (*users.User, error) {
	return nil, nil
}

func (m *mockUserService) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	if m.known[id] {
		return &users.User{ID: id}, nil
	}
	return nil, users.ErrUserNotFound
}

func (m *mockUserService) ToggleFollow(ctx context.Context, callerID, targetID string) (*users.ToggleFollowResponse, error) {
	if callerID == targetID {
		return nil, users.ErrSelfFollow
	}
	if !m.known[targetID] {
		return nil, users.ErrUserNotFound
	}

	key := [2]string{callerID, targetID}
	m.edges[key] = !m.edges[key]

	resp := &users.ToggleFollowResponse{
		Message:   "User unfollowed",
		Following: []string{},
		Followers: []string{},
	}
	if m.edges[key] {
		resp.Message = "User followed"
	}
	for edge, active := range m.edges {
		if !active {
			continue
		}
		if edge[0] == callerID {
			resp.Following = append(resp.Following, edge[1])
		}
		if edge[1] == targetID {
			resp.Followers = append(resp.Followers, edge[0])
		}
	}
	return resp, nil
}

func newUserRouter(service users.Service, auth stubAuth) *chi.Mux {
	r := chi.NewRouter()
	RegisterUserRoutes(r, service, auth)
	return r
}

func TestToggleFollow_FollowThenUnfollow(t *testing.T) {
	r := newUserRouter(newMockUserService("a", "b"), stubAuth{userID: "a"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/b/follow", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"User followed","following":["b"],"followers":["a"]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/b/follow", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"User unfollowed","following":[],"followers":[]}`, rec.Body.String())
}

func TestToggleFollow_Self(t *testing.T) {
	r := newUserRouter(newMockUserService("a"), stubAuth{userID: "a"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/a/follow", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"You cannot follow yourself"}`, rec.Body.String())
}

func TestToggleFollow_TargetNotFound(t *testing.T) {
	r := newUserRouter(newMockUserService("a"), stubAuth{userID: "a"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/missing/follow", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"User not found"}`, rec.Body.String())
}

func TestToggleFollow_Unauthenticated(t *testing.T) {
	r := newUserRouter(newMockUserService("a", "b"), stubAuth{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/b/follow", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
