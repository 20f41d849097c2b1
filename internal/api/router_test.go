package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/inkwell/posts-api/internal/core/domain"
	"github.com/inkwell/posts-api/internal/core/ports"
)

const postID = "0b6c1d5e-8f4a-4c7e-9a43-2f1e6d3b7a10"

var (
	alice = &domain.User{ID: "alice", Email: "alice@example.com", IsActive: true, CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	bob   = &domain.User{ID: "bob", Email: "bob@example.com", IsActive: true}
)

type fakeAuth struct{}

func (fakeAuth) Login(_ context.Context, email, password string) (*domain.Token, error) {
	switch {
	case email != alice.Email:
		return nil, domain.ErrUserNotFound
	case password != "s3cret":
		return nil, domain.ErrInvalidPassword
	}
	return &domain.Token{AccessToken: "token-alice", TokenType: domain.TokenTypeBearer}, nil
}

func (fakeAuth) ResolveUser(_ context.Context, token string) (*domain.User, error) {
	switch token {
	case "token-alice":
		return alice, nil
	case "token-bob":
		return bob, nil
	}
	return nil, domain.ErrInvalidCredentials
}

type fakeUsers struct{}

func (fakeUsers) Register(_ context.Context, email, _ string) (*domain.User, error) {
	if email == alice.Email {
		return nil, domain.ErrEmailAlreadyExists
	}
	return &domain.User{ID: "new", Email: email, IsActive: true}, nil
}

func (fakeUsers) Get(_ context.Context, id string) (*domain.User, error) {
	if id == alice.ID {
		return alice, nil
	}
	return nil, domain.ErrUserNotFound
}

type fakePosts struct {
	listed  []ports.ListPostsInput
	patched domain.PostPatch
}

func (f *fakePosts) List(_ context.Context, in ports.ListPostsInput) ([]domain.PostWithVotes, error) {
	f.listed = append(f.listed, in)
	if in.Page < 1 || in.Size < 1 {
		return nil, &domain.PaginationError{Reason: "Page and size must be positive integers"}
	}
	if in.Size > 100 {
		return nil, &domain.PaginationError{Reason: "Size must not exceed 100"}
	}
	return []domain.PostWithVotes{{Post: domain.Post{ID: postID, OwnerID: alice.ID, Title: "t"}}}, nil
}

func (f *fakePosts) Create(_ context.Context, in ports.CreatePostInput, actor *domain.User) (*domain.Post, error) {
	return &domain.Post{ID: postID, OwnerID: actor.ID, Title: in.Title, Content: in.Content, Published: in.Published, Rating: in.Rating}, nil
}

func (f *fakePosts) Get(_ context.Context, id string) (*domain.PostWithVotes, error) {
	if id != postID {
		return nil, domain.ErrPostNotFound
	}
	return &domain.PostWithVotes{Post: domain.Post{ID: postID, OwnerID: alice.ID, Title: "t"}, Votes: 2}, nil
}

func (f *fakePosts) Update(_ context.Context, id string, patch domain.PostPatch, actor *domain.User) (*domain.Post, error) {
	if id != postID {
		return nil, domain.ErrPostNotFound
	}
	if actor.ID != alice.ID {
		return nil, domain.ErrForbidden
	}
	f.patched = patch
	p := &domain.Post{ID: postID, OwnerID: alice.ID, Title: "t", Content: "c", Published: true}
	patch.Apply(p)
	return p, nil
}

func (f *fakePosts) Delete(_ context.Context, id string, actor *domain.User) error {
	if id != postID {
		return domain.ErrPostNotFound
	}
	if actor.ID != alice.ID {
		return domain.ErrForbidden
	}
	return nil
}

type fakeVotes struct {
	voted map[string]bool
}

func (f *fakeVotes) Vote(_ context.Context, id string, direction int, actor *domain.User) error {
	if id != postID {
		return domain.ErrPostNotFound
	}
	if actor.ID == alice.ID {
		return domain.ErrForbidden
	}
	switch direction {
	case domain.VoteAdd:
		if f.voted[actor.ID] {
			return domain.ErrAlreadyVoted
		}
		f.voted[actor.ID] = true
	case domain.VoteRemove:
		if !f.voted[actor.ID] {
			return domain.ErrVoteNotFound
		}
		delete(f.voted, actor.ID)
	}
	return nil
}

type testServer struct {
	handler http.Handler
	posts   *fakePosts
}

func newTestServer() *testServer {
	posts := &fakePosts{}
	reg := prometheus.NewRegistry()
	e := NewRouter(Deps{
		Logger:          zerolog.Nop(),
		Auth:            fakeAuth{},
		Users:           fakeUsers{},
		Posts:           posts,
		Votes:           &fakeVotes{voted: map[string]bool{}},
		DefaultPageSize: 10,
		LoginRateLimit:  100,
		Registerer:      reg,
		Gatherer:        reg,
	})
	return &testServer{handler: e, posts: posts}
}

func (s *testServer) do(method, target, token, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) json(method, target, token, body string) *httptest.ResponseRecorder {
	return s.do(method, target, token, "application/json", body)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestRouter_Login(t *testing.T) {
	s := newTestServer()
	form := func(user, pass string) string {
		return url.Values{"username": {user}, "password": {pass}}.Encode()
	}

	rec := s.do(http.MethodPost, "/login", "", "application/x-www-form-urlencoded", form("alice@example.com", "s3cret"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	if body["access_token"] != "token-alice" || body["token_type"] != "bearer" {
		t.Fatalf("unexpected body: %v", body)
	}

	wrongPass := s.do(http.MethodPost, "/login", "", "application/x-www-form-urlencoded", form("alice@example.com", "nope"))
	unknown := s.do(http.MethodPost, "/login", "", "application/x-www-form-urlencoded", form("zed@example.com", "s3cret"))
	for _, rec := range []*httptest.ResponseRecorder{wrongPass, unknown} {
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		if decode(t, rec)["detail"] != "Invalid email or password" {
			t.Fatalf("unexpected detail: %s", rec.Body.String())
		}
	}
	if wrongPass.Body.String() != unknown.Body.String() {
		t.Fatal("login failures must be indistinguishable")
	}

	missing := s.do(http.MethodPost, "/login", "", "application/x-www-form-urlencoded", "username=alice@example.com")
	if missing.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", missing.Code)
	}
}

func TestRouter_Users(t *testing.T) {
	s := newTestServer()

	rec := s.json(http.MethodPost, "/users/", "", `{"email":"carol@example.com","password":"pw"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	data := decode(t, rec)["data"].(map[string]any)
	if data["email"] != "carol@example.com" || data["is_active"] != true {
		t.Fatalf("unexpected user: %v", data)
	}
	if _, leaked := data["password"]; leaked {
		t.Fatal("password must not be serialised")
	}

	if rec := s.json(http.MethodPost, "/users", "", `{"email":"alice@example.com","password":"pw"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate email: expected 400, got %d", rec.Code)
	}
	if rec := s.json(http.MethodPost, "/users", "", `{"email":"not-an-email","password":"pw"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad email: expected 422, got %d", rec.Code)
	}

	if rec := s.json(http.MethodGet, "/users/alice", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("get user: expected 200, got %d", rec.Code)
	}
	if rec := s.json(http.MethodGet, "/users/ghost", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing user: expected 404, got %d", rec.Code)
	}
}

func TestRouter_ListPosts(t *testing.T) {
	s := newTestServer()

	rec := s.json(http.MethodGet, "/posts/", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := s.posts.listed[0]; got.Page != 1 || got.Size != 10 {
		t.Fatalf("expected defaults page=1 size=10, got %+v", got)
	}
	items := decode(t, rec)["data"].([]any)
	first := items[0].(map[string]any)
	if first["votes"] != float64(0) || first["id"] != postID {
		t.Fatalf("unexpected item: %v", first)
	}

	s.json(http.MethodGet, "/posts?page=2&size=5&search=go", "", "")
	if got := s.posts.listed[1]; got.Page != 2 || got.Size != 5 || got.Search != "go" {
		t.Fatalf("unexpected query binding: %+v", got)
	}

	for q, detail := range map[string]string{
		"page=0":   "Page and size must be positive integers",
		"size=0":   "Page and size must be positive integers",
		"size=101": "Size must not exceed 100",
	} {
		rec := s.json(http.MethodGet, "/posts?"+q, "", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", q, rec.Code)
		}
		if got := decode(t, rec)["detail"]; got != detail {
			t.Fatalf("%s: expected detail %q, got %v", q, detail, got)
		}
	}
	if rec := s.json(http.MethodGet, "/posts?page=abc", "", ""); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("non-integer page: expected 422, got %d", rec.Code)
	}
}

func TestRouter_CreatePost(t *testing.T) {
	s := newTestServer()

	if rec := s.json(http.MethodPost, "/posts", "", `{"title":"t","content":"c"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", rec.Code)
	} else if rec.Header().Get("WWW-Authenticate") != "Bearer" {
		t.Fatal("missing Bearer challenge")
	}
	if rec := s.json(http.MethodPost, "/posts", "bogus", `{"title":"t","content":"c"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", rec.Code)
	}

	rec := s.json(http.MethodPost, "/posts", "token-alice", `{"title":"t","content":"c"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	data := decode(t, rec)["data"].(map[string]any)
	if data["owner_id"] != alice.ID || data["published"] != true || data["rating"] != nil {
		t.Fatalf("unexpected post: %v", data)
	}

	if rec := s.json(http.MethodPost, "/posts", "token-alice", `{"content":"c"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing title: expected 422, got %d", rec.Code)
	}
}

func TestRouter_GetPost(t *testing.T) {
	s := newTestServer()

	rec := s.json(http.MethodGet, "/posts/"+postID, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if decode(t, rec)["data"].(map[string]any)["votes"] != float64(2) {
		t.Fatalf("expected vote count in body: %s", rec.Body.String())
	}
	if rec := s.json(http.MethodGet, "/posts/missing", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouter_UpdatePost(t *testing.T) {
	s := newTestServer()

	rec := s.json(http.MethodPatch, "/posts/"+postID, "token-alice", `{"title":"renamed","rating":null}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	p := s.posts.patched
	if !p.Title.Set || p.Title.Value != "renamed" || !p.Rating.Set || p.Rating.Value != nil || p.Content.Set || p.Published.Set {
		t.Fatalf("unexpected patch: %+v", p)
	}

	if rec := s.json(http.MethodPatch, "/posts/"+postID, "token-alice", `{"title":null}`); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("null title: expected 422, got %d", rec.Code)
	}
	if rec := s.json(http.MethodPatch, "/posts/"+postID, "token-bob", `{"title":"x"}`); rec.Code != http.StatusForbidden {
		t.Fatalf("non-owner: expected 403, got %d", rec.Code)
	}
	if rec := s.json(http.MethodPatch, "/posts/missing", "token-alice", `{"title":"x"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("missing: expected 404, got %d", rec.Code)
	}
}

func TestRouter_DeletePost(t *testing.T) {
	s := newTestServer()

	if rec := s.json(http.MethodDelete, "/posts/"+postID, "token-bob", ""); rec.Code != http.StatusForbidden {
		t.Fatalf("non-owner: expected 403, got %d", rec.Code)
	}
	if rec := s.json(http.MethodDelete, "/posts/"+postID, "token-alice", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("owner: expected 204, got %d", rec.Code)
	}
	if rec := s.json(http.MethodDelete, "/posts/missing", "token-alice", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing: expected 404, got %d", rec.Code)
	}
}

func TestRouter_Votes(t *testing.T) {
	s := newTestServer()
	vote := func(token, body string) int {
		return s.json(http.MethodPost, "/votes/", token, body).Code
	}
	add := `{"post_id":"` + postID + `","vote_direction":1}`
	remove := `{"post_id":"` + postID + `","vote_direction":0}`

	steps := []struct {
		name  string
		token string
		body  string
		want  int
	}{
		{"unauthenticated", "", add, http.StatusUnauthorized},
		{"add", "token-bob", add, http.StatusNoContent},
		{"add again", "token-bob", add, http.StatusConflict},
		{"remove", "token-bob", remove, http.StatusNoContent},
		{"remove again", "token-bob", remove, http.StatusNotFound},
		{"self vote", "token-alice", add, http.StatusForbidden},
		{"bad direction", "token-bob", `{"post_id":"` + postID + `","vote_direction":2}`, http.StatusUnprocessableEntity},
		{"missing direction", "token-bob", `{"post_id":"` + postID + `"}`, http.StatusUnprocessableEntity},
		{"non-uuid post", "token-bob", `{"post_id":"abc","vote_direction":1}`, http.StatusUnprocessableEntity},
		{"unknown post", "token-bob", `{"post_id":"6f1c2d3e-0000-4000-8000-000000000000","vote_direction":1}`, http.StatusNotFound},
	}
	for _, st := range steps {
		if got := vote(st.token, st.body); got != st.want {
			t.Fatalf("%s: expected %d, got %d", st.name, st.want, got)
		}
	}
}

func TestRouter_Operational(t *testing.T) {
	s := newTestServer()

	if rec := s.json(http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
	if rec := s.json(http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("ready: expected 200, got %d", rec.Code)
	}
	rec := s.json(http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "posts_api_http_requests_total") {
		t.Fatalf("expected request metrics in output")
	}
}
