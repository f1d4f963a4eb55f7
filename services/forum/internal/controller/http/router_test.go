package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nomadnest/pkg/jwt"
	"nomadnest/pkg/logger"
	"nomadnest/pkg/middleware"
	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/listing"
	"nomadnest/services/forum/internal/repo"
	"nomadnest/services/forum/internal/repo/inmem"
	"nomadnest/services/forum/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	store  *repo.Store
	jwt    *jwt.Service
	routes []Route
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewWithWriter(io.Discard)
	store := inmem.NewStore()
	jwtService := jwt.NewService("test-secret", time.Hour)

	userUseCase := usecase.NewUserUseCase(store.Users, store.Payments, nil, log)
	handlers := &Handlers{
		Auth:     NewAuthHandler(usecase.NewAuthUseCase(jwtService, log), middleware.NewCookiePolicy("token", false), log),
		Users:    NewUserHandler(userUseCase, log),
		Posts:    NewPostHandler(usecase.NewPostUseCase(store.Posts, store.Users, 5, log), log),
		Comments: NewCommentHandler(usecase.NewCommentUseCase(store.Comments, store.Posts, store.Users, log), log),
		Board:    NewBoardHandler(usecase.NewBoardUseCase(store.Tags, store.Announcements, store.Users, nil, log), log),
		Payments: NewPaymentHandler(usecase.NewPaymentUseCase(store.Payments, store.Users, nil, "usd", log), log),
		Media:    NewMediaHandler(usecase.NewMediaUseCase(nil, log), log),
	}

	router := gin.New()
	routes := handlers.Routes()
	Register(router, middleware.NewGate(jwtService, userUseCase, "token", log), routes)

	return &testServer{router: router, store: store, jwt: jwtService, routes: routes}
}

func (s *testServer) seedUser(t *testing.T, email string, role entity.Role) {
	t.Helper()
	ctx := context.Background()
	_, err := s.store.Users.InsertIfAbsent(ctx, &entity.User{Name: email, Email: email, Role: entity.RoleUser, Status: entity.StatusRegular})
	require.NoError(t, err)
	_, err = s.store.Users.UpdateByEmail(ctx, email, entity.UserPatch{Role: &role})
	require.NoError(t, err)
}

func (s *testServer) do(t *testing.T, method, path, caller string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		token, err := s.jwt.GenerateToken(caller)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

type storeSnapshot struct {
	users, posts, comments, reported, tags, announcements int64
	upvotes, downvotes                                   int64
	warning                                              string
	role                                                 entity.Role
}

func snapshot(t *testing.T, store *repo.Store, postID string) storeSnapshot {
	t.Helper()
	ctx := context.Background()

	var s storeSnapshot
	var err error
	s.users, err = store.Users.Count(ctx, listing.UserFilter{})
	require.NoError(t, err)
	s.posts, err = store.Posts.Count(ctx, listing.PostFilter{})
	require.NoError(t, err)
	s.comments, err = store.Comments.Count(ctx, listing.CommentFilter{})
	require.NoError(t, err)
	s.reported, err = store.Comments.Count(ctx, listing.CommentFilter{ReportedOnly: true})
	require.NoError(t, err)
	tags, err := store.Tags.List(ctx)
	require.NoError(t, err)
	s.tags = int64(len(tags))
	s.announcements, err = store.Announcements.Count(ctx)
	require.NoError(t, err)

	post, err := store.Posts.GetByID(ctx, postID)
	require.NoError(t, err)
	s.upvotes, s.downvotes = post.Upvote, post.Downvote

	user, err := store.Users.GetByEmail(ctx, "ana@x.io")
	require.NoError(t, err)
	s.warning, s.role = user.Warning, user.Role
	return s
}

func concretePath(path, id, email string) string {
	path = strings.ReplaceAll(path, ":id", id)
	return strings.ReplaceAll(path, ":email", email)
}

func TestRoutes_MutationsDeclareAGate(t *testing.T) {
	openMutations := map[string]bool{
		"POST /jwt":    true,
		"POST /logout": true,
		"POST /users":  true,
	}

	s := newTestServer(t)
	for _, route := range s.routes {
		key := route.Method + " " + route.Path
		if route.Method == http.MethodGet || openMutations[key] {
			continue
		}
		assert.NotEqual(t, middleware.Public, route.Policy, "%s changes state without a gate", key)
	}
}

func TestRoutes_GatesShortCircuitBeforeHandlers(t *testing.T) {
	s := newTestServer(t)
	s.seedUser(t, "ana@x.io", entity.RoleUser)
	s.seedUser(t, "admin@x.io", entity.RoleAdmin)

	ctx := context.Background()
	post := &entity.Post{AuthorEmail: "ana@x.io", Title: "t", Tag: "Hiking", PostTime: time.Now()}
	require.NoError(t, s.store.Posts.Create(ctx, post))
	comment := &entity.Comment{PostID: post.ID, CommenterEmail: "ana@x.io", Comment: "hi", PostTime: time.Now()}
	require.NoError(t, s.store.Comments.Create(ctx, comment))

	before := snapshot(t, s.store, post.ID)

	body := map[string]interface{}{
		"email": "ana@x.io", "warning": "w", "feedback": "f", "tag": "x", "title": "x",
		"comment": "x", "post_id": post.ID, "price": 10, "transactionId": "pi_1",
	}

	for _, route := range s.routes {
		if route.Policy == middleware.Public {
			continue
		}
		path := concretePath(route.Path, post.ID, "ana@x.io")

		t.Run("anonymous "+route.Method+" "+route.Path, func(t *testing.T) {
			w := s.do(t, route.Method, path, "", body)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"unauthorized access"}`, w.Body.String())
		})

		if route.Policy == middleware.RequireAdmin {
			t.Run("non-admin "+route.Method+" "+route.Path, func(t *testing.T) {
				w := s.do(t, route.Method, path, "ana@x.io", body)
				assert.Equal(t, http.StatusForbidden, w.Code)
				assert.JSONEq(t, `{"error":"forbidden access"}`, w.Body.String())
			})
		}
	}

	assert.Equal(t, before, snapshot(t, s.store, post.ID), "rejected requests must not touch the store")
}

func TestRoutes_AdminRoutesAdmitAdmins(t *testing.T) {
	s := newTestServer(t)
	s.seedUser(t, "ana@x.io", entity.RoleUser)
	s.seedUser(t, "admin@x.io", entity.RoleAdmin)

	w := s.do(t, http.MethodPost, "/tags", "admin@x.io", map[string]string{"tag": "Hiking"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodPost, "/tags", "admin@x.io", map[string]string{"tag": "Hiking"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/users-count", "admin@x.io", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":2}`, w.Body.String())

	user, err := s.store.Users.GetByEmail(context.Background(), "ana@x.io")
	require.NoError(t, err)

	w = s.do(t, http.MethodPatch, "/users/admin/"+user.ID, "admin@x.io", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"matchedCount":1,"modifiedCount":1}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/users/admin/ana@x.io", "ana@x.io", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"admin":true}`, w.Body.String())
}

func TestRoutes_TokenCookieLifecycle(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/jwt", "", map[string]string{"email": "ana@x.io"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, "token=")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "SameSite=Strict")
	assert.NotContains(t, cookie, "Secure")

	w = s.do(t, http.MethodPost, "/logout", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")

	w = s.do(t, http.MethodPost, "/jwt", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoutes_RegisterIsIdempotent(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/users", "", map[string]string{"email": "ana@x.io", "name": "Ana"})
	require.Equal(t, http.StatusOK, w.Code)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.NotEmpty(t, first["insertedId"])

	w = s.do(t, http.MethodPost, "/users", "", map[string]string{"email": "ana@x.io", "name": "Ana"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"user already exists","insertedId":null}`, w.Body.String())
}

func TestRoutes_ListingAndCountAgree(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tags := []string{"Hiking", "hiking trips", "Biking", "Food", "HIKING", "Hike", "Hiking", "Beach", "Hiking", "Hikers"}
	for i, tag := range tags {
		post := &entity.Post{AuthorEmail: "ana@x.io", Title: fmt.Sprint(i), Tag: tag, PostTime: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, s.store.Posts.Create(ctx, post))
	}

	w := s.do(t, http.MethodGet, "/posts-count?search=hik", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var count struct{ Count int64 }
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &count))
	assert.Equal(t, int64(7), count.Count)

	seen := map[string]bool{}
	for page := 1; ; page++ {
		w := s.do(t, http.MethodGet, fmt.Sprintf("/all-posts?search=hik&sort=score&page=%d", page), "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var posts []entity.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
		if len(posts) == 0 {
			break
		}
		assert.LessOrEqual(t, len(posts), listing.DefaultSize)
		for _, p := range posts {
			assert.False(t, seen[p.ID], "post %s appeared on two pages", p.ID)
			seen[p.ID] = true
			assert.Contains(t, strings.ToLower(p.Tag), "hik")
		}
	}
	assert.Len(t, seen, int(count.Count))
}

func TestRoutes_VoteMissingPost(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPut, "/upvote/missing", "ana@x.io", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoutes_GoldRequiresRecordedPayment(t *testing.T) {
	s := newTestServer(t)
	s.seedUser(t, "ana@x.io", entity.RoleUser)

	w := s.do(t, http.MethodPatch, "/users/gold", "ana@x.io", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	user, err := s.store.Users.GetByEmail(context.Background(), "ana@x.io")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRegular, user.Status)

	w = s.do(t, http.MethodPost, "/payments", "ana@x.io", map[string]interface{}{"price": 9.99, "transactionId": "pi_123"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodPatch, "/users/gold", "ana@x.io", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"matchedCount":1,"modifiedCount":1}`, w.Body.String())
}

func TestRoutes_ListingFarPastTheEnd(t *testing.T) {
	s := newTestServer(t)
	s.seedUser(t, "ana@x.io", entity.RoleUser)
	w := s.do(t, http.MethodPost, "/posts", "ana@x.io", map[string]string{"title": "t", "tag": "Hiking"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/all-posts?page=2305843009213693953&size=4", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRoutes_UpstreamFailureIsGeneric(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/create-payment-intent", "ana@x.io", map[string]interface{}{"price": 12.5})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}
