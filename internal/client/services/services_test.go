package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/simcar/internal/client/client"
	"github.com/dmitrijs2005/simcar/internal/client/models"
	"github.com/dmitrijs2005/simcar/internal/client/session"
	"github.com/dmitrijs2005/simcar/internal/client/transform"
	"github.com/dmitrijs2005/simcar/internal/mockapi"
	"github.com/dmitrijs2005/simcar/internal/mockapi/store"
)

const testOrigin = "https://img.simcar.test"

// recordingSink captures what the gateways push into the state store.
type recordingSink struct {
	mu      sync.Mutex
	users   []models.UserProfile
	logouts int
}

func (r *recordingSink) SetUser(u models.UserProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, u)
}

func (r *recordingSink) Logout() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logouts++
}

type env struct {
	session  *session.SQLiteStore
	api      *client.HTTPClient
	sink     *recordingSink
	cars     CarService
	favs     FavoriteService
	auth     AuthService
	profile  ProfileService
	invalid  int
	atLogin  bool
	requests int
}

func newSession(t *testing.T) *session.SQLiteStore {
	t.Helper()
	db, err := session.OpenDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return session.NewSQLiteStore(db)
}

// newEnv wires every gateway against h.
func newEnv(t *testing.T, h http.Handler) *env {
	t.Helper()
	e := &env{session: newSession(t), sink: &recordingSink{}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.requests++
		h.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	api, err := client.New(e.session, client.Options{
		BaseURL:              srv.URL + "/api",
		Timeout:              5 * time.Second,
		OnSessionInvalidated: func(context.Context) { e.invalid++ },
		AtLoginEntry:         func() bool { return e.atLogin },
	})
	require.NoError(t, err)
	e.api = api

	tr := transform.New(testOrigin)
	e.cars = NewCarService(api, tr)
	e.favs = NewFavoriteService(api, e.session, tr)
	e.auth = NewAuthService(api, e.session, e.sink, nil)
	e.profile = NewProfileService(api, e.session, e.sink)
	return e
}

// newMockEnv runs the gateways against a seeded in-memory backend.
func newMockEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New()
	members := mockapi.NewMemberService(st, "test-secret", time.Hour)
	require.NoError(t, mockapi.Seed(context.Background(), st, members))

	return newEnv(t, mockapi.NewRouter(mockapi.Deps{Store: st, Members: members}))
}

func (e *env) login(t *testing.T) {
	t.Helper()
	_, err := e.auth.Login(context.Background(), mockapi.DemoEmail, mockapi.DemoPassword)
	require.NoError(t, err)
}
