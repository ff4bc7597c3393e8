package cli

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/simcar/internal/client/client"
	"github.com/dmitrijs2005/simcar/internal/client/quiz"
	"github.com/dmitrijs2005/simcar/internal/client/services"
	"github.com/dmitrijs2005/simcar/internal/client/session"
	"github.com/dmitrijs2005/simcar/internal/client/store"
	"github.com/dmitrijs2005/simcar/internal/client/transform"
	"github.com/dmitrijs2005/simcar/internal/mockapi"
	mockstore "github.com/dmitrijs2005/simcar/internal/mockapi/store"
)

type harness struct {
	app     *App
	out     *bytes.Buffer
	session *session.SQLiteStore
	store   *store.Store
	nav     *Navigator
}

// stubPasswords makes getPassword return pws in order.
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	t.Cleanup(func() { getPassword = orig })
	getPassword = func(string, io.Writer) ([]byte, error) {
		require.NotEmpty(t, pws, "unexpected password prompt")
		pw := pws[0]
		pws = pws[1:]
		return []byte(pw), nil
	}
}

// newHarness wires the whole client against a seeded mock backend. input
// is what the user types at prompts.
func newHarness(t *testing.T, input string, bank quiz.Bank) *harness {
	t.Helper()
	ctx := context.Background()
	gin.SetMode(gin.TestMode)

	ms := mockstore.New()
	members := mockapi.NewMemberService(ms, "test-secret", time.Hour)
	require.NoError(t, mockapi.Seed(ctx, ms, members))
	srv := httptest.NewServer(mockapi.NewRouter(mockapi.Deps{Store: ms, Members: members}))
	t.Cleanup(srv.Close)

	db, err := session.OpenDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	sess := session.NewSQLiteStore(db)

	nav := NewNavigator()
	api, err := client.New(sess, client.Options{
		BaseURL:              srv.URL + "/api",
		Timeout:              5 * time.Second,
		OnSessionInvalidated: nav.SessionInvalidated,
		AtLoginEntry:         nav.AtLoginEntry,
	})
	require.NoError(t, err)

	tr := transform.New("https://img.simcar.test")
	cars := services.NewCarService(api, tr)
	st, err := store.New(ctx, sess, cars, nil)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	app, err := NewApp(Deps{
		Auth:      services.NewAuthService(api, sess, st, nil),
		Profile:   services.NewProfileService(api, sess, st),
		Cars:      cars,
		Favorites: services.NewFavoriteService(api, sess, tr),
		Store:     st,
		Session:   sess,
		Nav:       nav,
		QuizBank:  bank,
		In:        strings.NewReader(input),
		Out:       out,
	})
	require.NoError(t, err)

	return &harness{app: app, out: out, session: sess, store: st, nav: nav}
}

// login signs in as the seeded demo member.
func (h *harness) login(t *testing.T) {
	t.Helper()
	user, err := h.app.auth.Login(context.Background(), mockapi.DemoEmail, mockapi.DemoPassword)
	require.NoError(t, err)
	require.Equal(t, "심카", user.Name)
}
