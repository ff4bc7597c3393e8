package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/simcar/internal/client/quiz"
	"github.com/dmitrijs2005/simcar/internal/client/services"
	"github.com/dmitrijs2005/simcar/internal/client/session"
	"github.com/dmitrijs2005/simcar/internal/client/store"
	"github.com/dmitrijs2005/simcar/internal/logging"
)

type View string

const (
	ViewHome  View = "home"
	ViewLogin View = "login"
)

// Navigator tracks the current view. It is created before the HTTP adapter
// so its methods can be handed to client.Options.
type Navigator struct {
	mu      sync.Mutex
	current View
	expired func(ctx context.Context)
}

func NewNavigator() *Navigator {
	return &Navigator{current: ViewHome}
}

func (n *Navigator) Current() View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *Navigator) Show(v View) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = v
}

// AtLoginEntry is the client.Options.AtLoginEntry predicate.
func (n *Navigator) AtLoginEntry() bool {
	return n.Current() == ViewLogin
}

// SessionInvalidated is the client.Options.OnSessionInvalidated callback.
func (n *Navigator) SessionInvalidated(ctx context.Context) {
	n.Show(ViewLogin)

	n.mu.Lock()
	fn := n.expired
	n.mu.Unlock()
	if fn != nil {
		fn(ctx)
	}
}

func (n *Navigator) onExpired(fn func(ctx context.Context)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.expired = fn
}

// Deps are the collaborators of App. Nav must be the navigator the HTTP
// adapter was built with.
type Deps struct {
	Auth      services.AuthService
	Profile   services.ProfileService
	Cars      services.CarService
	Favorites services.FavoriteService
	Store     *store.Store
	Session   session.Store
	Nav       *Navigator
	QuizBank  quiz.Bank
	QuizOpts  quiz.Options
	Logger    logging.Logger
	In        io.Reader
	Out       io.Writer
}

type App struct {
	auth     services.AuthService
	profile  services.ProfileService
	cars     services.CarService
	favs     services.FavoriteService
	store    *store.Store
	session  session.Store
	nav      *Navigator
	bank     quiz.Bank
	quizOpts quiz.Options
	logger   logging.Logger
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(d Deps) (*App, error) {
	if d.Auth == nil || d.Profile == nil || d.Cars == nil || d.Favorites == nil ||
		d.Store == nil || d.Session == nil || d.Nav == nil {
		return nil, errors.New("cli: missing dependency")
	}
	logger := d.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	a := &App{
		auth:     d.Auth,
		profile:  d.Profile,
		cars:     d.Cars,
		favs:     d.Favorites,
		store:    d.Store,
		session:  d.Session,
		nav:      d.Nav,
		bank:     d.QuizBank,
		quizOpts: d.QuizOpts,
		logger:   logger,
		reader:   bufio.NewReader(d.In),
		out:      d.Out,
	}
	a.nav.onExpired(a.sessionExpired)
	return a, nil
}

// sessionExpired runs after a 401 has already cleared the persisted
// session; only the in-memory state is left to reset.
func (a *App) sessionExpired(ctx context.Context) {
	a.store.Logout()
	a.logger.Warn(ctx, "session invalidated by server")
	a.println("세션이 만료되었습니다. 다시 로그인해 주세요.")
}

func (a *App) isLoggedIn() bool {
	return a.store.State().Auth.IsAuthenticated()
}

func (a *App) getStatus() string {
	user := a.store.State().Auth.User
	if user == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", user.Name)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// Run starts the REPL and blocks until the user exits, input ends or ctx is
// cancelled.
func (a *App) Run(ctx context.Context) {
	unsubscribe := a.store.Subscribe(func(s store.State) {
		a.logger.Debug(ctx, "state changed",
			"authenticated", s.Auth.IsAuthenticated(),
			"cars", s.Cars.Status.String(),
			"items", len(s.Cars.Items))
	})
	defer unsubscribe()

	a.println("SimCar 중고차 터미널 (명령어 목록: help)")
	runREPL(ctx, a, a.commands(), a.reader, a.out)
}
