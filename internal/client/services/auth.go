package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/simcar/internal/client/client"
	"github.com/dmitrijs2005/simcar/internal/client/models"
	"github.com/dmitrijs2005/simcar/internal/client/session"
	"github.com/dmitrijs2005/simcar/internal/logging"
)

// AuthService defines authentication operations.
//
// Contract:
//   - Login: authenticate, store the token, then fetch and cache the profile.
//     If the profile fetch fails the stored token is removed again and the
//     error is returned wrapped as "login: fetch profile: ...".
//   - Logout: drop token and cached profile. The favorites cache is kept.
//   - Signup: create a member account. It does not log in.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.UserProfile, error)
	Logout(ctx context.Context) error
	Signup(ctx context.Context, req models.SignupRequest) error
}

type authService struct {
	api     API
	session session.Store
	sink    UserSink
	logger  logging.Logger
}

// NewAuthService constructs an AuthService. sink may be nil.
func NewAuthService(api API, store session.Store, sink UserSink, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &authService{api: api, session: store, sink: sinkOrNop(sink), logger: logger}
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.UserProfile, error) {
	var resp models.LoginResponse
	err := a.api.Post(ctx, "/members/login", models.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			// the adapter has already dropped the persisted credentials
			a.sink.Logout()
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login: %w", &client.APIError{
			Kind: client.KindDecode, Method: http.MethodPost, Path: "/members/login",
			Err: errors.New("response has no token"),
		})
	}

	if err := a.session.SetToken(ctx, resp.Token); err != nil {
		return nil, fmt.Errorf("login: store token: %w", err)
	}

	var user models.UserProfile
	if err := a.api.Get(ctx, "/members/profile", nil, &user); err != nil {
		a.rollback(ctx)
		return nil, fmt.Errorf("login: fetch profile: %w", err)
	}

	if err := a.session.SetUser(ctx, &user); err != nil {
		a.rollback(ctx)
		return nil, fmt.Errorf("login: store profile: %w", err)
	}
	a.sink.SetUser(user)

	a.logger.Info(ctx, "logged in", "email", user.Email)
	return &user, nil
}

// rollback undoes a half-finished login. The token stored a moment ago
// replaced any earlier session, so the state store goes Anonymous too.
func (a *authService) rollback(ctx context.Context) {
	if err := a.session.ClearAuth(context.WithoutCancel(ctx)); err != nil {
		a.logger.Error(ctx, "rolling back token after failed login", "error", err)
	}
	a.sink.Logout()
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.session.ClearAuth(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	a.sink.Logout()
	return nil
}

func (a *authService) Signup(ctx context.Context, req models.SignupRequest) error {
	if err := a.api.Post(ctx, "/members/join", req, nil); err != nil {
		return fmt.Errorf("signup: %w", err)
	}
	return nil
}
