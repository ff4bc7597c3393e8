package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/simcar/internal/client/models"
	"github.com/dmitrijs2005/simcar/internal/client/session"
	"github.com/dmitrijs2005/simcar/internal/client/validate"
	"github.com/dmitrijs2005/simcar/internal/common"
)

// now is a test seam for Whoami.
var now = time.Now

// enterLogin switches to the login view for the duration of a login or
// signup form. A 401 raised there does not count as an expired session.
func (a *App) enterLogin() func() {
	a.nav.Show(ViewLogin)
	return func() { a.nav.Show(ViewHome) }
}

// Signup asks for the account fields, validates them locally and creates
// the account. It does not log in.
func (a *App) Signup(ctx context.Context, _ []string) error {
	defer a.enterLogin()()

	email, err := getSimpleText(a.reader, "이메일", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("비밀번호 (8자 이상, 영문자와 숫자 포함)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirmPw, err := getPassword("비밀번호 확인", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmPw)

	if err := validate.ConfirmPassword(string(password), string(confirmPw)); err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "이름", a.out)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "전화번호 (예: 010-1234-5678)", a.out)
	if err != nil {
		return err
	}

	req := models.SignupRequest{Email: email, Password: string(password), Name: name, Phone: phone}
	if err := validate.Struct(req); err != nil {
		return err
	}
	if err := a.auth.Signup(ctx, req); err != nil {
		return err
	}

	a.println("회원가입이 완료되었습니다. login 명령으로 로그인해 주세요.")
	return nil
}

// Login prompts for credentials and opens a session. The store is updated
// by the gateway.
func (a *App) Login(ctx context.Context, _ []string) error {
	defer a.enterLogin()()

	email, err := getSimpleText(a.reader, "이메일", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("비밀번호", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		a.logger.Info(ctx, "login failed", "email", email, "error", err)
		return err
	}

	a.printf("환영합니다, %s님!\n", user.Name)
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.println("로그아웃되었습니다.")
	return nil
}

// Whoami prints the cached profile and what the token itself says about
// the session. The token is never verified locally.
func (a *App) Whoami(ctx context.Context, _ []string) error {
	user := a.store.State().Auth.User
	if user == nil {
		a.println("로그인하지 않았습니다.")
		return nil
	}
	a.printf("%s <%s> %s\n", user.Name, user.Email, user.Phone)

	token, err := a.session.Token(ctx)
	if err != nil {
		return err
	}
	if at, err := a.session.TokenSavedAt(ctx); err == nil && !at.IsZero() {
		a.printf("로그인 시각: %s\n", at.Local().Format("2006-01-02 15:04"))
	}
	if sub := session.TokenSubject(token); sub != "" {
		a.printf("회원 번호: %s\n", sub)
	}
	if exp, ok := session.TokenExpiry(token); ok {
		left := exp.Sub(now()).Truncate(time.Second)
		if left > 0 {
			a.printf("토큰 만료: %s (%s 남음)\n", exp.Local().Format("2006-01-02 15:04"), left)
		} else {
			a.printf("토큰 만료: %s (만료됨)\n", exp.Local().Format("2006-01-02 15:04"))
		}
	}

	ids, err := a.session.FavoriteIDs(ctx)
	if err != nil {
		return err
	}
	a.printf("찜한 차량: %d대\n", len(ids))
	return nil
}
