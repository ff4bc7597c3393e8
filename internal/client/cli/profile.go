package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/simcar/internal/client/models"
	"github.com/dmitrijs2005/simcar/internal/client/validate"
	"github.com/dmitrijs2005/simcar/internal/common"
)

var errCancelled = errors.New("취소되었습니다")

func (a *App) ShowProfile(ctx context.Context, _ []string) error {
	user, err := a.profile.Get(ctx)
	if err != nil {
		return err
	}
	a.printf("이메일:   %s\n이름:     %s\n전화번호: %s\n", user.Email, user.Name, user.Phone)
	return nil
}

// EditProfile updates name and phone, and the password when one is typed.
// Email cannot be changed.
func (a *App) EditProfile(ctx context.Context, _ []string) error {
	current, err := a.profile.Get(ctx)
	if err != nil {
		return err
	}

	name, err := getDefault(a.reader, "이름", current.Name, a.out)
	if err != nil {
		return err
	}
	phone, err := getDefault(a.reader, "전화번호", current.Phone, a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("새 비밀번호 (변경하지 않으려면 Enter)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	upd := models.ProfileUpdate{Name: name, Phone: phone}
	if len(password) > 0 {
		confirmPw, err := getPassword("새 비밀번호 확인", a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(confirmPw)
		if err := validate.ConfirmPassword(string(password), string(confirmPw)); err != nil {
			return err
		}
		upd.Password = string(password)
	}
	if err := validate.Struct(upd); err != nil {
		return err
	}

	user, err := a.profile.Update(ctx, upd)
	if err != nil {
		return err
	}
	a.printf("수정되었습니다: %s %s\n", user.Name, user.Phone)
	return nil
}

// Withdraw deletes the account after confirmation and drops the session.
func (a *App) Withdraw(ctx context.Context, _ []string) error {
	ok, err := confirm(a.reader, "정말 탈퇴하시겠습니까? 등록한 차량도 모두 삭제됩니다.", a.out)
	if err != nil {
		return err
	}
	if !ok {
		return errCancelled
	}
	if err := a.profile.Delete(ctx); err != nil {
		return err
	}
	a.println("탈퇴가 완료되었습니다.")
	return nil
}
