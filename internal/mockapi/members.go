package mockapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/simcar/internal/client/models"
	"github.com/dmitrijs2005/simcar/internal/common"
	"github.com/dmitrijs2005/simcar/internal/mockapi/auth"
	"github.com/dmitrijs2005/simcar/internal/mockapi/store"
)

// MemberService holds the account rules of the backend.
type MemberService struct {
	store         *store.Store
	secret        []byte
	tokenValidity time.Duration
}

func NewMemberService(st *store.Store, secret string, tokenValidity time.Duration) *MemberService {
	return &MemberService{store: st, secret: []byte(secret), tokenValidity: tokenValidity}
}

func (s *MemberService) Signup(ctx context.Context, req models.SignupRequest) (*store.Member, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.store.CreateMember(ctx, store.Member{
		Email:        req.Email,
		Name:         req.Name,
		Phone:        req.Phone,
		PasswordHash: hash,
	})
}

// Login checks the credentials and issues a bearer token. Unknown emails
// and wrong passwords both yield common.ErrorUnauthorized.
func (s *MemberService) Login(ctx context.Context, email, password string) (string, error) {
	m, err := s.store.MemberByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword(m.PasswordHash, []byte(password)); err != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(m.ID, m.Email, s.secret, s.tokenValidity)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

func (s *MemberService) Authenticate(token string) (int64, error) {
	return auth.MemberIDFromToken(token, s.secret)
}

func (s *MemberService) Profile(ctx context.Context, id int64) (*models.UserProfile, error) {
	m, err := s.store.MemberByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.UserProfile{Email: m.Email, Name: m.Name, Phone: m.Phone}, nil
}

func (s *MemberService) UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate) error {
	var hash []byte
	if upd.Password != "" {
		var err error
		if hash, err = bcrypt.GenerateFromPassword([]byte(upd.Password), bcrypt.DefaultCost); err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
	}
	return s.store.UpdateMember(ctx, id, upd.Name, upd.Phone, hash)
}

func (s *MemberService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteMember(ctx, id)
}
