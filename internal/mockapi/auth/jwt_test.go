package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/simcar/internal/common"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken(42, "a@b.kr", secret, time.Hour)
	require.NoError(t, err)

	id, err := MemberIDFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestGenerateToken_UniqueID(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	ids := map[string]bool{}
	for range 3 {
		tok, err := GenerateToken(7, "a@b.kr", secret, time.Hour)
		require.NoError(t, err)

		claims := &Claims{}
		_, err = jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (any, error) { return secret, nil })
		require.NoError(t, err)
		assert.Len(t, claims.ID, 32)
		ids[claims.ID] = true
	}
	assert.Len(t, ids, 3)
}

func TestMemberIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken(1, "a@b.kr", secret, -time.Second)
	require.NoError(t, err)

	_, err = MemberIDFromToken(tok, secret)
	require.ErrorIs(t, err, common.ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestMemberIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(2, "a@b.kr", []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = MemberIDFromToken(tok, []byte("wrong-secret"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestMemberIDFromToken_Garbage(t *testing.T) {
	t.Parallel()

	_, err := MemberIDFromToken("not-a-jwt", []byte("s"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestMemberIDFromToken_RejectsNoneAlg(t *testing.T) {
	t.Parallel()

	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
	})
	s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = MemberIDFromToken(s, []byte("s"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
