package account

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/thesis-hub/internal/config"
	"github.com/ashwinyue/thesis-hub/internal/model"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(config.JWTConfig{Secret: "s", AccessTTL: 60})
	user := &model.User{Base: model.Base{ID: "u1"}, Roles: []*model.Role{{Name: model.RoleAdmin}}}

	token, exp, err := issuer.Issue(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 5*time.Second)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, []string{model.RoleAdmin}, claims.Roles)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer(config.JWTConfig{Secret: "s", AccessTTL: 60})
	token, _, err := issuer.Issue(&model.User{Base: model.Base{ID: "u1"}})
	require.NoError(t, err)

	issuer.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	token, _, err := NewTokenIssuer(config.JWTConfig{Secret: "a"}).Issue(&model.User{Base: model.Base{ID: "u1"}})
	require.NoError(t, err)

	_, err = NewTokenIssuer(config.JWTConfig{Secret: "b"}).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RejectsOtherAlgorithms(t *testing.T) {
	issuer := NewTokenIssuer(config.JWTConfig{Secret: "s"})
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": "u1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RandomSecret(t *testing.T) {
	a := NewTokenIssuer(config.JWTConfig{})
	b := NewTokenIssuer(config.JWTConfig{})
	assert.NotEqual(t, a.secret, b.secret)
	assert.Len(t, a.secret, 44)
}
