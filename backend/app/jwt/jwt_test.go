package jwtutil

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignParseRoundTrip(t *testing.T) {
	s := &Signer{Secret: []byte("k"), Issuer: "jewel-lending", ExpMin: 60}
	tok, claims, err := s.Sign(7, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, claims.ID)

	got, err := s.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, "admin", got.Role)
	assert.Equal(t, claims.ID, got.ID)
}

func TestSignUsesFreshTokenIDs(t *testing.T) {
	s := &Signer{Secret: []byte("k"), ExpMin: 60}
	_, a, err := s.Sign(1, "user")
	require.NoError(t, err)
	_, b, err := s.Sign(1, "user")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestParseRejectsExpired(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &Signer{Secret: []byte("k"), ExpMin: 1, Now: func() time.Time { return now }}
	tok, _, err := s.Sign(1, "user")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = s.Parse(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseRejectsForeignSecretAndIssuer(t *testing.T) {
	s := &Signer{Secret: []byte("k"), Issuer: "jewel-lending", ExpMin: 60}
	tok, _, err := s.Sign(1, "user")
	require.NoError(t, err)

	_, err = (&Signer{Secret: []byte("other"), Issuer: "jewel-lending"}).Parse(tok)
	assert.Error(t, err)
	_, err = (&Signer{Secret: []byte("k"), Issuer: "someone-else"}).Parse(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}
