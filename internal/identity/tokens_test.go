package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := newTokenManager("taskvault-test", "secret", time.Hour)

	token, err := m.Issue("uid-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	uid, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-123", uid)
}

func TestTokenManager_Expired(t *testing.T) {
	m := newTokenManager("taskvault-test", "secret", -time.Minute)

	token, err := m.Issue("uid-123")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongSigningKey(t *testing.T) {
	issuer := newTokenManager("taskvault-test", "secret", time.Hour)
	verifier := newTokenManager("taskvault-test", "other-secret", time.Hour)

	token, err := issuer.Issue("uid-123")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongIssuer(t *testing.T) {
	issuer := newTokenManager("someone-else", "secret", time.Hour)
	verifier := newTokenManager("taskvault-test", "secret", time.Hour)

	token, err := issuer.Issue("uid-123")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	m := newTokenManager("taskvault-test", "secret", time.Hour)

	_, err := m.Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
