package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-sessions-0123456789"

func TestIssueAndVerify(t *testing.T) {
	mgr := NewManager(testSecret, time.Hour)

	token, err := mgr.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := mgr.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestVerifyRejectsEmptyToken(t *testing.T) {
	mgr := NewManager(testSecret, time.Hour)

	_, err := mgr.Verify("")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	mgr := NewManager(testSecret, time.Hour)

	token, err := mgr.Issue(7)
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "XXXX"
	_, err = mgr.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-one-secret-one-secret-one", time.Hour).Issue(7)
	require.NoError(t, err)

	_, err = NewManager("secret-two-secret-two-secret-two", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	mgr := NewManager(testSecret, -time.Hour)

	token, err := mgr.Issue(7)
	require.NoError(t, err)

	_, err = mgr.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestIssueRequiresSecret(t *testing.T) {
	mgr := NewManager("", time.Hour)

	_, err := mgr.Issue(1)
	assert.Error(t, err)
}

func TestCookieAttributes(t *testing.T) {
	mgr := NewManager(testSecret, time.Hour)

	cookie := mgr.Cookie("some-token")
	assert.Equal(t, CookieName, cookie.Name)
	assert.Equal(t, "some-token", cookie.Value)
	assert.True(t, cookie.HTTPOnly)
	assert.True(t, cookie.Expires.After(time.Now()))
}

func TestClearCookieExpiresImmediately(t *testing.T) {
	mgr := NewManager(testSecret, time.Hour)

	cookie := mgr.ClearCookie()
	assert.Equal(t, CookieName, cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.Expires.Before(time.Now()))
}
