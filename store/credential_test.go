package store

import (
	"testing"

	"feedhub/social-api/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	creds := NewCredentials(testDB(t))

	user, err := creds.Create("new@example.com", "New User", "hunter22")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, DefaultStatus, user.Status)
	assert.NotEqual(t, "hunter22", user.PasswordHash, "plaintext must never be stored")
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	creds := NewCredentials(testDB(t))

	mustUser(t, creds, "taken@example.com")

	_, err := creds.Create("taken@example.com", "Other User", "password")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.AlreadyExists))
}

func TestVerifySecret(t *testing.T) {
	creds := NewCredentials(testDB(t))
	created := mustUser(t, creds, "login@example.com")

	user, err := creds.VerifySecret("login@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestVerifySecretUniformFailure(t *testing.T) {
	creds := NewCredentials(testDB(t))
	mustUser(t, creds, "known@example.com")

	// Unknown email and wrong password must be indistinguishable
	_, errUnknown := creds.VerifySecret("unknown@example.com", "hunter22")
	_, errWrong := creds.VerifySecret("known@example.com", "wrong-password")

	require.Error(t, errUnknown)
	require.Error(t, errWrong)

	assert.True(t, apperr.IsKind(errUnknown, apperr.InvalidCredentials))
	assert.True(t, apperr.IsKind(errWrong, apperr.InvalidCredentials))
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestStatus(t *testing.T) {
	creds := NewCredentials(testDB(t))
	user := mustUser(t, creds, "status@example.com")

	status, err := creds.GetStatus(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "I am new!", status)

	require.NoError(t, creds.SetStatus(user.ID, "Shipping it"))

	status, err = creds.GetStatus(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shipping it", status)
}

func TestStatusUnknownUser(t *testing.T) {
	creds := NewCredentials(testDB(t))

	_, err := creds.GetStatus("missing-id")
	assert.True(t, apperr.IsKind(err, apperr.NotFound))

	err = creds.SetStatus("missing-id", "whatever")
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestGetUnknownUser(t *testing.T) {
	creds := NewCredentials(testDB(t))

	// A stale but well-signed token resolves to NotFound here, the token
	// layer doesn't reject it
	_, err := creds.Get("deleted-user")
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}
