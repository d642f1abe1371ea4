package store

import (
	"path/filepath"
	"testing"

	"feedhub/social-api/db"
	"feedhub/social-api/model"
	"feedhub/social-api/service"
	"feedhub/social-api/storage"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	d, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	return d
}

func testPosts(t *testing.T) (*Posts, *Credentials, *storage.Mem) {
	t.Helper()

	d := testDB(t)
	mem := storage.NewMem()

	return NewPosts(d, service.NewImages(mem), 2), NewCredentials(d), mem
}

func mustUser(t *testing.T, creds *Credentials, email string) *model.User {
	t.Helper()

	user, err := creds.Create(email, "Test User", "hunter22")
	require.NoError(t, err)

	return user
}
