package services

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/axellelanca/shortlinks/internal/auth"
	"github.com/axellelanca/shortlinks/internal/database"
	"github.com/axellelanca/shortlinks/internal/models"
	"github.com/axellelanca/shortlinks/internal/repository"
)

func newTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		database.Close(db)
	})
	require.NoError(t, database.Migrate(db))

	return db
}

// seedUser inserts a user directly and returns its identity.
func seedUser(t testing.TB, users repository.UserRepository, username string, role models.Role) auth.Identity {
	t.Helper()

	user := &models.User{
		Email:          fmt.Sprintf("%s@example.com", username),
		Username:       username,
		HashedPassword: "not-a-real-hash",
		Role:           role,
		IsActive:       true,
	}
	require.NoError(t, users.Create(context.Background(), user))

	return auth.Identity{UserID: user.ID, Username: user.Username, Role: user.Role}
}
