package services

import (
	"fmt"
	"strings"
	"testing"

	"socialstream/models"
	"socialstream/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB initializes an in-memory SQLite database for testing. The
// database is named after the test so cases stay isolated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Relationship{}))
	return db
}

func newTestIdentityService(db *gorm.DB) IdentityService {
	// MinCost keeps the hashing fast in tests
	return NewIdentityService(repositories.NewUserRepository(db), bcrypt.MinCost)
}

func TestCreateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestIdentityService(db)

		user, err := svc.CreateUser(&CreateUserInput{Username: "alice", Email: "alice@x.com", Password: "password"})
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.False(t, user.IsAdmin)

		// The stored password is a hash, never the plaintext
		assert.NotEqual(t, "password", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password")))
	})

	t.Run("Duplicate username", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestIdentityService(db)

		_, err := svc.CreateUser(&CreateUserInput{Username: "alice", Email: "alice@x.com", Password: "password"})
		require.NoError(t, err)

		_, err = svc.CreateUser(&CreateUserInput{Username: "alice", Email: "other@x.com", Password: "password"})
		assert.ErrorIs(t, err, ErrDuplicateIdentity)

		// Exactly one row persists and the first identity is unaffected
		var count int64
		db.Model(&models.User{}).Count(&count)
		assert.EqualValues(t, 1, count)

		var stored models.User
		require.NoError(t, db.Where("username = ?", "alice").First(&stored).Error)
		assert.Equal(t, "alice@x.com", stored.Email)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestIdentityService(db)

		_, err := svc.CreateUser(&CreateUserInput{Username: "alice", Email: "alice@x.com", Password: "password"})
		require.NoError(t, err)

		_, err = svc.CreateUser(&CreateUserInput{Username: "bob", Email: "alice@x.com", Password: "password"})
		assert.ErrorIs(t, err, ErrDuplicateIdentity)

		var count int64
		db.Model(&models.User{}).Count(&count)
		assert.EqualValues(t, 1, count)
	})
}

func TestVerifyCredentials(t *testing.T) {
	t.Run("Correct password", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestIdentityService(db)

		created, err := svc.CreateUser(&CreateUserInput{Username: "alice", Email: "alice@x.com", Password: "secret"})
		require.NoError(t, err)

		user, err := svc.VerifyCredentials("alice@x.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("Failure cases are indistinguishable", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestIdentityService(db)

		_, err := svc.CreateUser(&CreateUserInput{Username: "alice", Email: "alice@x.com", Password: "secret"})
		require.NoError(t, err)

		_, wrongPassword := svc.VerifyCredentials("alice@x.com", "not-the-password")
		_, unknownEmail := svc.VerifyCredentials("nobody@x.com", "secret")

		assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
		assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
		// Same error value, same message: no account-existence oracle
		assert.Equal(t, wrongPassword, unknownEmail)
	})
}
