package memory

import (
	"os"
	"testing"

	"github.com/VitaminP8/bloggery/internal/user"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMemoryStorage_RegisterUser(t *testing.T) {
	storage := NewUserMemoryStorage()

	t.Run("Success registration", func(t *testing.T) {
		u, err := storage.RegisterUser("admin", "secret", true)
		require.NoError(t, err)
		assert.Equal(t, "admin", u.Username)
		assert.True(t, u.IsStaff)
	})

	t.Run("Error: duplicate username", func(t *testing.T) {
		_, err := storage.RegisterUser("admin", "other", false)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}

func TestUserMemoryStorage_LoginUser(t *testing.T) {
	storage := NewUserMemoryStorage()

	// Сохраняем текущее значение JWT_SECRET
	originalSecret := os.Getenv("JWT_SECRET")
	testSecret := "test_jwt_secret"
	os.Setenv("JWT_SECRET", testSecret)
	defer os.Setenv("JWT_SECRET", originalSecret)

	registered, err := storage.RegisterUser("admin", "secret", true)
	require.NoError(t, err)

	t.Run("Success login returns signed token", func(t *testing.T) {
		tokenString, err := storage.LoginUser("admin", "secret")
		require.NoError(t, err)

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		require.True(t, token.Valid)

		claims, ok := token.Claims.(jwt.MapClaims)
		require.True(t, ok)
		assert.Equal(t, float64(registered.ID), claims["user_id"])
		assert.Equal(t, true, claims["is_staff"])
	})

	t.Run("Error: wrong password", func(t *testing.T) {
		_, err := storage.LoginUser("admin", "wrong")
		assert.Error(t, err)
	})

	t.Run("Error: unknown user", func(t *testing.T) {
		_, err := storage.LoginUser("ghost", "secret")
		assert.Error(t, err)
	})
}

func TestUserMemoryStorage_GetUserByID(t *testing.T) {
	storage := NewUserMemoryStorage()

	registered, err := storage.RegisterUser("admin", "secret", true)
	require.NoError(t, err)

	t.Run("Returns user", func(t *testing.T) {
		u, err := storage.GetUserByID(registered.ID)
		require.NoError(t, err)
		assert.Equal(t, "admin", u.Username)
	})

	t.Run("Error: user not found", func(t *testing.T) {
		_, err := storage.GetUserByID(9999)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestUserMemoryStorage_GetUserByUsername(t *testing.T) {
	storage := NewUserMemoryStorage()

	_, err := storage.RegisterUser("admin", "secret", true)
	require.NoError(t, err)

	t.Run("Returns user", func(t *testing.T) {
		u, err := storage.GetUserByUsername("admin")
		require.NoError(t, err)
		assert.True(t, u.IsStaff)
	})

	t.Run("Error: user not found", func(t *testing.T) {
		_, err := storage.GetUserByUsername("ghost")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestUserMemoryStorage_EnsureUser(t *testing.T) {
	storage := NewUserMemoryStorage()

	t.Run("Creates passwordless user once", func(t *testing.T) {
		first, err := storage.EnsureUser("Alice#42")
		require.NoError(t, err)
		assert.Equal(t, "Alice#42", first.Username)
		assert.Empty(t, first.Password)
		assert.False(t, first.IsStaff)

		// повторный вызов идемпотентен
		second, err := storage.EnsureUser("Alice#42")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("Existing user is returned as is", func(t *testing.T) {
		registered, err := storage.RegisterUser("admin", "secret", true)
		require.NoError(t, err)

		u, err := storage.EnsureUser("admin")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
		assert.True(t, u.IsStaff)
	})
}
