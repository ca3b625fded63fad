package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithUserIDAndGetUserIDFromContext(t *testing.T) {
	t.Run("Store and retrieve user ID from context", func(t *testing.T) {
		ctx := context.Background()

		userID := uint(123)
		ctx = WithUserID(ctx, userID)

		retrievedID, err := GetUserIDFromContext(ctx)
		assert.NoError(t, err)
		assert.Equal(t, userID, retrievedID)
	})

	t.Run("Error when user ID not in context", func(t *testing.T) {
		ctx := context.Background()

		_, err := GetUserIDFromContext(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found in context")
	})

	t.Run("Error when context value is not uint", func(t *testing.T) {
		// Создаем контекст с неправильным типом значения
		ctx := context.WithValue(context.Background(), userIDKey, "not-a-uint")

		_, err := GetUserIDFromContext(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found in context")
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	t.Run("Valid Bearer token", func(t *testing.T) {
		token := extractTokenFromHeader("Bearer token123")
		assert.Equal(t, "token123", token)
	})

	t.Run("Invalid format - no Bearer prefix", func(t *testing.T) {
		token := extractTokenFromHeader("NotBearer token123")
		assert.Equal(t, "", token)
	})

	t.Run("Empty header", func(t *testing.T) {
		token := extractTokenFromHeader("")
		assert.Equal(t, "", token)
	})
}

func TestAuthMiddleware(t *testing.T) {
	// Создаем тестовый обработчик, который будет проверять наличие userID в контексте
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := GetUserIDFromContext(r.Context())
		if err == nil {
			fmt.Fprintf(w, "User ID: %d", userID)
		} else {
			fmt.Fprint(w, "No user ID in context")
		}
	})

	handler := AuthMiddleware(testHandler)

	// Сохраняем текущее значение JWT_SECRET
	originalSecret := os.Getenv("JWT_SECRET")
	testSecret := "test_jwt_secret"
	os.Setenv("JWT_SECRET", testSecret)
	defer os.Setenv("JWT_SECRET", originalSecret)

	signToken := func(t *testing.T, secret string, exp time.Time) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id":  float64(123),
			"username": "testuser",
			"exp":      exp.Unix(),
		})
		tokenString, err := token.SignedString([]byte(secret))
		require.NoError(t, err)
		return tokenString
	}

	t.Run("Valid token in cookie", func(t *testing.T) {
		tokenString := signToken(t, testSecret, time.Now().Add(time.Hour))

		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: tokenString})

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "User ID: 123", w.Body.String())
	})

	t.Run("Valid token in Authorization header", func(t *testing.T) {
		tokenString := signToken(t, testSecret, time.Now().Add(time.Hour))

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "User ID: 123", w.Body.String())
	})

	t.Run("Invalid token signature", func(t *testing.T) {
		tokenString := signToken(t, "wrong_secret", time.Now().Add(time.Hour))

		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: tokenString})

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "No user ID in context", w.Body.String())
	})

	t.Run("Expired token", func(t *testing.T) {
		tokenString := signToken(t, testSecret, time.Now().Add(-time.Hour))

		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: tokenString})

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "No user ID in context", w.Body.String())
	})

	t.Run("No token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "No user ID in context", w.Body.String())
	})

	t.Run("No JWT_SECRET", func(t *testing.T) {
		// Временно убираем JWT_SECRET из окружения
		os.Unsetenv("JWT_SECRET")
		defer os.Setenv("JWT_SECRET", testSecret)

		tokenString := signToken(t, testSecret, time.Now().Add(time.Hour))

		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: tokenString})

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "JWT secret not set")
	})
}
