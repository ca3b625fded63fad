package memory

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/VitaminP8/bloggery/internal/user"
	"github.com/VitaminP8/bloggery/models"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

type UserMemoryStorage struct {
	mu        sync.Mutex
	users     map[string]*models.User
	passwords map[string]string
	nextID    uint
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		users:     make(map[string]*models.User),
		passwords: make(map[string]string),
		nextID:    1,
	}
}

func (s *UserMemoryStorage) RegisterUser(username, password string, isStaff bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.users[username]
	if exists {
		return nil, fmt.Errorf("user %s already exists", username)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		Username: username,
		Password: string(hashedPassword),
		IsStaff:  isStaff,
	}
	u.ID = s.nextID
	u.CreatedAt = time.Now()
	s.nextID++

	s.users[username] = u
	s.passwords[username] = string(hashedPassword)

	return u, nil
}

func (s *UserMemoryStorage) LoginUser(username, password string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[username]
	if !exists {
		return "", fmt.Errorf("user %s not found", username)
	}

	hashedPassword, ok := s.passwords[username]
	if !ok {
		return "", fmt.Errorf("password for user %s not found", username)
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		return "", fmt.Errorf("password for user %s is incorrect", username)
	}

	// достаем из .env jwtSecret
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return "", errors.New("JWT_SECRET is not set in environment")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  u.ID,
		"username": u.Username,
		"is_staff": u.IsStaff,
		"exp":      time.Now().Add(72 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func (s *UserMemoryStorage) GetUserByID(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}

	return nil, user.ErrNotFound
}

func (s *UserMemoryStorage) GetUserByUsername(username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[username]
	if !exists {
		return nil, user.ErrNotFound
	}

	return u, nil
}

// EnsureUser идемпотентно создает пользователя-заглушку для OAuth-комментатора
func (s *UserMemoryStorage) EnsureUser(nickname string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, exists := s.users[nickname]; exists {
		return u, nil
	}

	u := &models.User{
		Username: nickname,
	}
	u.ID = s.nextID
	u.CreatedAt = time.Now()
	s.nextID++

	s.users[nickname] = u
	return u, nil
}
