package mocks

import (
	"fmt"
	"sync"

	"github.com/VitaminP8/bloggery/internal/user"
	"github.com/VitaminP8/bloggery/models"
)

// MockUserStorage — ручной мок хранилища пользователей.
// LoginUser возвращает фиктивный токен без подписи JWT.
type MockUserStorage struct {
	mu     sync.Mutex
	users  map[string]*models.User
	nextID uint

	Err error
}

func NewMockUserStorage() *MockUserStorage {
	return &MockUserStorage{
		users:  make(map[string]*models.User),
		nextID: 1,
	}
}

func (m *MockUserStorage) RegisterUser(username, password string, isStaff bool) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[username]; ok {
		return nil, fmt.Errorf("user %s already exists", username)
	}

	u := &models.User{
		Username: username,
		Password: password,
		IsStaff:  isStaff,
	}
	u.ID = m.nextID
	m.nextID++

	m.users[username] = u
	return u, nil
}

func (m *MockUserStorage) LoginUser(username, password string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[username]
	if !ok || u.Password != password {
		return "", fmt.Errorf("invalid password or username")
	}
	return "mock-token-" + username, nil
}

func (m *MockUserStorage) GetUserByID(id uint) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (m *MockUserStorage) GetUserByUsername(username string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[username]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (m *MockUserStorage) EnsureUser(nickname string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if u, ok := m.users[nickname]; ok {
		return u, nil
	}

	u := &models.User{
		Username: nickname,
	}
	u.ID = m.nextID
	m.nextID++

	m.users[nickname] = u
	return u, nil
}
