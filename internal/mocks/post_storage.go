package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/bloggery/internal/auth"
	"github.com/VitaminP8/bloggery/internal/post"
	"github.com/VitaminP8/bloggery/models"
)

// MockPostStorage — ручной мок хранилища постов.
// Err, если задан, возвращается из всех методов (для проверки путей с ошибками).
type MockPostStorage struct {
	mu     sync.Mutex
	posts  map[uint]*models.Post
	nextID uint

	Err error
}

func NewMockPostStorage() *MockPostStorage {
	return &MockPostStorage{
		posts:  make(map[uint]*models.Post),
		nextID: 1,
	}
}

func (m *MockPostStorage) CreatePost(ctx context.Context, title, text string) (*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p := &models.Post{
		Title:    title,
		Text:     text,
		AuthorID: userID,
	}
	p.ID = m.nextID
	p.CreatedAt = time.Now()
	m.nextID++

	m.posts[p.ID] = p
	return p, nil
}

func (m *MockPostStorage) UpdatePost(ctx context.Context, id uint, title, text string) (*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok {
		return nil, post.ErrNotFound
	}
	p.Title = title
	p.Text = text
	p.AuthorID = userID
	return p, nil
}

func (m *MockPostStorage) GetPostByID(id uint) (*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok {
		return nil, post.ErrNotFound
	}
	return p, nil
}

func (m *MockPostStorage) GetPublishedPosts() ([]*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	var posts []*models.Post
	for _, p := range m.posts {
		if p.PublishedAt != nil && !p.PublishedAt.After(now) {
			posts = append(posts, p)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(*posts[j].PublishedAt)
	})
	return posts, nil
}

func (m *MockPostStorage) GetDraftPosts() ([]*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var posts []*models.Post
	for _, p := range m.posts {
		if p.PublishedAt == nil {
			posts = append(posts, p)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.Before(posts[j].CreatedAt)
	})
	return posts, nil
}

func (m *MockPostStorage) PublishPost(id uint) error {
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok {
		return post.ErrNotFound
	}
	now := time.Now()
	p.PublishedAt = &now
	return nil
}

func (m *MockPostStorage) DeletePostByID(id uint) error {
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return post.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}
