package mocks

import (
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/bloggery/internal/comment"
	"github.com/VitaminP8/bloggery/models"
)

// MockCommentStorage — ручной мок хранилища комментариев.
// Err, если задан, возвращается из всех методов.
type MockCommentStorage struct {
	mu       sync.Mutex
	comments map[uint]*models.Comment
	nextID   uint

	Err error
}

func NewMockCommentStorage() *MockCommentStorage {
	return &MockCommentStorage{
		comments: make(map[uint]*models.Comment),
		nextID:   1,
	}
}

func (m *MockCommentStorage) CreateComment(postID uint, author, text string) (*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c := &models.Comment{
		Author:   author,
		Text:     text,
		Approved: false,
		PostID:   postID,
	}
	c.ID = m.nextID
	c.CreatedAt = time.Now()
	m.nextID++

	m.comments[c.ID] = c
	return c, nil
}

func (m *MockCommentStorage) GetCommentByID(id uint) (*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.comments[id]
	if !ok {
		return nil, comment.ErrNotFound
	}
	return c, nil
}

func (m *MockCommentStorage) GetComments(postID uint) ([]*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var comments []*models.Comment
	for _, c := range m.comments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

func (m *MockCommentStorage) ApproveComment(id uint) error {
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.comments[id]
	if !ok {
		return comment.ErrNotFound
	}
	c.Approved = true
	return nil
}

func (m *MockCommentStorage) DeleteCommentByID(id uint) error {
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.comments[id]; !ok {
		return comment.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}
