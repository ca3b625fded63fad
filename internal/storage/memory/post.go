package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/bloggery/internal/auth"
	"github.com/VitaminP8/bloggery/internal/post"
	"github.com/VitaminP8/bloggery/models"
)

type PostMemoryStorage struct {
	mu      sync.Mutex
	posts   map[uint]*models.Post
	nextID  uint
	cascade func(postID uint) // каскадное удаление комментариев (см. OnDelete)
}

func NewPostMemoryStorage() *PostMemoryStorage {
	return &PostMemoryStorage{
		posts:  make(map[uint]*models.Post),
		nextID: 1,
	}
}

func (s *PostMemoryStorage) CreatePost(ctx context.Context, title, text string) (*models.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := &models.Post{
		Title:    title,
		Text:     text,
		AuthorID: userID,
	}
	p.ID = s.nextID
	p.CreatedAt = time.Now()
	s.nextID++

	s.posts[p.ID] = p
	return p, nil
}

func (s *PostMemoryStorage) UpdatePost(ctx context.Context, id uint, title, text string) (*models.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
		return nil, post.ErrNotFound
	}

	p.Title = title
	p.Text = text
	p.AuthorID = userID
	p.UpdatedAt = time.Now()

	return p, nil
}

func (s *PostMemoryStorage) GetPostByID(id uint) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
		return nil, post.ErrNotFound
	}

	return p, nil
}

func (s *PostMemoryStorage) GetPublishedPosts() ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var posts []*models.Post
	for _, p := range s.posts {
		if p.PublishedAt != nil && !p.PublishedAt.After(now) {
			posts = append(posts, p)
		}
	}

	// свежие публикации сверху
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(*posts[j].PublishedAt)
	})

	return posts, nil
}

func (s *PostMemoryStorage) GetDraftPosts() ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []*models.Post
	for _, p := range s.posts {
		if p.PublishedAt == nil {
			posts = append(posts, p)
		}
	}

	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID < posts[j].ID // дополнительная сортировка по ID
		}
		return posts[i].CreatedAt.Before(posts[j].CreatedAt)
	})

	return posts, nil
}

func (s *PostMemoryStorage) PublishPost(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
		return post.ErrNotFound
	}

	// повторная публикация перезаписывает отметку времени
	now := time.Now()
	p.PublishedAt = &now

	return nil
}

// OnDelete регистрирует обработчик каскадного удаления (в PostgreSQL это делает само хранилище)
func (s *PostMemoryStorage) OnDelete(cascade func(postID uint)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cascade = cascade
}

func (s *PostMemoryStorage) DeletePostByID(id uint) error {
	s.mu.Lock()

	if _, exists := s.posts[id]; !exists {
		s.mu.Unlock()
		return post.ErrNotFound
	}

	delete(s.posts, id)
	cascade := s.cascade
	// хук зовем без мьютекса, чтобы не пересекаться с блокировкой хранилища комментариев
	s.mu.Unlock()

	if cascade != nil {
		cascade(id)
	}
	return nil
}
