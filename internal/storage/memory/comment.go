package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/bloggery/internal/comment"
	"github.com/VitaminP8/bloggery/internal/post"
	"github.com/VitaminP8/bloggery/models"
)

type CommentMemoryStorage struct {
	mu          sync.Mutex
	comments    map[uint]*models.Comment
	nextID      uint
	postStorage post.PostStorage // Хранилище постов (внедрение зависимости (DI))
}

func NewCommentMemoryStorage(postStore post.PostStorage) *CommentMemoryStorage {
	return &CommentMemoryStorage{
		comments:    make(map[uint]*models.Comment),
		nextID:      1,
		postStorage: postStore,
	}
}

func (s *CommentMemoryStorage) CreateComment(postID uint, author, text string) (*models.Comment, error) {
	if len(text) > 2000 || len(text) == 0 {
		return nil, fmt.Errorf("text is too long or empty")
	}

	// проверяем, что пост существует (до захвата мьютекса — см. порядок блокировок в OnDelete)
	if _, err := s.postStorage.GetPostByID(postID); err != nil {
		return nil, fmt.Errorf("post with ID %d not found", postID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// комментарий всегда создается неодобренным
	c := &models.Comment{
		Author:   author,
		Text:     text,
		Approved: false,
		PostID:   postID,
	}
	c.ID = s.nextID
	c.CreatedAt = time.Now()
	s.nextID++

	s.comments[c.ID] = c
	return c, nil
}

func (s *CommentMemoryStorage) GetCommentByID(id uint) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.comments[id]
	if !exists {
		return nil, comment.ErrNotFound
	}

	return c, nil
}

func (s *CommentMemoryStorage) GetComments(postID uint) ([]*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var comments []*models.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}

	// Сортируем по CreatedAt (по возрастанию) (и по ID в случае одинакового времени создания)
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})

	return comments, nil
}

func (s *CommentMemoryStorage) ApproveComment(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.comments[id]
	if !exists {
		return comment.ErrNotFound
	}

	c.Approved = true
	return nil
}

func (s *CommentMemoryStorage) DeleteCommentByID(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.comments[id]; !exists {
		return comment.ErrNotFound
	}

	delete(s.comments, id)
	return nil
}

// DeleteCommentsForPost удаляет все комментарии поста (каскад при удалении поста)
func (s *CommentMemoryStorage) DeleteCommentsForPost(postID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, c := range s.comments {
		if c.PostID == postID {
			delete(s.comments, id)
		}
	}
}
