package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/VitaminP8/bloggery/internal/auth"
	"github.com/VitaminP8/bloggery/internal/post"
	"github.com/VitaminP8/bloggery/models"
	"github.com/jinzhu/gorm"
)

type PostPostgresStorage struct{}

func NewPostPostgresStorage() *PostPostgresStorage {
	return &PostPostgresStorage{}
}

func (s *PostPostgresStorage) CreatePost(ctx context.Context, title, text string) (*models.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get user id from context: %w", err)
	}

	// PublishedAt не устанавливаем — новый пост остается черновиком
	p := &models.Post{
		Title:    title,
		Text:     text,
		AuthorID: userID,
	}

	err = DB.Create(p).Error
	if err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}

	return p, nil
}

func (s *PostPostgresStorage) UpdatePost(ctx context.Context, id uint, title, text string) (*models.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get user id from context: %w", err)
	}

	var p models.Post
	err = DB.First(&p, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, post.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get post by id: %w", err)
	}

	p.Title = title
	p.Text = text
	p.AuthorID = userID

	err = DB.Save(&p).Error
	if err != nil {
		return nil, fmt.Errorf("could not update post: %w", err)
	}

	return &p, nil
}

func (s *PostPostgresStorage) GetPostByID(id uint) (*models.Post, error) {
	var p models.Post
	err := DB.First(&p, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, post.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get post by id: %w", err)
	}

	return &p, nil
}

func (s *PostPostgresStorage) GetPublishedPosts() ([]*models.Post, error) {
	var posts []*models.Post
	err := DB.
		Where("published_at IS NOT NULL AND published_at <= ?", time.Now()).
		Order("published_at desc").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("could not get published posts: %w", err)
	}

	return posts, nil
}

func (s *PostPostgresStorage) GetDraftPosts() ([]*models.Post, error) {
	var posts []*models.Post
	err := DB.
		Where("published_at IS NULL").
		Order("created_at asc").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("could not get draft posts: %w", err)
	}

	return posts, nil
}

func (s *PostPostgresStorage) PublishPost(id uint) error {
	var p models.Post
	err := DB.First(&p, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return post.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("could not get post by id: %w", err)
	}

	// повторная публикация перезаписывает отметку времени
	now := time.Now()
	err = DB.Model(&p).Update("published_at", now).Error
	if err != nil {
		return fmt.Errorf("could not publish post: %w", err)
	}

	return nil
}

func (s *PostPostgresStorage) DeletePostByID(id uint) error {
	var p models.Post
	err := DB.First(&p, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return post.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("could not get post by id: %w", err)
	}

	// сначала каскадно удаляем комментарии поста
	err = DB.Where("post_id = ?", id).Delete(&models.Comment{}).Error
	if err != nil {
		return fmt.Errorf("could not delete comments of post: %w", err)
	}

	err = DB.Delete(&models.Post{}, id).Error
	if err != nil {
		return fmt.Errorf("could not delete post: %w", err)
	}

	return nil
}
