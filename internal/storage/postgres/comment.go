package postgres

import (
	"fmt"

	"github.com/VitaminP8/bloggery/internal/comment"
	"github.com/VitaminP8/bloggery/internal/post"
	"github.com/VitaminP8/bloggery/models"
	"github.com/jinzhu/gorm"
)

type CommentPostgresStorage struct{}

func NewCommentPostgresStorage() *CommentPostgresStorage {
	return &CommentPostgresStorage{}
}

func (s *CommentPostgresStorage) CreateComment(postID uint, author, text string) (*models.Comment, error) {
	if len(text) > 2000 || len(text) == 0 {
		return nil, fmt.Errorf("text is too long or empty")
	}

	var p models.Post
	err := DB.First(&p, postID).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, post.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get post by id: %w", err)
	}

	// комментарий всегда создается неодобренным
	c := &models.Comment{
		Author:   author,
		Text:     text,
		Approved: false,
		PostID:   postID,
	}

	err = DB.Create(c).Error
	if err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	return c, nil
}

func (s *CommentPostgresStorage) GetCommentByID(id uint) (*models.Comment, error) {
	var c models.Comment
	err := DB.First(&c, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, comment.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get comment by id: %w", err)
	}

	return &c, nil
}

func (s *CommentPostgresStorage) GetComments(postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := DB.
		Where("post_id = ?", postID).
		Order("created_at asc").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}

	return comments, nil
}

func (s *CommentPostgresStorage) ApproveComment(id uint) error {
	var c models.Comment
	err := DB.First(&c, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return comment.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("could not get comment by id: %w", err)
	}

	err = DB.Model(&c).Update("approved", true).Error
	if err != nil {
		return fmt.Errorf("could not approve comment: %w", err)
	}

	return nil
}

func (s *CommentPostgresStorage) DeleteCommentByID(id uint) error {
	var c models.Comment
	err := DB.First(&c, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return comment.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("could not get comment by id: %w", err)
	}

	err = DB.Delete(&models.Comment{}, id).Error
	if err != nil {
		return fmt.Errorf("could not delete comment: %w", err)
	}

	return nil
}
