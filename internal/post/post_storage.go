package post

import (
	"context"
	"errors"

	"github.com/VitaminP8/bloggery/models"
)

// ErrNotFound возвращается при поиске поста по несуществующему ID
var ErrNotFound = errors.New("post not found")

type PostStorage interface {
	CreatePost(ctx context.Context, title, text string) (*models.Post, error)
	UpdatePost(ctx context.Context, id uint, title, text string) (*models.Post, error)
	GetPostByID(id uint) (*models.Post, error)
	GetPublishedPosts() ([]*models.Post, error)
	GetDraftPosts() ([]*models.Post, error)
	PublishPost(id uint) error
	DeletePostByID(id uint) error
}
