package comment

import (
	"errors"

	"github.com/VitaminP8/bloggery/models"
)

// ErrNotFound возвращается при поиске комментария по несуществующему ID
var ErrNotFound = errors.New("comment not found")

type CommentStorage interface {
	CreateComment(postID uint, author, text string) (*models.Comment, error)
	GetCommentByID(id uint) (*models.Comment, error)
	GetComments(postID uint) ([]*models.Comment, error)
	ApproveComment(id uint) error
	DeleteCommentByID(id uint) error
}
