package user

import (
	"errors"

	"github.com/VitaminP8/bloggery/models"
)

// ErrNotFound возвращается при поиске пользователя по несуществующему ID
var ErrNotFound = errors.New("user not found")

type UserStorage interface {
	RegisterUser(username, password string, isStaff bool) (*models.User, error)
	LoginUser(username, password string) (string, error) // JWT
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	// EnsureUser — идемпотентный upsert: возвращает пользователя с таким
	// username или создает нового без пароля (для OAuth-комментаторов)
	EnsureUser(nickname string) (*models.User, error)
}
