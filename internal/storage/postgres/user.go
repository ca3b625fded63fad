package postgres

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/VitaminP8/bloggery/internal/user"
	"github.com/VitaminP8/bloggery/models"
	"github.com/golang-jwt/jwt"
	"github.com/jinzhu/gorm"

	"golang.org/x/crypto/bcrypt"
)

type UserPostgresStorage struct{}

func NewUserPostgresStorage() *UserPostgresStorage {
	return &UserPostgresStorage{}
}

func (s *UserPostgresStorage) RegisterUser(username, password string, isStaff bool) (*models.User, error) {
	// проверка - существует ли такой пользователь
	var existUser models.User
	err := DB.Where("username = ?", username).First(&existUser).Error
	if err == nil {
		return nil, fmt.Errorf("user with username %s already exists", username)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		Username: username,
		Password: string(hashedPassword),
		IsStaff:  isStaff,
	}

	err = DB.Create(u).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

func (s *UserPostgresStorage) LoginUser(username, password string) (string, error) {
	// проверка - существует ли такой пользователь
	var u models.User
	err := DB.Where("username = ?", username).First(&u).Error
	if err != nil {
		return "", fmt.Errorf("user with username %s not found", username)
	}

	err = bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	if err != nil {
		return "", fmt.Errorf("invalid password or username: %w", err)
	}

	// достаем из .env jwtSecret
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return "", errors.New("JWT_SECRET is not set in environment")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  u.ID,
		"username": u.Username,
		"is_staff": u.IsStaff,
		"exp":      time.Now().Add(72 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func (s *UserPostgresStorage) GetUserByID(id uint) (*models.User, error) {
	var u models.User
	err := DB.First(&u, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user by id: %w", err)
	}

	return &u, nil
}

func (s *UserPostgresStorage) GetUserByUsername(username string) (*models.User, error) {
	var u models.User
	err := DB.Where("username = ?", username).First(&u).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user by username: %w", err)
	}

	return &u, nil
}

// EnsureUser идемпотентно создает пользователя-заглушку для OAuth-комментатора.
// Пароль не задается — такой пользователь не может войти через форму логина.
func (s *UserPostgresStorage) EnsureUser(nickname string) (*models.User, error) {
	var u models.User
	err := DB.Where("username = ?", nickname).First(&u).Error
	if err == nil {
		return &u, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("could not look up user: %w", err)
	}

	u = models.User{
		Username: nickname,
	}

	err = DB.Create(&u).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &u, nil
}
