package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

type User struct {
	gorm.Model
	Username string `gorm:"unique"`
	Password string // bcrypt-хэш (пустой для OAuth-пользователей)
	IsStaff  bool
	Posts    []Post `gorm:"foreignkey:AuthorID"`
}

type Post struct {
	gorm.Model
	Title       string
	Text        string
	AuthorID    uint
	PublishedAt *time.Time // nil = черновик (не показывается в публичном списке)
	Comments    []Comment  `gorm:"foreignkey:PostID"`
}

type Comment struct {
	gorm.Model
	Author   string
	Text     string
	Approved bool
	PostID   uint
}
