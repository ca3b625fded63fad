// Package forms — валидация форм поста и комментария.
// Валидаторы не трогают хранилище: только поля и ошибки по полям.
package forms

import "strings"

const (
	maxTitleLen = 200
	maxTextLen  = 2000
)

type PostForm struct {
	Title  string
	Text   string
	Errors map[string]string
}

func NewPostForm(title, text string) *PostForm {
	return &PostForm{
		Title:  strings.TrimSpace(title),
		Text:   strings.TrimSpace(text),
		Errors: make(map[string]string),
	}
}

func (f *PostForm) Validate() bool {
	if f.Title == "" {
		f.Errors["title"] = "title is required"
	} else if len(f.Title) > maxTitleLen {
		f.Errors["title"] = "title is too long"
	}

	if f.Text == "" {
		f.Errors["text"] = "text is required"
	}

	return len(f.Errors) == 0
}

type CommentForm struct {
	Author string
	Text   string
	// AuthorFixed = true, когда автор задан вызывающим кодом (staff или OAuth-ник)
	// и поле рендерится только для чтения
	AuthorFixed bool
	Errors      map[string]string
}

func NewCommentForm(author, text string) *CommentForm {
	return &CommentForm{
		Author: strings.TrimSpace(author),
		Text:   strings.TrimSpace(text),
		Errors: make(map[string]string),
	}
}

// NewFixedAuthorCommentForm — форма с предзаполненным, нередактируемым автором
func NewFixedAuthorCommentForm(author, text string) *CommentForm {
	f := NewCommentForm(author, text)
	f.AuthorFixed = true
	return f
}

func (f *CommentForm) Validate() bool {
	if f.Author == "" {
		f.Errors["author"] = "author is required"
	}

	if f.Text == "" {
		f.Errors["text"] = "text is required"
	} else if len(f.Text) > maxTextLen {
		f.Errors["text"] = "text is too long"
	}

	return len(f.Errors) == 0
}
