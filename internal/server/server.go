// Package server — HTTP-поверхность блога: маршруты, рендеринг шаблонов,
// проверка staff-доступа.
package server

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/VitaminP8/bloggery/internal/auth"
	"github.com/VitaminP8/bloggery/internal/comment"
	"github.com/VitaminP8/bloggery/internal/oauth/kakao"
	"github.com/VitaminP8/bloggery/internal/post"
	"github.com/VitaminP8/bloggery/internal/session"
	"github.com/VitaminP8/bloggery/internal/user"
	"github.com/VitaminP8/bloggery/models"
)

type Server struct {
	PostStore    post.PostStorage
	CommentStore comment.CommentStorage
	UserStore    user.UserStorage
	Sessions     *session.Store
	OAuth        *kakao.Client

	tmpl map[string]*template.Template
	mux  http.Handler
}

func New(postStore post.PostStorage, commentStore comment.CommentStorage, userStore user.UserStorage,
	sessions *session.Store, oauthClient *kakao.Client, templateDir string) (*Server, error) {

	templates := map[string]*template.Template{}
	layout := filepath.Join(templateDir, "layout.html")
	pages, err := filepath.Glob(filepath.Join(templateDir, "*.html"))
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		if filepath.Base(page) == "layout.html" {
			continue
		}
		t, err := template.ParseFiles(layout, page)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(page), ".html")
		templates[name] = t
	}

	s := &Server{
		PostStore:    postStore,
		CommentStore: commentStore,
		UserStore:    userStore,
		Sessions:     sessions,
		OAuth:        oauthClient,
		tmpl:         templates,
	}
	s.mux = auth.AuthMiddleware(s.routes())

	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePostList)
	mux.HandleFunc("GET /post/{id}", s.handlePostDetail)
	mux.HandleFunc("GET /post/new", s.requireStaff(s.handlePostNew))
	mux.HandleFunc("POST /post/new", s.requireStaff(s.handlePostNew))
	mux.HandleFunc("GET /post/{id}/edit", s.requireStaff(s.handlePostEdit))
	mux.HandleFunc("POST /post/{id}/edit", s.requireStaff(s.handlePostEdit))
	mux.HandleFunc("GET /drafts", s.requireStaff(s.handleDraftList))
	mux.HandleFunc("POST /post/{id}/publish", s.requireStaff(s.handlePostPublish))
	mux.HandleFunc("POST /post/{id}/remove", s.requireStaff(s.handlePostRemove))
	mux.HandleFunc("GET /post/{id}/comment", s.handleAddComment)
	mux.HandleFunc("POST /post/{id}/comment", s.handleAddComment)
	mux.HandleFunc("POST /comment/{id}/approve", s.requireStaff(s.handleCommentApprove))
	mux.HandleFunc("POST /comment/{id}/remove", s.requireStaff(s.handleCommentRemove))
	mux.HandleFunc("GET /oauth", s.handleOAuthCallback)
	mux.HandleFunc("GET /login", s.handleLogin)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)
	return mux
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	t, ok := s.tmpl[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

// renderError показывает страницу с ошибкой вместо необработанного 500
func (s *Server) renderError(w http.ResponseWriter, status int, message string) {
	t, ok := s.tmpl["error"]
	if !ok {
		http.Error(w, message, status)
		return
	}
	w.WriteHeader(status)
	_ = t.ExecuteTemplate(w, "layout", map[string]any{"Message": message})
}

// currentUser возвращает пользователя запроса или nil (анонимный доступ)
func (s *Server) currentUser(r *http.Request) *models.User {
	userID, err := auth.GetUserIDFromContext(r.Context())
	if err != nil {
		return nil
	}
	u, err := s.UserStore.GetUserByID(userID)
	if err != nil {
		return nil
	}
	return u
}

// requireStaff — обертка для обработчиков, доступных только staff-пользователям.
// Анонимов отправляем на логин, остальных — 403
func (s *Server) requireStaff(next func(http.ResponseWriter, *http.Request, *models.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := s.currentUser(r)
		if u == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if !u.IsStaff {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next(w, r, u)
	}
}

// pathID разбирает {id} из пути запроса
func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", r.PathValue("id"))
	}
	return uint(id), nil
}

func postDetailPath(id uint) string {
	return fmt.Sprintf("/post/%d", id)
}
