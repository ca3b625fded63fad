package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/VitaminP8/bloggery/internal/comment"
	"github.com/VitaminP8/bloggery/internal/forms"
	"github.com/VitaminP8/bloggery/internal/post"
	"github.com/VitaminP8/bloggery/internal/session"
	"github.com/VitaminP8/bloggery/models"
	"github.com/google/uuid"
)

// handleAddComment — форма комментария.
// POST: валидация и сохранение (комментарий остается неодобренным).
// GET: staff и посетители с OAuth-ником получают форму с предзаполненным
// автором, остальные уходят на авторизацию к провайдеру.
func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	p, err := s.PostStore.GetPostByID(id)
	if errors.Is(err, post.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, "could not load post")
		return
	}

	if r.Method == http.MethodPost {
		form := forms.NewCommentForm(r.FormValue("author"), r.FormValue("text"))
		if !form.Validate() {
			s.render(w, "add_comment_to_post", map[string]any{
				"Post": p,
				"Form": form,
				"User": s.currentUser(r),
			})
			return
		}

		if _, err := s.CommentStore.CreateComment(p.ID, form.Author, form.Text); err != nil {
			s.renderError(w, http.StatusInternalServerError, "could not create comment")
			return
		}

		http.Redirect(w, r, postDetailPath(p.ID), http.StatusSeeOther)
		return
	}

	// staff комментирует под своим именем
	if u := s.currentUser(r); u != nil && u.IsStaff {
		form := forms.NewFixedAuthorCommentForm(u.Username, "")
		s.render(w, "add_comment_to_post", map[string]any{"Post": p, "Form": form, "User": u})
		return
	}

	sess := s.Sessions.Get(w, r)

	// посетитель уже проходил OAuth — используем сохраненный ник
	if nick := sess.Get(session.KeyNickname); nick != "" {
		form := forms.NewFixedAuthorCommentForm(nick, "")
		s.render(w, "add_comment_to_post", map[string]any{"Post": p, "Form": form, "User": nil})
		return
	}

	// анонима отправляем к провайдеру; параметры обмена и целевой пост
	// придерживаем в сессии до возврата через callback
	state := uuid.NewString()
	sess.Set(session.KeyClientID, s.OAuth.ClientID())
	sess.Set(session.KeyRedirectURI, s.OAuth.RedirectURL())
	sess.Set(session.KeyPostPK, strconv.FormatUint(uint64(p.ID), 10))
	sess.Set(session.KeyOAuthState, state)

	http.Redirect(w, r, s.OAuth.AuthorizationURL(state), http.StatusSeeOther)
}

func (s *Server) handleCommentApprove(w http.ResponseWriter, r *http.Request, u *models.User) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	c, err := s.CommentStore.GetCommentByID(id)
	if errors.Is(err, comment.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, "could not load comment")
		return
	}

	if err := s.CommentStore.ApproveComment(c.ID); err != nil {
		s.renderError(w, http.StatusInternalServerError, "could not approve comment")
		return
	}

	http.Redirect(w, r, postDetailPath(c.PostID), http.StatusSeeOther)
}

func (s *Server) handleCommentRemove(w http.ResponseWriter, r *http.Request, u *models.User) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	c, err := s.CommentStore.GetCommentByID(id)
	if errors.Is(err, comment.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, "could not load comment")
		return
	}

	if err := s.CommentStore.DeleteCommentByID(c.ID); err != nil {
		s.renderError(w, http.StatusInternalServerError, "could not delete comment")
		return
	}

	http.Redirect(w, r, postDetailPath(c.PostID), http.StatusSeeOther)
}
