package server

import (
	"errors"
	"net/http"

	"github.com/VitaminP8/bloggery/internal/forms"
	"github.com/VitaminP8/bloggery/internal/post"
	"github.com/VitaminP8/bloggery/models"
)

func (s *Server) handlePostList(w http.ResponseWriter, r *http.Request) {
	posts, err := s.PostStore.GetPublishedPosts()
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, "could not load posts")
		return
	}

	s.render(w, "post_list", map[string]any{
		"Posts": posts,
		"User":  s.currentUser(r),
	})
}

func (s *Server) handlePostDetail(w http.ResponseWriter, r *http.Request) {
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

	comments, err := s.CommentStore.GetComments(p.ID)
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, "could not load comments")
		return
	}

	u := s.currentUser(r)

	// посетители видят только одобренные комментарии, staff — все
	if u == nil || !u.IsStaff {
		approved := comments[:0]
		for _, c := range comments {
			if c.Approved {
				approved = append(approved, c)
			}
		}
		comments = approved
	}

	var authorName string
	if author, err := s.UserStore.GetUserByID(p.AuthorID); err == nil {
		authorName = author.Username
	}

	s.render(w, "post_detail", map[string]any{
		"Post":     p,
		"Comments": comments,
		"Author":   authorName,
		"User":     u,
	})
}

func (s *Server) handlePostNew(w http.ResponseWriter, r *http.Request, u *models.User) {
	if r.Method == http.MethodPost {
		form := forms.NewPostForm(r.FormValue("title"), r.FormValue("text"))
		if !form.Validate() {
			s.render(w, "post_edit", map[string]any{"Form": form, "User": u})
			return
		}

		p, err := s.PostStore.CreatePost(r.Context(), form.Title, form.Text)
		if err != nil {
			s.renderError(w, http.StatusInternalServerError, "could not create post")
			return
		}

		http.Redirect(w, r, postDetailPath(p.ID), http.StatusSeeOther)
		return
	}

	s.render(w, "post_edit", map[string]any{"Form": forms.NewPostForm("", ""), "User": u})
}

func (s *Server) handlePostEdit(w http.ResponseWriter, r *http.Request, u *models.User) {
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
		form := forms.NewPostForm(r.FormValue("title"), r.FormValue("text"))
		if !form.Validate() {
			s.render(w, "post_edit", map[string]any{"Form": form, "Post": p, "User": u})
			return
		}

		updated, err := s.PostStore.UpdatePost(r.Context(), p.ID, form.Title, form.Text)
		if err != nil {
			s.renderError(w, http.StatusInternalServerError, "could not update post")
			return
		}

		http.Redirect(w, r, postDetailPath(updated.ID), http.StatusSeeOther)
		return
	}

	form := forms.NewPostForm(p.Title, p.Text)
	s.render(w, "post_edit", map[string]any{"Form": form, "Post": p, "User": u})
}

func (s *Server) handleDraftList(w http.ResponseWriter, r *http.Request, u *models.User) {
	posts, err := s.PostStore.GetDraftPosts()
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, "could not load drafts")
		return
	}

	s.render(w, "post_draft_list", map[string]any{
		"Posts": posts,
		"User":  u,
	})
}

func (s *Server) handlePostPublish(w http.ResponseWriter, r *http.Request, u *models.User) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	err = s.PostStore.PublishPost(id)
	if errors.Is(err, post.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, "could not publish post")
		return
	}

	http.Redirect(w, r, postDetailPath(id), http.StatusSeeOther)
}

func (s *Server) handlePostRemove(w http.ResponseWriter, r *http.Request, u *models.User) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	err = s.PostStore.DeletePostByID(id)
	if errors.Is(err, post.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, "could not delete post")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
