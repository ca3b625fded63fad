package server

import (
	"log"
	"net/http"

	"github.com/VitaminP8/bloggery/internal/session"
)

// handleOAuthCallback завершает authorization-code flow: меняет код на токен,
// забирает профиль, создает локального пользователя по нику и возвращает
// посетителя на форму комментария.
func (s *Server) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		s.renderError(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	sess := s.Sessions.Get(w, r)

	postPK := sess.Get(session.KeyPostPK)
	state := sess.Get(session.KeyOAuthState)
	if postPK == "" || state == "" {
		// callback без начатого сценария (или сессия истекла)
		s.renderError(w, http.StatusBadRequest, "no pending authorization")
		return
	}

	// защита от подмены ответа провайдера
	if r.URL.Query().Get("state") != state {
		s.renderError(w, http.StatusBadRequest, "state mismatch")
		return
	}

	token, err := s.OAuth.Exchange(r.Context(), code)
	if err != nil {
		log.Printf("oauth: token exchange failed: %v", err)
		s.renderError(w, http.StatusBadGateway, "authorization failed, please try again")
		return
	}

	profile, err := s.OAuth.UserProfile(r.Context(), token)
	if err != nil {
		log.Printf("oauth: profile fetch failed: %v", err)
		s.renderError(w, http.StatusBadGateway, "authorization failed, please try again")
		return
	}

	nickname := profile.Nickname()
	if _, err := s.UserStore.EnsureUser(nickname); err != nil {
		log.Printf("oauth: ensure user failed: %v", err)
		s.renderError(w, http.StatusInternalServerError, "could not create user")
		return
	}

	sess.Set(session.KeyNickname, nickname)

	// одноразовые ключи сценария больше не нужны
	sess.Delete(session.KeyClientID)
	sess.Delete(session.KeyRedirectURI)
	sess.Delete(session.KeyPostPK)
	sess.Delete(session.KeyOAuthState)

	http.Redirect(w, r, "/post/"+postPK+"/comment", http.StatusSeeOther)
}
