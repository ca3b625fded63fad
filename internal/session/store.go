// Package session — серверное хранилище сессий посетителей.
// В cookie уходит только случайный идентификатор, значения живут в памяти процесса.
package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Ключи сессии, используемые OAuth-сценарием комментирования
const (
	KeyClientID    = "client_id"
	KeyRedirectURI = "redirect_uri"
	KeyPostPK      = "post_primary_key"
	KeyOAuthState  = "oauth_state"
	KeyNickname    = "nickName"
)

const DefaultTTL = 24 * time.Hour

type Session struct {
	mu     sync.Mutex
	id     string
	values map[string]string
	expiry time.Time
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

func (s *Session) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration

	CookieName string
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions:   make(map[string]*Session),
		ttl:        ttl,
		CookieName: "blog_session",
	}
}

// Get возвращает сессию запроса; если её нет (или она истекла) —
// создает новую и выставляет cookie
func (st *Store) Get(w http.ResponseWriter, r *http.Request) *Session {
	if cookie, err := r.Cookie(st.CookieName); err == nil {
		if sess := st.Lookup(cookie.Value); sess != nil {
			return sess
		}
	}

	sess := st.newSession()
	http.SetCookie(w, &http.Cookie{
		Name:     st.CookieName,
		Value:    sess.id,
		Path:     "/",
		Expires:  sess.expiry,
		HttpOnly: true,
	})
	return sess
}

// Lookup возвращает живую сессию по ID или nil; истекшие сессии удаляются лениво
func (st *Store) Lookup(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, exists := st.sessions[id]
	if !exists {
		return nil
	}
	if time.Now().After(sess.expiry) {
		delete(st.sessions, id)
		return nil
	}
	return sess
}

func (st *Store) newSession() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess := &Session{
		id:     uuid.NewString(),
		values: make(map[string]string),
		expiry: time.Now().Add(st.ttl),
	}
	st.sessions[sess.id] = sess
	return sess
}
