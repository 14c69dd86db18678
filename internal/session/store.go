// Package session keeps per-browser values in process memory.
package session

import (
	"net/http"
	"sync"
)

// CookieName carries the session id.
const CookieName = "loanapp_session"

// Store maps a session id to its values.
type Store struct {
	mu   sync.Mutex
	data map[string]map[string]any
}

func NewStore() *Store {
	return &Store{data: make(map[string]map[string]any)}
}

// Set stores a value under id.
func (s *Store) Set(id, key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vals, ok := s.data[id]
	if !ok {
		vals = make(map[string]any)
		s.data[id] = vals
	}
	vals[key] = value
}

// Get returns the value stored under id and key.
func (s *Store) Get(id, key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[id][key]
	return v, ok
}

// Pop removes key from the session and returns what was there.
func (s *Store) Pop(id, key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[id][key]
	delete(s.data[id], key)
	return v, ok
}

// Clear drops the whole session. Clearing an unknown id is a no-op.
func (s *Store) Clear(id string) {
	s.mu.Lock()
	delete(s.data, id)
	s.mu.Unlock()
}

// Len reports how many sessions are held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// ID returns the session id from the request cookie, or "" when absent.
func ID(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// Expire tells the browser to drop the session cookie.
func Expire(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
}
