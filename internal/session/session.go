package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"course-market/internal/domain"
)

// ErrNoToken means no credential is available for the authenticated calls.
var ErrNoToken = errors.New("session: no token available")

// TokenSource hands out the bearer credential for authenticated calls.
// The page reads it from a cookie; tests inject a static one.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a fixed credential, mainly for tests and CLI flags.
type StaticToken string

func (s StaticToken) Token() (string, error) {
	if s == "" {
		return "", ErrNoToken
	}
	return string(s), nil
}

// CookieToken reads the bearer credential from a cookie jar, the same way
// the browser surface reads Cookies.get('token') at call time.
type CookieToken struct {
	Jar    http.CookieJar
	Origin *url.URL
	Name   string
}

func NewCookieToken(jar http.CookieJar, origin *url.URL, name string) *CookieToken {
	if name == "" {
		name = "token"
	}
	return &CookieToken{Jar: jar, Origin: origin, Name: name}
}

func (c *CookieToken) Token() (string, error) {
	if c.Jar == nil || c.Origin == nil {
		return "", ErrNoToken
	}
	for _, ck := range c.Jar.Cookies(c.Origin) {
		if ck.Name == c.Name && ck.Value != "" {
			return ck.Value, nil
		}
	}
	return "", ErrNoToken
}

const snapshotKey = "courseData"

// Store is the ephemeral session storage: key/value strings scoped to one
// browsing session. The course platform tab reads the course snapshot from
// here instead of refetching.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// SaveCourseSnapshot stores the cross-tab payload under the fixed key.
func (s *Store) SaveCourseSnapshot(snap domain.CourseSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("session: marshal course snapshot: %w", err)
	}
	s.Set(snapshotKey, string(b))
	return nil
}

// CourseSnapshot reads the stored payload back; ok is false when no
// snapshot was saved in this session.
func (s *Store) CourseSnapshot() (domain.CourseSnapshot, bool, error) {
	raw, ok := s.Get(snapshotKey)
	if !ok {
		return domain.CourseSnapshot{}, false, nil
	}
	var snap domain.CourseSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return domain.CourseSnapshot{}, false, fmt.Errorf("session: parse course snapshot: %w", err)
	}
	return snap, true, nil
}
