package resolve

import (
	"sync"

	"github.com/akarpov/realocate/internal/model"
)

// Session holds the single authoritative LocationContext for one
// conversation. A turn that resolves replaces it; a turn that resolves
// nothing leaves the prior context untouched.
type Session struct {
	mu      sync.Mutex
	current *model.LocationContext
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{}
}

// Apply installs loc as the session's context when non-nil and reports
// whether a replacement happened.
func (s *Session) Apply(loc *model.LocationContext) bool {
	if loc == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = loc
	return true
}

// Current returns the session's context, or nil before any turn resolved
func (s *Session) Current() *model.LocationContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Clear drops the session's context
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
