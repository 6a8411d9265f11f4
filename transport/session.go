package transport

import "sync"

// DefaultTokenHeader is the response/request header carrying the session
// token unless the client is configured otherwise.
const DefaultTokenHeader = "X-RestSvcSessionId"

// Session holds the authenticated state of one logical client session.
// The token is written only inside the re-authentication critical section
// and cleared on logoff; readers always observe a consistent value.
type Session struct {
	headerName string

	mu    sync.RWMutex
	token string
}

// NewSession creates a session using the given token header name.
func NewSession(headerName string) *Session {
	if headerName == "" {
		headerName = DefaultTokenHeader
	}
	return &Session{headerName: headerName}
}

// HeaderName returns the header name carrying the session token.
func (s *Session) HeaderName() string {
	return s.headerName
}

// Token returns the current session token, or "" before authentication.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken stores a freshly issued session token.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Clear discards the session token.
func (s *Session) Clear() {
	s.SetToken("")
}

// Authenticated reports whether a token is currently held.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}
