package backend

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/sprintdeck/sprintdeck/internal/domain"
)

// AuthService exposes sign-up, sign-in and session inspection
type AuthService struct {
	c *Client
}

// NewAuthService creates an AuthService over the shared transport
func NewAuthService(c *Client) *AuthService {
	return &AuthService{c: c}
}

type credentials struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

// SignUp registers a new account and returns the signed-in session
func (s *AuthService) SignUp(ctx context.Context, email, password, displayName string) (domain.Session, error) {
	s.c.logger.Debug("signing up", "email", email)

	var session domain.Session
	body := credentials{Email: email, Password: password, DisplayName: displayName}
	if err := s.c.do(ctx, http.MethodPost, "/auth/signup", body, &session, "signup"); err != nil {
		return domain.Session{}, err
	}

	s.c.SetToken(session.Token)
	return session, nil
}

// SignIn authenticates and installs the session token on the transport
func (s *AuthService) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	s.c.logger.Debug("signing in", "email", email)

	var session domain.Session
	body := credentials{Email: email, Password: password}
	if err := s.c.do(ctx, http.MethodPost, "/auth/signin", body, &session, "signin"); err != nil {
		return domain.Session{}, err
	}

	s.c.SetToken(session.Token)
	return session, nil
}

// CurrentUser returns the profile behind the installed token.
// With no token installed it fails fast with ErrUnauthorized; the
// board treats that as "disable all mutation affordances".
func (s *AuthService) CurrentUser(ctx context.Context) (domain.Profile, error) {
	if s.c.Token() == "" {
		return domain.Profile{}, &domain.APIError{Op: "me", Err: domain.ErrUnauthorized}
	}

	var profile domain.Profile
	if err := s.c.do(ctx, http.MethodGet, "/auth/me", nil, &profile, "me"); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

// SignOut clears the installed token
func (s *AuthService) SignOut() {
	s.c.SetToken("")
}

// SaveToken persists the session token for later runs
func SaveToken(path, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token+"\n"), 0600)
}

// LoadToken reads a previously persisted session token. A missing
// file means no session.
func LoadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
