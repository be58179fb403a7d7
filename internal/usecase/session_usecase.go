package usecase

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/pkg/errors"
	"wardrobe101/pkg/logger"
)

// FallbackStrategy supplies a session when the user has none.
type FallbackStrategy interface {
	Acquire(ctx context.Context) (*entity.Session, error)
}

// NoFallback is the production strategy: without a login there is no session.
type NoFallback struct{}

func (NoFallback) Acquire(ctx context.Context) (*entity.Session, error) {
	return nil, errors.Unauthorized("Please log in to continue", nil)
}

// DevSeedStrategy exchanges a fixed development identity for a token. It must only be
// wired when the environment is development.
type DevSeedStrategy struct {
	api      MarketplaceAPI
	username string
	password string
}

func NewDevSeedStrategy(api MarketplaceAPI, username, password string) *DevSeedStrategy {
	return &DevSeedStrategy{api: api, username: username, password: password}
}

func (s *DevSeedStrategy) Acquire(ctx context.Context) (*entity.Session, error) {
	logger.Debug("No session cached, using dev seed identity %s", s.username)
	token, err := s.api.Login(ctx, s.username, s.password)
	if err != nil {
		return nil, err
	}
	return sessionFromToken(token.AccessToken, s.username, entity.SessionFromDevSeed, time.Now()), nil
}

// SessionManager owns the explicit auth context: created at login, invalidated at logout
// or expiry, persisted through the TokenStore.
type SessionManager struct {
	api      MarketplaceAPI
	store    TokenStore
	fallback FallbackStrategy
	now      func() time.Time

	mu      sync.Mutex
	current *entity.Session
}

func NewSessionManager(api MarketplaceAPI, store TokenStore, fallback FallbackStrategy) *SessionManager {
	if fallback == nil {
		fallback = NoFallback{}
	}
	return &SessionManager{
		api:      api,
		store:    store,
		fallback: fallback,
		now:      time.Now,
	}
}

// Restore loads a persisted session. Expired sessions are cleared from the store.
func (m *SessionManager) Restore() (*entity.Session, error) {
	session, err := m.store.LoadSession()
	if err != nil {
		return nil, errors.Internal("Failed to read saved session", err)
	}
	if session == nil {
		return nil, nil
	}
	if !session.Valid(m.now()) {
		logger.Info("Saved session for %s expired", session.Subject)
		return nil, m.store.ClearSession()
	}
	session.Source = entity.SessionFromRestored

	m.mu.Lock()
	m.current = session
	m.mu.Unlock()
	return session, nil
}

func (m *SessionManager) Login(ctx context.Context, username, password string) (*entity.Session, error) {
	token, err := m.api.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	session := sessionFromToken(token.AccessToken, username, entity.SessionFromLogin, m.now())
	if err := m.store.SaveSession(session); err != nil {
		return nil, errors.Internal("Failed to save session", err)
	}

	m.mu.Lock()
	m.current = session
	m.mu.Unlock()
	return session, nil
}

func (m *SessionManager) Logout() error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	return m.store.ClearSession()
}

// Current returns the active session if it has not expired.
func (m *SessionManager) Current() (*entity.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.current.Valid(m.now()) {
		return nil, false
	}
	return m.current, true
}

// Resolve returns a session able to authorize one request: the active one, else whatever
// the fallback strategy yields. A fallback session is not adopted as the user's session.
func (m *SessionManager) Resolve(ctx context.Context) (*entity.Session, error) {
	if session, ok := m.Current(); ok {
		return session, nil
	}
	return m.fallback.Acquire(ctx)
}

// Verify fetches the profile behind the active session and logs out when the server
// no longer accepts the token.
func (m *SessionManager) Verify(ctx context.Context) (*entity.User, error) {
	session, ok := m.Current()
	if !ok {
		return nil, errors.Unauthorized("Please log in to continue", nil)
	}
	user, err := m.api.GetCurrentUser(ctx, session.Token)
	if err != nil {
		if errors.StatusOf(err) == http.StatusUnauthorized {
			logger.Info("Token for %s rejected by server, logging out", session.Subject)
			if logoutErr := m.Logout(); logoutErr != nil {
				logger.Error("Failed to clear session: %v", logoutErr)
			}
		}
		return nil, err
	}
	return user, nil
}

func (m *SessionManager) Theme() entity.Theme {
	theme, err := m.store.LoadTheme()
	if err != nil || !theme.Valid() {
		return entity.ThemeSystem
	}
	return theme
}

func (m *SessionManager) SetTheme(theme entity.Theme) error {
	if !theme.Valid() {
		return errors.Validation(errors.FieldProblem{Field: "theme", Reason: "must be one of: light dark system"})
	}
	return m.store.SaveTheme(theme)
}

// sessionFromToken reads subject and expiry from the token without verifying it;
// only the server can verify, the client only needs to know when to stop using it.
func sessionFromToken(token, subject string, source entity.SessionSource, now time.Time) *entity.Session {
	session := &entity.Session{Token: token, Subject: subject, Source: source, IssuedAt: now}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return session
	}
	if claims.Subject != "" {
		session.Subject = claims.Subject
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	return session
}
