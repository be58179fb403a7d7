package entity

import "time"

type SessionSource string

const (
	SessionFromLogin    SessionSource = "login"
	SessionFromDevSeed  SessionSource = "dev_seed"
	SessionFromRestored SessionSource = "restored"
)

// Session is the explicit auth context handed to workflows that call the marketplace.
type Session struct {
	Token     string        `yaml:"token"`
	Subject   string        `yaml:"subject,omitempty"`
	Source    SessionSource `yaml:"source,omitempty"`
	IssuedAt  time.Time     `yaml:"issued_at,omitempty"`
	ExpiresAt time.Time     `yaml:"expires_at,omitempty"`
}

// Valid reports whether the session can still authorize requests at now.
// A zero ExpiresAt means the server did not disclose an expiry.
func (s *Session) Valid(now time.Time) bool {
	if s == nil || s.Token == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}
