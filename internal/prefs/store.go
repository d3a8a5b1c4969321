// Package prefs persists per-visitor display preferences. A visitor is
// identified by a random id kept in a cookie; the theme is the only
// preference.
package prefs

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/folioworks/folio/internal/config"
	"github.com/folioworks/folio/internal/db"
)

// ValidTheme reports whether theme is one the site can display.
func ValidTheme(theme string) bool {
	return theme == config.ThemeDark || theme == config.ThemeLight
}

// Opposite returns the other theme.
func Opposite(theme string) string {
	if theme == config.ThemeDark {
		return config.ThemeLight
	}
	return config.ThemeDark
}

// Store manages persistence of visitor preferences.
type Store struct {
	db           *db.DB
	defaultTheme string
}

// NewStore creates a preferences store. defaultTheme is returned for
// visitors without a stored choice.
func NewStore(database *db.DB, defaultTheme string) *Store {
	if !ValidTheme(defaultTheme) {
		defaultTheme = config.ThemeDark
	}
	return &Store{db: database, defaultTheme: defaultTheme}
}

// DefaultTheme returns the theme for visitors without a preference.
func (s *Store) DefaultTheme() string { return s.defaultTheme }

// Theme returns the visitor's theme, or the default when none is stored.
func (s *Store) Theme(ctx context.Context, visitorID string) (string, error) {
	var theme string
	err := s.db.QueryRowContext(ctx,
		`SELECT theme FROM visitor_preferences WHERE visitor_id = ?`, visitorID,
	).Scan(&theme)
	if err == sql.ErrNoRows {
		return s.defaultTheme, nil
	}
	if err != nil {
		return "", fmt.Errorf("getting theme: %w", err)
	}
	return theme, nil
}

// SetTheme stores the visitor's theme.
func (s *Store) SetTheme(ctx context.Context, visitorID, theme string) error {
	if !ValidTheme(theme) {
		return fmt.Errorf("invalid theme %q: must be dark or light", theme)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visitor_preferences (visitor_id, theme, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(visitor_id) DO UPDATE SET theme = excluded.theme, updated_at = excluded.updated_at`,
		visitorID, theme, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("setting theme: %w", err)
	}
	return nil
}

// ToggleTheme flips the visitor's theme and returns the new value.
func (s *Store) ToggleTheme(ctx context.Context, visitorID string) (string, error) {
	current, err := s.Theme(ctx, visitorID)
	if err != nil {
		return "", err
	}
	next := Opposite(current)
	if err := s.SetTheme(ctx, visitorID, next); err != nil {
		return "", err
	}
	return next, nil
}
