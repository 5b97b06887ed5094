package returns

import (
	"fmt"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// minWindowDays and maxWindowDays bound the configurable return window.
const (
	minWindowDays = 1
	maxWindowDays = 365
)

// ErrSettingsIsNotConstructed is returned when attempting to use improperly
// initialized Settings. Settings must be created via NewSettings.
var ErrSettingsIsNotConstructed = errs.NewValueIsRequiredError(
	"settings must be created via NewSettings constructor")

// Settings is the single global return policy: whether returns are accepted
// at all, and how many days after delivery a claim may be opened. Read by
// every eligibility check, mutated only by administrative action.
type Settings struct { //nolint:recvcheck //using for validation
	enabled    bool
	windowDays int

	guard guard.ConstructorGuard
}

// NewSettings creates a validated return policy.
//
// Parameters:
//   - enabled: whether return claims are accepted at all
//   - windowDays: days after delivery a claim may be opened (1 to 365)
func NewSettings(enabled bool, windowDays int) (Settings, error) {
	s := Settings{
		guard: guard.NewConstructorGuard(),
	}

	if err := s.setWindowDays(windowDays); err != nil {
		return Settings{}, err
	}
	s.enabled = enabled

	return s, nil
}

// DefaultSettings returns the out-of-the-box policy: returns enabled with a
// seven day window.
func DefaultSettings() Settings {
	s, _ := NewSettings(true, 7)
	return s
}

// Enabled reports whether return claims are accepted at all.
func (s Settings) Enabled() bool {
	return s.enabled
}

// WindowDays returns the claim window length in days.
func (s Settings) WindowDays() int {
	return s.windowDays
}

// WindowOpen reports whether a claim opened at now against goods delivered at
// deliveredAt falls inside the window. The window closes exactly windowDays
// after the delivery timestamp.
func (s Settings) WindowOpen(deliveredAt, now time.Time) bool {
	deadline := deliveredAt.Add(time.Duration(s.windowDays) * 24 * time.Hour)
	return !now.After(deadline)
}

// String returns a human-readable summary of the policy.
func (s Settings) String() string {
	return fmt.Sprintf("enabled=%t windowDays=%d", s.enabled, s.windowDays)
}

// Validate checks if the Settings were properly constructed using a constructor.
func (s Settings) Validate() error {
	return s.guard.Validate(ErrSettingsIsNotConstructed)
}

func (s *Settings) setWindowDays(windowDays int) error {
	if windowDays < minWindowDays || windowDays > maxWindowDays {
		return errs.NewValueIsOutOfRangeError("windowDays", windowDays, minWindowDays, maxWindowDays)
	}
	s.windowDays = windowDays
	return nil
}
