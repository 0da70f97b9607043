package todoagent

import "time"

// TimeProvider is the clock used for transcript names and timestamps. Tests inject a fixed one.
type TimeProvider interface {
	// Now returns the current time.
	Now() time.Time

	// Format returns the current time formatted with the given layout.
	Format(layout string) string
}

// DefaultTimeProvider is the standard TimeProvider using the system clock.
type DefaultTimeProvider struct{}

// NewDefaultTimeProvider creates a new DefaultTimeProvider.
func NewDefaultTimeProvider() *DefaultTimeProvider {
	return &DefaultTimeProvider{}
}

// Now returns the current system time.
func (p *DefaultTimeProvider) Now() time.Time {
	return time.Now()
}

// Format returns the current time formatted with the given layout.
func (p *DefaultTimeProvider) Format(layout string) string {
	return p.Now().Format(layout)
}

// FixedTimeProvider always returns the same instant.
type FixedTimeProvider struct {
	t time.Time
}

// NewFixedTimeProvider creates a FixedTimeProvider returning t.
func NewFixedTimeProvider(t time.Time) *FixedTimeProvider {
	return &FixedTimeProvider{t: t}
}

// Now returns the fixed time.
func (p *FixedTimeProvider) Now() time.Time {
	return p.t
}

// Format returns the fixed time formatted with the given layout.
func (p *FixedTimeProvider) Format(layout string) string {
	return p.t.Format(layout)
}
