package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/conf"
)

// Event is the provider-neutral shape mirrored into the site content.
type Event struct {
	Id          string    `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	AllDay      bool      `json:"allDay"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Provider fetches upcoming events from one calendar backend. ref is the
// provider-specific calendar reference: a calendar id for google and
// outlook, a public ICS url for apple.
type Provider interface {
	Events(ctx context.Context, ref string) ([]Event, error)
}

const (
	ProviderGoogle  = "google"
	ProviderOutlook = "outlook"
	ProviderApple   = "apple"
)

// NewProvider selects a backend by name.
func NewProvider(name string, c conf.CalendarConfig) (Provider, error) {
	switch name {
	case ProviderGoogle:
		return NewGoogleProvider(c.GoogleAPIKey), nil
	case ProviderOutlook:
		return NewOutlookProvider(c), nil
	case ProviderApple:
		return NewAppleProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported calendar provider: %s", name)
	}
}
