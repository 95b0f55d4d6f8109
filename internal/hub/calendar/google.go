package calendar

import (
	"context"
	"fmt"
	"time"

	gcalendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleProvider reads a public Google calendar with an API key.
type GoogleProvider struct {
	apiKey string
}

func NewGoogleProvider(apiKey string) *GoogleProvider {
	return &GoogleProvider{apiKey: apiKey}
}

const maxEventsPerSync = 250

func (g *GoogleProvider) Events(ctx context.Context, ref string) ([]Event, error) {
	svc, err := gcalendar.NewService(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar client: %w", err)
	}

	res, err := svc.Events.List(ref).
		TimeMin(time.Now().Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxEventsPerSync).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list google events: %w", err)
	}

	events := make([]Event, 0, len(res.Items))
	for _, item := range res.Items {
		ev := Event{
			Id:          item.Id,
			Title:       item.Summary,
			Location:    item.Location,
			Description: item.Description,
		}
		ev.Start, ev.AllDay = googleTime(item.Start)
		ev.End, _ = googleTime(item.End)
		events = append(events, ev)
	}
	return events, nil
}

// googleTime handles both timed (DateTime) and all-day (Date) events.
func googleTime(dt *gcalendar.EventDateTime) (time.Time, bool) {
	if dt == nil {
		return time.Time{}, false
	}
	if dt.DateTime != "" {
		t, _ := time.Parse(time.RFC3339, dt.DateTime)
		return t, false
	}
	t, _ := time.Parse("2006-01-02", dt.Date)
	return t, true
}
