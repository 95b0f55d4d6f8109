package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/conf"
	"golang.org/x/oauth2/clientcredentials"
)

const graphBaseURL = "https://graph.microsoft.com/v1.0"

// OutlookProvider reads an Outlook calendar through Microsoft Graph.
type OutlookProvider struct {
	rest *resty.Client
}

func NewOutlookProvider(c conf.CalendarConfig) *OutlookProvider {
	if c.OutlookClientId != "" {
		cc := clientcredentials.Config{
			ClientID:     c.OutlookClientId,
			ClientSecret: c.OutlookClientSecret,
			TokenURL: fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token",
				c.OutlookTenantId),
			Scopes: []string{"https://graph.microsoft.com/.default"},
		}
		return &OutlookProvider{
			rest: resty.NewWithClient(cc.Client(context.Background())).
				SetBaseURL(graphBaseURL).
				SetTimeout(30 * time.Second),
		}
	}
	return &OutlookProvider{
		rest: resty.New().
			SetBaseURL(graphBaseURL).
			SetAuthToken(c.OutlookToken).
			SetTimeout(30 * time.Second),
	}
}

type graphDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type graphEvent struct {
	Id       string        `json:"id"`
	Subject  string        `json:"subject"`
	IsAllDay bool          `json:"isAllDay"`
	Start    graphDateTime `json:"start"`
	End      graphDateTime `json:"end"`
	Location struct {
		DisplayName string `json:"displayName"`
	} `json:"location"`
	BodyPreview string `json:"bodyPreview"`
}

type graphEventList struct {
	Value []graphEvent `json:"value"`
}

func (o *OutlookProvider) Events(ctx context.Context, ref string) ([]Event, error) {
	var out graphEventList
	resp, err := o.rest.R().SetContext(ctx).SetResult(&out).
		SetQueryParam("$top", fmt.Sprintf("%d", maxEventsPerSync)).
		SetQueryParam("$orderby", "start/dateTime").
		Get(fmt.Sprintf("/users/%s/calendar/events", ref))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("outlook: list events: %s", resp.Status())
	}

	events := make([]Event, 0, len(out.Value))
	for _, item := range out.Value {
		events = append(events, Event{
			Id:          item.Id,
			Title:       item.Subject,
			Start:       parseGraphTime(item.Start),
			End:         parseGraphTime(item.End),
			AllDay:      item.IsAllDay,
			Location:    item.Location.DisplayName,
			Description: item.BodyPreview,
		})
	}
	return events, nil
}

// parseGraphTime reads Graph's fractional-second local timestamps. Graph
// returns UTC unless the request asks otherwise.
func parseGraphTime(dt graphDateTime) time.Time {
	for _, layout := range []string{"2006-01-02T15:04:05.0000000", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, dt.DateTime); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
