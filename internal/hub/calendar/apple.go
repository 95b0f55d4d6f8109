package calendar

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// AppleProvider reads a published iCloud calendar from its public ICS url.
type AppleProvider struct {
	rest *resty.Client
}

func NewAppleProvider() *AppleProvider {
	return &AppleProvider{
		rest: resty.New().SetTimeout(30 * time.Second),
	}
}

func (a *AppleProvider) Events(ctx context.Context, ref string) ([]Event, error) {
	resp, err := a.rest.R().SetContext(ctx).Get(ref)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("apple: fetch ics: %s", resp.Status())
	}
	return parseICS(string(resp.Body())), nil
}

// parseICS walks VEVENT blocks, keeping only the fields the hub mirrors.
// Folded lines (continuations starting with a space or tab) are unfolded
// before scanning.
func parseICS(data string) []Event {
	var (
		events []Event
		cur    *Event
	)
	sc := bufio.NewScanner(strings.NewReader(unfoldICS(data)))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		name, value := splitICSLine(line)
		switch name {
		case "BEGIN":
			if value == "VEVENT" {
				cur = &Event{}
			}
		case "END":
			if value == "VEVENT" && cur != nil {
				events = append(events, *cur)
				cur = nil
			}
		}
		if cur == nil {
			continue
		}
		switch name {
		case "UID":
			cur.Id = value
		case "SUMMARY":
			cur.Title = unescapeICS(value)
		case "LOCATION":
			cur.Location = unescapeICS(value)
		case "DESCRIPTION":
			cur.Description = unescapeICS(value)
		case "DTSTART":
			cur.Start, cur.AllDay = parseICSTime(value)
		case "DTEND":
			cur.End, _ = parseICSTime(value)
		}
	}
	return events
}

func unfoldICS(data string) string {
	data = strings.ReplaceAll(data, "\r\n ", "")
	return strings.ReplaceAll(data, "\r\n\t", "")
}

// splitICSLine splits "NAME;PARAM=X:value" into the bare property name and
// its value.
func splitICSLine(line string) (string, string) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return line, ""
	}
	name := line[:idx]
	if p := strings.Index(name, ";"); p >= 0 {
		name = name[:p]
	}
	return name, line[idx+1:]
}

func parseICSTime(value string) (time.Time, bool) {
	if t, err := time.Parse("20060102T150405Z", value); err == nil {
		return t, false
	}
	if t, err := time.Parse("20060102T150405", value); err == nil {
		return t, false
	}
	if t, err := time.Parse("20060102", value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func unescapeICS(value string) string {
	r := strings.NewReplacer(`\n`, "\n", `\,`, ",", `\;`, ";", `\\`, `\`)
	return r.Replace(value)
}
