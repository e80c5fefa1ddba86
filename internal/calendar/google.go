package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Provider is the calendar API surface the Syncer needs. Tests substitute a
// fake; production uses GoogleProvider.
type Provider interface {
	Insert(ctx context.Context, ev *gcal.Event) (*gcal.Event, error)
	Update(ctx context.Context, eventID string, ev *gcal.Event) (*gcal.Event, error)
}

// GoogleProvider drives one Google Calendar through the official API client
// using service account credentials.
type GoogleProvider struct {
	svc        *gcal.Service
	calendarID string
}

// NewGoogleProvider builds a provider for calendarID from service account
// credentials JSON.
func NewGoogleProvider(ctx context.Context, calendarID, credentialsJSON string) (*GoogleProvider, error) {
	if calendarID == "" {
		return nil, errors.New("calendar id is required")
	}
	if credentialsJSON == "" {
		return nil, errors.New("service account credentials are required")
	}

	creds, err := google.CredentialsFromJSON(ctx, []byte(credentialsJSON), gcal.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("parsing service account credentials: %w", err)
	}

	svc, err := gcal.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}

	return &GoogleProvider{svc: svc, calendarID: calendarID}, nil
}

// Insert creates a new calendar entry and returns it with the assigned id.
func (p *GoogleProvider) Insert(ctx context.Context, ev *gcal.Event) (*gcal.Event, error) {
	res, err := p.svc.Events.Insert(p.calendarID, ev).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("inserting calendar event: %w", err)
	}
	return res, nil
}

// Update overwrites the calendar entry with the given external id.
func (p *GoogleProvider) Update(ctx context.Context, eventID string, ev *gcal.Event) (*gcal.Event, error) {
	res, err := p.svc.Events.Update(p.calendarID, eventID, ev).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("updating calendar event %s: %w", eventID, err)
	}
	return res, nil
}

// IsNotFound reports whether err is the provider's "entry does not exist"
// condition, which the Syncer recovers from by recreating the entry. Any
// other provider error is surfaced as a per-item failure.
func IsNotFound(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone
	}
	return false
}
