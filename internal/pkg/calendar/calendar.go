// Package calendar fetches officer assignments from an external calendar
// API for the background sync job.
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/clubsync/orghub/internal/service"
)

type entryPayload struct {
	PageID       string     `json:"page_id"`
	OfficerName  string     `json:"officer_name"`
	OfficerEmail string     `json:"officer_email"`
	Event        string     `json:"event"`
	EventType    string     `json:"event_type"`
	Role         string     `json:"role"`
	Points       int        `json:"points"`
	Timestamp    *time.Time `json:"timestamp"`
}

type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchEntries pulls assignments for one calendar source, optionally
// limited to those updated since the given time.
func (c *HTTPClient) FetchEntries(ctx context.Context, sourceID string, since *time.Time) ([]service.CalendarEntry, error) {
	endpoint := fmt.Sprintf("%s/sources/%s/entries", c.baseURL, url.PathEscape(sourceID))
	if since != nil {
		endpoint += "?since=" + url.QueryEscape(since.Format(time.RFC3339))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("c.client.Do -> %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar API returned %v", resp.Status)
	}

	var payload []entryPayload
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("json.Decode -> %w", err)
	}

	entries := make([]service.CalendarEntry, len(payload))
	for i, p := range payload {
		entries[i] = service.CalendarEntry{
			SourcePageID: p.PageID,
			OfficerName:  p.OfficerName,
			OfficerEmail: p.OfficerEmail,
			Event:        p.Event,
			EventType:    p.EventType,
			Role:         p.Role,
			Points:       p.Points,
			Timestamp:    p.Timestamp,
		}
	}

	return entries, nil
}
