package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Entry is one record of the car-logos dataset.
type Entry struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image struct {
		Optimized string `json:"optimized"`
	} `json:"image"`
}

// Fallback is used when the dataset cannot be downloaded.
var Fallback = []Entry{
	{Name: "Toyota", Slug: "toyota"},
	{Name: "Honda", Slug: "honda"},
	{Name: "Ford", Slug: "ford"},
	{Name: "Chevrolet", Slug: "chevrolet"},
	{Name: "BMW", Slug: "bmw"},
	{Name: "Mercedes-Benz", Slug: "mercedes-benz"},
	{Name: "Audi", Slug: "audi"},
	{Name: "Ferrari", Slug: "ferrari"},
	{Name: "Lamborghini", Slug: "lamborghini"},
	{Name: "Porsche", Slug: "porsche"},
}

// Source downloads the dataset.
type Source struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

func NewSource(url string, timeout time.Duration, logger *slog.Logger) *Source {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Source{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Entries returns the remote dataset, or Fallback when it is unreachable or malformed.
func (s *Source) Entries(ctx context.Context) []Entry {
	entries, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn("using fallback brand list", "url", s.url, "error", err)
		return append([]Entry(nil), Fallback...)
	}
	return entries
}

func (s *Source) fetch(ctx context.Context) ([]Entry, error) {
	if s.url == "" {
		return nil, fmt.Errorf("no dataset url configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch dataset: unexpected status %s", resp.Status)
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}
	return entries, nil
}
