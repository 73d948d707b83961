package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/ashrithps/BrekkieBowlz/internal/models"
)

// DefaultCacheTTL is how long a successful fetch stays fresh.
const DefaultCacheTTL = 5 * time.Minute

// ErrInvalidSchema is returned when the webhook response does not match
// the expected menu data shape.
var ErrInvalidSchema = errors.New("menu: invalid menu data schema")

// Service fetches the store configuration and catalog from the menu
// webhook, caching the result in a single (value, fetchedAt) slot.
type Service struct {
	webhookURL string
	client     *http.Client
	ttl        time.Duration
	now        func() time.Time

	mu        sync.Mutex
	cached    *models.MenuData
	fetchedAt time.Time
}

type Option func(*Service)

// WithClock injects the time source, used by tests to control the cache
// window and date arithmetic.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) { s.client = client }
}

func NewService(webhookURL string, opts ...Option) *Service {
	s := &Service{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		ttl:        DefaultCacheTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch returns the current menu data. It never returns an error: on
// network failure, a non-success status, or a schema mismatch it logs the
// problem and returns the built-in fallback catalog instead. Successful
// fetches are cached for the configured TTL.
func (s *Service) Fetch(ctx context.Context) models.MenuData {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.now().Sub(s.fetchedAt) < s.ttl {
		return *s.cached
	}

	data, err := s.fetchRemote(ctx)
	if err != nil {
		slog.Error("Failed to fetch menu data from webhook, using fallback", "url", s.webhookURL, "error", err)
		return FallbackMenuData()
	}

	s.cached = &data
	s.fetchedAt = s.now()
	return data
}

func (s *Service) fetchRemote(ctx context.Context) (models.MenuData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.webhookURL, nil)
	if err != nil {
		return models.MenuData{}, fmt.Errorf("building menu request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return models.MenuData{}, fmt.Errorf("fetching menu: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.MenuData{}, fmt.Errorf("fetching menu: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.MenuData{}, fmt.Errorf("reading menu response: %w", err)
	}

	if err := ValidateMenuData(body); err != nil {
		return models.MenuData{}, err
	}

	var data models.MenuData
	if err := json.Unmarshal(body, &data); err != nil {
		return models.MenuData{}, fmt.Errorf("decoding menu response: %w", err)
	}
	return data, nil
}

// ValidateMenuData is the runtime schema guard over the untrusted webhook
// payload: the open flag must be a boolean, name and closedMessage must be
// strings, skipDates and menu must be arrays, and every menu entry must
// carry a string id and name and a numeric price.
func ValidateMenuData(raw []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	cfg, ok := doc["storeConfig"].(map[string]any)
	if !ok {
		return fmt.Errorf("%w: missing storeConfig", ErrInvalidSchema)
	}
	if _, ok := cfg["isOpen"].(bool); !ok {
		return fmt.Errorf("%w: storeConfig.isOpen must be a boolean", ErrInvalidSchema)
	}
	if _, ok := cfg["name"].(string); !ok {
		return fmt.Errorf("%w: storeConfig.name must be a string", ErrInvalidSchema)
	}
	if _, ok := cfg["closedMessage"].(string); !ok {
		return fmt.Errorf("%w: storeConfig.closedMessage must be a string", ErrInvalidSchema)
	}
	if _, ok := cfg["skipDates"].([]any); !ok {
		return fmt.Errorf("%w: storeConfig.skipDates must be an array", ErrInvalidSchema)
	}

	items, ok := doc["menu"].([]any)
	if !ok {
		return fmt.Errorf("%w: menu must be an array", ErrInvalidSchema)
	}
	for i, entry := range items {
		item, ok := entry.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: menu[%d] must be an object", ErrInvalidSchema, i)
		}
		if _, ok := item["id"].(string); !ok {
			return fmt.Errorf("%w: menu[%d].id must be a string", ErrInvalidSchema, i)
		}
		if _, ok := item["name"].(string); !ok {
			return fmt.Errorf("%w: menu[%d].name must be a string", ErrInvalidSchema, i)
		}
		if _, ok := item["price"].(float64); !ok {
			return fmt.Errorf("%w: menu[%d].price must be a number", ErrInvalidSchema, i)
		}
	}
	return nil
}

// IsStoreOpen reports whether orders are accepted right now: the open flag
// must be set and today's local calendar date must not be a skip date.
// Comparison is by calendar-day string equality, so skip dates authored in
// another timezone shift with the server's local day.
func (s *Service) IsStoreOpen(cfg models.StoreConfig) bool {
	if !cfg.IsOpen {
		return false
	}
	today := s.now().Format(isoDate)
	for _, skip := range cfg.SkipDates {
		if skip == today {
			return false
		}
	}
	return true
}
