package customer

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/ashrithps/BrekkieBowlz/internal/models"
)

// Backend is the persistence boundary for the delivery-contact form. Core
// logic tolerates a missing backend: a nil Service backend degrades to
// defaults on load and a no-op on save.
type Backend interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// Service reads and writes one CustomerInfo blob through a Backend.
type Service struct {
	backend Backend
	now     func() time.Time
}

func NewService(backend Backend, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{backend: backend, now: now}
}

// Defaults is a blank form with the delivery date preset to tomorrow.
func (s *Service) Defaults() models.CustomerInfo {
	return models.CustomerInfo{
		DeliveryDate: s.now().AddDate(0, 0, 1).Format("2006-01-02"),
	}
}

// Load returns the persisted customer info, falling back to defaults when
// nothing is persisted or the stored blob is unreadable. It never fails.
func (s *Service) Load() models.CustomerInfo {
	defaults := s.Defaults()
	if s.backend == nil {
		return defaults
	}

	data, err := s.backend.Load()
	if err != nil || len(data) == 0 {
		if err != nil {
			slog.Warn("Failed to load customer info, using defaults", "error", err)
		}
		return defaults
	}

	var info models.CustomerInfo
	if err := json.Unmarshal(data, &info); err != nil {
		slog.Warn("Stored customer info is unreadable, using defaults", "error", err)
		return defaults
	}
	if info.DeliveryDate == "" {
		info.DeliveryDate = defaults.DeliveryDate
	}
	return info
}

// Save persists the form best-effort; failures are logged, never returned.
func (s *Service) Save(info models.CustomerInfo) {
	if s.backend == nil {
		return
	}
	data, err := json.Marshal(info)
	if err != nil {
		slog.Warn("Failed to encode customer info", "error", err)
		return
	}
	if err := s.backend.Save(data); err != nil {
		slog.Warn("Failed to save customer info", "error", err)
	}
}

var mobileRegex = regexp.MustCompile(`^[6-9]\d{9}$`)

// ValidMobile reports whether the string is a ten-digit Indian mobile
// number.
func ValidMobile(mobile string) bool {
	return mobileRegex.MatchString(mobile)
}

// Validate checks the delivery form and returns field-keyed error
// messages; an empty map means the form is valid. today is the current
// local calendar day.
func Validate(info models.CustomerInfo, today time.Time) map[string]string {
	errs := make(map[string]string)

	if info.Mobile == "" {
		errs["mobile"] = "Mobile number is required"
	} else if !ValidMobile(info.Mobile) {
		errs["mobile"] = "Please enter a valid 10-digit mobile number"
	}

	if strings.TrimSpace(info.ApartmentNumber) == "" {
		errs["apartmentNumber"] = "Apartment number is required"
	}
	if strings.TrimSpace(info.TowerNumber) == "" {
		errs["towerNumber"] = "Tower number is required"
	}

	if info.DeliveryDate == "" {
		errs["deliveryDate"] = "Delivery date is required"
	} else {
		selected, err := time.ParseInLocation("2006-01-02", info.DeliveryDate, today.Location())
		if err != nil {
			errs["deliveryDate"] = "Delivery date is invalid"
		} else {
			midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
			if selected.Before(midnight) {
				errs["deliveryDate"] = "Delivery date cannot be in the past"
			}
		}
	}

	return errs
}
