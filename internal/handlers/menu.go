package handlers

import (
	"net/http"
	"time"

	"github.com/ashrithps/BrekkieBowlz/internal/config"
	"github.com/ashrithps/BrekkieBowlz/internal/menu"
	"github.com/ashrithps/BrekkieBowlz/internal/models"
	"github.com/gorilla/csrf"
)

type MenuHandler struct {
	Menu   *menu.Service
	Config *config.Config
	Now    func() time.Time
}

// Catalog serves the storefront bootstrap payload: store config, catalog,
// whether ordering is possible today, and the selectable delivery dates.
// The CSRF token rides along in a header for the JSON client to echo back
// on mutating calls.
func (h *MenuHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	data := h.Menu.Fetch(r.Context())

	// An operator override beats whatever the webhook says.
	if h.Config != nil && h.Config.CheckoutType != "" {
		data.StoreConfig.CheckoutType = models.CheckoutType(h.Config.CheckoutType)
	}

	w.Header().Set("X-CSRF-Token", csrf.Token(r))
	writeJSON(w, http.StatusOK, map[string]any{
		"storeConfig":   data.StoreConfig,
		"menu":          data.Menu,
		"storeOpen":     h.Menu.IsStoreOpen(data.StoreConfig),
		"deliveryDates": menu.AvailableDeliveryDates(h.now(), data.StoreConfig.SkipDates),
		"timeSlot":      menu.DeliveryTimeSlot,
	})
}

func (h *MenuHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
