package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ashrithps/BrekkieBowlz/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	f := newFixture(t)
	h := &MenuHandler{Menu: f.menu, Config: f.cfg, Now: f.now}

	rr := f.do(t, h.Catalog, http.MethodGet, "/api/menu", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		StoreConfig   models.StoreConfig    `json:"storeConfig"`
		Menu          []models.MenuItem     `json:"menu"`
		StoreOpen     bool                  `json:"storeOpen"`
		DeliveryDates []models.DeliveryDate `json:"deliveryDates"`
		TimeSlot      string                `json:"timeSlot"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.True(t, resp.StoreOpen)
	require.Len(t, resp.Menu, 1)
	assert.Equal(t, "smoothie-bowl", resp.Menu[0].ID)
	require.Len(t, resp.DeliveryDates, 4)
	assert.Equal(t, "Tomorrow", resp.DeliveryDates[0].DayName)
	assert.Equal(t, "2024-01-02", resp.DeliveryDates[0].Date)
	assert.Equal(t, "9:00 AM - 10:00 AM", resp.TimeSlot)
}

func TestCatalogCheckoutTypeOverride(t *testing.T) {
	f := newFixture(t)
	f.cfg.CheckoutType = "whatsapp"
	h := &MenuHandler{Menu: f.menu, Config: f.cfg, Now: f.now}

	rr := f.do(t, h.Catalog, http.MethodGet, "/api/menu", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		StoreConfig models.StoreConfig `json:"storeConfig"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, models.CheckoutWhatsApp, resp.StoreConfig.CheckoutType)
}

func TestCatalogFallsBackWhenWebhookDown(t *testing.T) {
	f := newFixture(t)
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(down.Close)
	f.menu = newMenuService(t, down.URL, f.now)

	h := &MenuHandler{Menu: f.menu, Config: f.cfg, Now: f.now}
	rr := f.do(t, h.Catalog, http.MethodGet, "/api/menu", nil)
	require.Equal(t, http.StatusOK, rr.Code, "fallback keeps the storefront rendering")

	var resp struct {
		Menu []models.MenuItem `json:"menu"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Menu)
}
