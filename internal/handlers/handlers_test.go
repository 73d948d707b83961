package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ashrithps/BrekkieBowlz/internal/checkout"
	"github.com/ashrithps/BrekkieBowlz/internal/config"
	"github.com/ashrithps/BrekkieBowlz/internal/menu"
	"github.com/ashrithps/BrekkieBowlz/internal/models"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const menuPayload = `{
	"storeConfig": {
		"isOpen": true,
		"name": "Brekkie Bowlz",
		"closedMessage": "Back soon",
		"skipDates": [],
		"operatingHours": {"open": "08:00", "close": "20:00"}
	},
	"menu": [
		{
			"id": "smoothie-bowl",
			"name": "🥤 Smoothie Bowl",
			"price": 299,
			"qtyAvailable": 2,
			"customizations": [
				{"id": "extra-sugar", "name": "Extra Sugar", "priceChange": 20, "type": "add"}
			]
		}
	]
}`

type fixture struct {
	sessions *sessions.CookieStore
	menu     *menu.Service
	cfg      *config.Config
	now      func() time.Time
	cookies  []*http.Cookie
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(menuPayload))
	}))
	t.Cleanup(ts.Close)

	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	return &fixture{
		sessions: sessions.NewCookieStore([]byte("test-session-key-0123456789abcdef")),
		menu:     menu.NewService(ts.URL, menu.WithClock(func() time.Time { return now })),
		cfg: &config.Config{
			UPIPayeeID:    "bowlz@axl",
			UPIPayeeName:  "Brekkie Bowlz",
			WhatsAppPhone: "919742462600",
		},
		now: func() time.Time { return now },
	}
}

func newMenuService(t *testing.T, url string, now func() time.Time) *menu.Service {
	t.Helper()
	return menu.NewService(url, menu.WithClock(now))
}

// do runs one request against a handler func, carrying session cookies
// across calls the way a browser would.
func (f *fixture) do(t *testing.T, handler http.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range f.cookies {
		req.AddCookie(c)
	}

	rr := httptest.NewRecorder()
	handler(rr, req)

	if cookies := rr.Result().Cookies(); len(cookies) > 0 {
		f.cookies = cookies
	}
	return rr
}

func decodeCartView(t *testing.T, rr *httptest.ResponseRecorder) cartView {
	t.Helper()
	var view cartView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	return view
}

func validInfo() models.CustomerInfo {
	return models.CustomerInfo{
		Mobile:          "9876543210",
		ApartmentNumber: "1203",
		TowerNumber:     "B",
		DeliveryDate:    "2024-01-02",
	}
}

func TestCartAddAndStockCeiling(t *testing.T) {
	f := newFixture(t)
	h := &CartHandler{Menu: f.menu, SessionStore: f.sessions}

	rr := f.do(t, h.AddItem, http.MethodPost, "/api/cart/items", addItemRequest{ItemID: "smoothie-bowl"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decodeCartView(t, rr).Count)

	rr = f.do(t, h.AddItem, http.MethodPost, "/api/cart/items", addItemRequest{ItemID: "smoothie-bowl", CustomizationIDs: []string{"extra-sugar"}})
	require.Equal(t, http.StatusOK, rr.Code)
	view := decodeCartView(t, rr)
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, 299+319, view.Total)

	// qtyAvailable is 2; a third unit of the same base item must bounce.
	rr = f.do(t, h.AddItem, http.MethodPost, "/api/cart/items", addItemRequest{ItemID: "smoothie-bowl"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = f.do(t, h.Get, http.MethodGet, "/api/cart", nil)
	assert.Equal(t, 2, decodeCartView(t, rr).Count, "rejected add left the cart unchanged")
}

func TestCartAddUnknownItem(t *testing.T) {
	f := newFixture(t)
	h := &CartHandler{Menu: f.menu, SessionStore: f.sessions}

	rr := f.do(t, h.AddItem, http.MethodPost, "/api/cart/items", addItemRequest{ItemID: "pizza"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCartOps(t *testing.T) {
	f := newFixture(t)
	h := &CartHandler{Menu: f.menu, SessionStore: f.sessions}

	f.do(t, h.AddItem, http.MethodPost, "/api/cart/items", addItemRequest{ItemID: "smoothie-bowl"})

	rr := f.do(t, h.ApplyOp, http.MethodPost, "/api/cart/ops", cartOpRequest{
		Op:       "set",
		Key:      models.NewVariantKey("smoothie-bowl", nil),
		Quantity: 2,
	})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2, decodeCartView(t, rr).Count)

	rr = f.do(t, h.ApplyOp, http.MethodPost, "/api/cart/ops", cartOpRequest{
		Op:         "decrement",
		BaseItemID: "smoothie-bowl",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decodeCartView(t, rr).Count)

	rr = f.do(t, h.ApplyOp, http.MethodPost, "/api/cart/ops", cartOpRequest{Op: "teleport"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestWhatsAppCheckoutValidationBlocks(t *testing.T) {
	f := newFixture(t)
	cartH := &CartHandler{Menu: f.menu, SessionStore: f.sessions}
	h := &CheckoutHandler{Menu: f.menu, SessionStore: f.sessions, Config: f.cfg, Now: f.now}

	f.do(t, cartH.AddItem, http.MethodPost, "/api/cart/items", addItemRequest{ItemID: "smoothie-bowl"})

	rr := f.do(t, h.WhatsApp, http.MethodPost, "/api/checkout/whatsapp", checkoutRequest{
		CustomerInfo: models.CustomerInfo{Mobile: "12345"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "mobile")
	assert.Contains(t, resp.Errors, "apartmentNumber")

	rr = f.do(t, cartH.Get, http.MethodGet, "/api/cart", nil)
	assert.Equal(t, 1, decodeCartView(t, rr).Count, "cart survives a blocked checkout")
}

func TestWhatsAppCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)
	h := &CheckoutHandler{Menu: f.menu, SessionStore: f.sessions, Config: f.cfg, Now: f.now}

	rr := f.do(t, h.WhatsApp, http.MethodPost, "/api/checkout/whatsapp", checkoutRequest{CustomerInfo: validInfo()})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestWhatsAppCheckoutSuccessClearsCart(t *testing.T) {
	f := newFixture(t)
	cartH := &CartHandler{Menu: f.menu, SessionStore: f.sessions}
	h := &CheckoutHandler{Menu: f.menu, SessionStore: f.sessions, Config: f.cfg, Now: f.now}

	f.do(t, cartH.AddItem, http.MethodPost, "/api/cart/items", addItemRequest{ItemID: "smoothie-bowl"})

	rr := f.do(t, h.WhatsApp, http.MethodPost, "/api/checkout/whatsapp", checkoutRequest{CustomerInfo: validInfo()})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		URL   string `json:"url"`
		Total int    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.URL, "https://wa.me/919742462600?text=")
	assert.Contains(t, resp.URL, "9876543210")
	assert.Equal(t, 299, resp.Total)

	rr = f.do(t, cartH.Get, http.MethodGet, "/api/cart", nil)
	assert.Equal(t, 0, decodeCartView(t, rr).Count)
}

func TestUPICheckoutKeepsCartUntilConfirm(t *testing.T) {
	f := newFixture(t)

	var webhookHits atomic.Int32
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		webhookHits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(webhook.Close)

	cartH := &CartHandler{Menu: f.menu, SessionStore: f.sessions}
	h := &CheckoutHandler{
		Menu:         f.menu,
		Notifier:     checkout.NewNotifier(webhook.URL, nil),
		SessionStore: f.sessions,
		Config:       f.cfg,
		Now:          f.now,
	}

	f.do(t, cartH.AddItem, http.MethodPost, "/api/cart/items", addItemRequest{ItemID: "smoothie-bowl"})

	rr := f.do(t, h.UPI, http.MethodPost, "/api/checkout/upi", checkoutRequest{App: "gpay", CustomerInfo: validInfo()})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int32(1), webhookHits.Load())

	var resp struct {
		OrderID string `json:"orderId"`
		Intent  string `json:"intent"`
		QRPath  string `json:"qrPath"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Intent, "tez://upi/pay?")
	assert.Contains(t, resp.Intent, "am=299")
	assert.NotEmpty(t, resp.OrderID)

	// Payment not confirmed yet, so the cart still holds the order.
	rr = f.do(t, cartH.Get, http.MethodGet, "/api/cart", nil)
	assert.Equal(t, 1, decodeCartView(t, rr).Count)

	rr = f.do(t, h.UPIQRCode, http.MethodGet, "/api/checkout/upi/qr", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))

	rr = f.do(t, h.Confirm, http.MethodPost, "/api/checkout/upi/confirm", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(t, cartH.Get, http.MethodGet, "/api/cart", nil)
	assert.Equal(t, 0, decodeCartView(t, rr).Count)

	rr = f.do(t, h.Confirm, http.MethodPost, "/api/checkout/upi/confirm", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code, "confirm is one-shot")
}

func TestUPICheckoutUnknownApp(t *testing.T) {
	f := newFixture(t)
	h := &CheckoutHandler{Menu: f.menu, SessionStore: f.sessions, Config: f.cfg, Now: f.now}

	rr := f.do(t, h.UPI, http.MethodPost, "/api/checkout/upi", checkoutRequest{App: "venmo", CustomerInfo: validInfo()})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCheckoutClosedStore(t *testing.T) {
	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"storeConfig": {"isOpen": false, "name": "Brekkie Bowlz", "closedMessage": "Gone fishing 🎣", "skipDates": []},
			"menu": []
		}`))
	}))
	t.Cleanup(closed.Close)

	f := newFixture(t)
	f.menu = menu.NewService(closed.URL, menu.WithClock(f.now))
	h := &CheckoutHandler{Menu: f.menu, SessionStore: f.sessions, Config: f.cfg, Now: f.now}

	rr := f.do(t, h.WhatsApp, http.MethodPost, "/api/checkout/whatsapp", checkoutRequest{CustomerInfo: validInfo()})
	require.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "Gone fishing")
}

func TestCustomerDefaultsWithoutStore(t *testing.T) {
	f := newFixture(t)
	h := &CustomerHandler{Store: nil, SessionStore: f.sessions, Now: f.now}

	rr := f.do(t, h.Get, http.MethodGet, "/api/customer", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var info models.CustomerInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.Empty(t, info.Mobile)
	assert.Equal(t, "2024-01-02", info.DeliveryDate)
}
