package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ashrithps/BrekkieBowlz/internal/cart"
	"github.com/ashrithps/BrekkieBowlz/internal/checkout"
	"github.com/ashrithps/BrekkieBowlz/internal/config"
	"github.com/ashrithps/BrekkieBowlz/internal/customer"
	"github.com/ashrithps/BrekkieBowlz/internal/menu"
	"github.com/ashrithps/BrekkieBowlz/internal/models"
	"github.com/ashrithps/BrekkieBowlz/internal/store"
	"github.com/gorilla/sessions"
)

type CheckoutHandler struct {
	Menu         *menu.Service
	Notifier     *checkout.Notifier
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Config       *config.Config
	Now          func() time.Time
}

func (h *CheckoutHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

type checkoutRequest struct {
	App          string              `json:"app,omitempty"` // UPI path only
	CustomerInfo models.CustomerInfo `json:"customerInfo"`
}

// prepare runs the common checkout preconditions: the store must be open,
// the form must validate, and the cart must be non-empty. The submitted
// form is persisted either way so the customer never retypes it.
func (h *CheckoutHandler) prepare(w http.ResponseWriter, r *http.Request, req checkoutRequest, session *sessions.Session) (*cart.Cart, bool) {
	data := h.Menu.Fetch(r.Context())
	if !h.Menu.IsStoreOpen(data.StoreConfig) {
		writeError(w, http.StatusForbidden, data.StoreConfig.ClosedMessage)
		return nil, false
	}

	var backend customer.Backend
	if h.Store != nil {
		backend = h.Store.ForDevice(deviceID(session))
	}
	customer.NewService(backend, h.Now).Save(req.CustomerInfo)

	if errs := customer.Validate(req.CustomerInfo, h.now()); len(errs) > 0 {
		session.Save(r, w)
		writeFieldErrors(w, errs)
		return nil, false
	}

	c := cartFromSession(session)
	if c.IsEmpty() {
		session.Save(r, w)
		writeError(w, http.StatusBadRequest, "Cart is empty")
		return nil, false
	}
	return c, true
}

// UPI dispatches the payment flow: the order is forwarded to the order
// webhook, then the caller gets the app-specific deep link and a QR code
// path. The cart is NOT cleared here; payment confirmation is the
// precondition for that, via Confirm.
func (h *CheckoutHandler) UPI(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid checkout payload")
		return
	}

	app, ok := checkout.AppByID(req.App)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown payment app")
		return
	}

	session := getSession(h.SessionStore, r)
	c, ok := h.prepare(w, r, req, session)
	if !ok {
		return
	}

	now := h.now()
	order := checkout.BuildOrder(c.Items(), req.CustomerInfo, now)

	if h.Notifier != nil {
		if err := h.Notifier.Send(r.Context(), order); err != nil {
			// The deep link still goes out; an unrecorded order is better
			// than a blocked customer. See Confirm for the cart reset.
			slog.Error("Order webhook failed", "orderId", order.OrderID, "error", err)
		}
	}

	intent := checkout.UPIIntent(app, checkout.UPIConfig{
		PayeeID:   h.Config.UPIPayeeID,
		PayeeName: h.Config.UPIPayeeName,
	}, order.Total, req.CustomerInfo.Mobile, now)

	session.Values[sessionKeyUPIIntent] = intent
	session.Values[sessionKeyOrderID] = order.OrderID
	session.Save(r, w)

	writeJSON(w, http.StatusOK, map[string]any{
		"orderId": order.OrderID,
		"intent":  intent,
		"qrPath":  "/api/checkout/upi/qr",
		"total":   order.Total,
	})
}

// UPIQRCode renders the pending payment intent as a PNG for desktop
// customers who cannot follow an app deep link.
func (h *CheckoutHandler) UPIQRCode(w http.ResponseWriter, r *http.Request) {
	session := getSession(h.SessionStore, r)
	intent, ok := session.Values[sessionKeyUPIIntent].(string)
	if !ok || intent == "" {
		writeError(w, http.StatusNotFound, "No payment in progress")
		return
	}

	png, err := checkout.QRCodePNG(intent)
	if err != nil {
		slog.Error("Failed to render UPI QR code", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not render QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// Confirm marks the dispatched payment as completed and clears the cart.
// Contact info is deliberately retained for future orders.
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	session := getSession(h.SessionStore, r)

	orderID, _ := session.Values[sessionKeyOrderID].(string)
	if orderID == "" {
		writeError(w, http.StatusNotFound, "No payment in progress")
		return
	}

	c := cartFromSession(session)
	c.Clear()
	saveCart(session, c)
	delete(session.Values, sessionKeyUPIIntent)
	delete(session.Values, sessionKeyOrderID)
	session.Save(r, w)

	slog.Info("Order confirmed", "orderId", orderID)
	writeJSON(w, http.StatusOK, map[string]any{"orderId": orderID, "cart": viewOf(c)})
}

// WhatsApp formats the order as a chat message and hands back the wa.me
// deep link. Opening the link is the terminal action, so the cart clears
// immediately.
func (h *CheckoutHandler) WhatsApp(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid checkout payload")
		return
	}

	session := getSession(h.SessionStore, r)
	c, ok := h.prepare(w, r, req, session)
	if !ok {
		return
	}

	total := c.Total()
	message := checkout.WhatsAppMessage(c.Items(), req.CustomerInfo, total)
	url := checkout.WhatsAppURL(message, h.Config.WhatsAppPhone)

	c.Clear()
	saveCart(session, c)
	session.Save(r, w)

	writeJSON(w, http.StatusOK, map[string]any{
		"url":   url,
		"total": total,
	})
}
