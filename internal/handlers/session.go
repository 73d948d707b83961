package handlers

import (
	"encoding/gob"
	"net/http"

	"github.com/ashrithps/BrekkieBowlz/internal/cart"
	"github.com/ashrithps/BrekkieBowlz/internal/models"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionName = "brekkie-session"

	sessionKeyCart      = "cart"
	sessionKeyDeviceID  = "device_id"
	sessionKeyUPIIntent = "upi_intent"
	sessionKeyOrderID   = "upi_order_id"
)

// Register types for gob encoding (used by sessions)
func init() {
	gob.Register([]models.CartItem{})
	gob.Register(models.CartItem{})
	gob.Register(models.Customization{})
	gob.Register(models.VariantKey{})
}

// cartFromSession rebuilds the visitor's cart from the session cookie.
func cartFromSession(session *sessions.Session) *cart.Cart {
	c := cart.New()
	if lines, ok := session.Values[sessionKeyCart].([]models.CartItem); ok {
		c.Lines = lines
	}
	return c
}

func saveCart(session *sessions.Session, c *cart.Cart) {
	session.Values[sessionKeyCart] = c.Lines
}

// deviceID returns the stable per-visitor id used to key persisted
// customer info, minting one on first sight.
func deviceID(session *sessions.Session) string {
	if id, ok := session.Values[sessionKeyDeviceID].(string); ok && id != "" {
		return id
	}
	id := uuid.New().String()
	session.Values[sessionKeyDeviceID] = id
	return id
}

func getSession(store *sessions.CookieStore, r *http.Request) *sessions.Session {
	session, _ := store.Get(r, sessionName)
	return session
}
