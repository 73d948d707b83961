package handlers

import (
	"net/http"
	"time"

	"github.com/ashrithps/BrekkieBowlz/internal/customer"
	"github.com/ashrithps/BrekkieBowlz/internal/models"
	"github.com/ashrithps/BrekkieBowlz/internal/store"
	"github.com/gorilla/sessions"
)

type CustomerHandler struct {
	Store        *store.Store // may be nil; persistence then degrades to defaults
	SessionStore *sessions.CookieStore
	Now          func() time.Time
}

func (h *CustomerHandler) service(session *sessions.Session) *customer.Service {
	var backend customer.Backend
	if h.Store != nil {
		backend = h.Store.ForDevice(deviceID(session))
	}
	return customer.NewService(backend, h.Now)
}

// Get returns the saved delivery-contact form, or defaults with the
// delivery date preset to tomorrow.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := getSession(h.SessionStore, r)
	info := h.service(session).Load()
	session.Save(r, w)
	writeJSON(w, http.StatusOK, info)
}

// Put persists the form. Saving is best-effort; the response is always a
// success so a broken persistence backend never blocks the customer.
func (h *CustomerHandler) Put(w http.ResponseWriter, r *http.Request) {
	var info models.CustomerInfo
	if err := decodeJSON(r, &info); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid customer info payload")
		return
	}

	session := getSession(h.SessionStore, r)
	h.service(session).Save(info)
	session.Save(r, w)
	writeJSON(w, http.StatusOK, info)
}
