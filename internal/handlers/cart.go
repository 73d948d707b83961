package handlers

import (
	"errors"
	"net/http"

	"github.com/ashrithps/BrekkieBowlz/internal/cart"
	"github.com/ashrithps/BrekkieBowlz/internal/menu"
	"github.com/ashrithps/BrekkieBowlz/internal/models"
	"github.com/gorilla/sessions"
)

type CartHandler struct {
	Menu         *menu.Service
	SessionStore *sessions.CookieStore
}

type cartView struct {
	Items []models.CartItem `json:"items"`
	Total int               `json:"total"`
	Count int               `json:"count"`
}

func viewOf(c *cart.Cart) cartView {
	return cartView{Items: c.Items(), Total: c.Total(), Count: c.Count()}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := getSession(h.SessionStore, r)
	c := cartFromSession(session)
	session.Save(r, w)
	writeJSON(w, http.StatusOK, viewOf(c))
}

type addItemRequest struct {
	ItemID           string   `json:"itemId"`
	CustomizationIDs []string `json:"customizationIds"`
}

// AddItem puts one unit of a menu item, with the selected customizations,
// into the session cart. Stock is checked against the base item across
// all of its variants.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cart request")
		return
	}

	data := h.Menu.Fetch(r.Context())
	item, ok := findItem(data.Menu, req.ItemID)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown menu item")
		return
	}

	customizations, ok := pickCustomizations(item, req.CustomizationIDs)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown customization for item")
		return
	}

	session := getSession(h.SessionStore, r)
	c := cartFromSession(session)

	if err := c.Add(item, customizations); err != nil {
		if errors.Is(err, cart.ErrOutOfStock) {
			writeError(w, http.StatusConflict, "No more stock available for this item")
			return
		}
		writeError(w, http.StatusInternalServerError, "Could not add item")
		return
	}

	saveCart(session, c)
	session.Save(r, w)
	writeJSON(w, http.StatusOK, viewOf(c))
}

type cartOpRequest struct {
	Op         string            `json:"op"` // "set" or "decrement"
	Key        models.VariantKey `json:"key,omitempty"`
	Quantity   int               `json:"quantity,omitempty"`
	BaseItemID string            `json:"baseItemId,omitempty"`
}

// ApplyOp runs an explicit cart operation: set a line to an exact
// quantity, or shed one unit from whichever variant of a base item is
// largest.
func (h *CartHandler) ApplyOp(w http.ResponseWriter, r *http.Request) {
	var req cartOpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cart request")
		return
	}

	var op cart.Op
	switch req.Op {
	case "set":
		op = cart.SetQuantity{Key: req.Key, Quantity: req.Quantity}
	case "decrement":
		op = cart.Decrement{BaseItemID: req.BaseItemID}
	default:
		writeError(w, http.StatusBadRequest, "Unknown cart operation")
		return
	}

	session := getSession(h.SessionStore, r)
	c := cartFromSession(session)

	if err := c.Apply(op); err != nil {
		switch {
		case errors.Is(err, cart.ErrOutOfStock):
			writeError(w, http.StatusConflict, "No more stock available for this item")
		case errors.Is(err, cart.ErrNotFound):
			writeError(w, http.StatusNotFound, "Item is not in the cart")
		default:
			writeError(w, http.StatusInternalServerError, "Could not update cart")
		}
		return
	}

	saveCart(session, c)
	session.Save(r, w)
	writeJSON(w, http.StatusOK, viewOf(c))
}

func findItem(items []models.MenuItem, id string) (models.MenuItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return models.MenuItem{}, false
}

func pickCustomizations(item models.MenuItem, ids []string) ([]models.Customization, bool) {
	if len(ids) == 0 {
		return nil, true
	}
	picked := make([]models.Customization, 0, len(ids))
	for _, id := range ids {
		found := false
		for _, c := range item.Customizations {
			if c.ID == id {
				picked = append(picked, c)
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return picked, true
}
