package models

import (
	"sort"
	"strings"
	"time"
)

// CustomizationKind tags how a customization alters the base item.
type CustomizationKind string

const (
	CustomizationAdd        CustomizationKind = "add"
	CustomizationRemove     CustomizationKind = "remove"
	CustomizationSubstitute CustomizationKind = "substitute"
)

type Customization struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	PriceChange int               `json:"priceChange"` // signed delta, rupees
	Type        CustomizationKind `json:"type"`
}

type MenuItem struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          int             `json:"price"` // whole rupees
	Image          string          `json:"image"`
	Ingredients    []string        `json:"ingredients,omitempty"`
	Customizations []Customization `json:"customizations,omitempty"`
	QtyAvailable   int             `json:"qtyAvailable"`
}

type OperatingHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type HeroSection struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// CheckoutType selects which checkout dispatcher the storefront offers.
type CheckoutType string

const (
	CheckoutPayment  CheckoutType = "payment"
	CheckoutWhatsApp CheckoutType = "whatsapp"
)

type StoreConfig struct {
	IsOpen         bool           `json:"isOpen"`
	Name           string         `json:"name"`
	ClosedMessage  string         `json:"closedMessage"`
	SkipDates      []string       `json:"skipDates"` // ISO calendar dates
	OperatingHours OperatingHours `json:"operatingHours"`
	HeroSection    *HeroSection   `json:"heroSection,omitempty"`
	CheckoutType   CheckoutType   `json:"checkout_type,omitempty"`
}

// MenuData is the unit the menu provider fetches, caches and validates.
type MenuData struct {
	StoreConfig StoreConfig `json:"storeConfig"`
	Menu        []MenuItem  `json:"menu"`
}

// VariantKey identifies one cart line: a base menu item plus the exact set
// of customizations applied to it. CustomizationIDs are kept sorted so two
// keys built from the same selections compare equal.
type VariantKey struct {
	BaseItemID       string   `json:"baseItemId"`
	CustomizationIDs []string `json:"customizationIds,omitempty"`
}

func NewVariantKey(baseItemID string, customizationIDs []string) VariantKey {
	ids := append([]string(nil), customizationIDs...)
	sort.Strings(ids)
	return VariantKey{BaseItemID: baseItemID, CustomizationIDs: ids}
}

func (k VariantKey) Equal(other VariantKey) bool {
	if k.BaseItemID != other.BaseItemID || len(k.CustomizationIDs) != len(other.CustomizationIDs) {
		return false
	}
	for i, id := range k.CustomizationIDs {
		if other.CustomizationIDs[i] != id {
			return false
		}
	}
	return true
}

// String renders the legacy composite form (base id joined with the sorted
// customization ids) used in outbound order payloads.
func (k VariantKey) String() string {
	if len(k.CustomizationIDs) == 0 {
		return k.BaseItemID
	}
	return k.BaseItemID + "-" + strings.Join(k.CustomizationIDs, "-")
}

// CartItem is a snapshot of a menu item in the cart. Price is the
// effective unit price (base plus customization deltas); QtyAvailable is
// the stock ceiling of the base item, shared across all of its variants.
type CartItem struct {
	Key            VariantKey      `json:"key"`
	Name           string          `json:"name"`
	Price          int             `json:"price"`
	Quantity       int             `json:"quantity"`
	Customizations []Customization `json:"customizations,omitempty"`
	QtyAvailable   int             `json:"qtyAvailable"`
}

func (c CartItem) Subtotal() int {
	return c.Price * c.Quantity
}

type CustomerInfo struct {
	Name            string `json:"name,omitempty"`
	Mobile          string `json:"mobile"`
	ApartmentNumber string `json:"apartmentNumber"`
	TowerNumber     string `json:"towerNumber"`
	DeliveryDate    string `json:"deliveryDate"` // ISO calendar date
	Comments        string `json:"comments,omitempty"`
}

type DeliveryDate struct {
	Date        string `json:"date"` // ISO calendar date
	Label       string `json:"label"`
	DayName     string `json:"dayName"`
	DateDisplay string `json:"dateDisplay"`
}

// OrderLine is one cart line flattened for the order webhook payload.
type OrderLine struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          int             `json:"price"`
	Quantity       int             `json:"quantity"`
	Subtotal       int             `json:"subtotal"`
	Customizations []Customization `json:"customizations,omitempty"`
}

type OrderCustomer struct {
	Mobile          string `json:"mobile"`
	ApartmentNumber string `json:"apartmentNumber"`
	TowerNumber     string `json:"towerNumber"`
	DeliveryDate    string `json:"deliveryDate"`
	Comments        string `json:"comments,omitempty"`
}

type OrderDelivery struct {
	Date          string `json:"date"`
	TimeSlot      string `json:"timeSlot"`
	FormattedDate string `json:"formattedDate"`
}

// Order is built fresh at checkout time and forwarded to the order
// webhook; it is never persisted locally.
type Order struct {
	OrderID      string        `json:"orderId"`
	CustomerInfo OrderCustomer `json:"customerInfo"`
	Delivery     OrderDelivery `json:"delivery"`
	Items        []OrderLine   `json:"items"`
	Total        int           `json:"total"`
	Timestamp    time.Time     `json:"timestamp"`
}
