package pricing

import (
	"strconv"

	"github.com/ashrithps/BrekkieBowlz/internal/models"
)

// FormatPrice renders a rupee amount for display, e.g. 299 -> "₹299".
func FormatPrice(amount int) string {
	return "₹" + strconv.Itoa(amount)
}

// Total sums effective unit price times quantity over all cart lines.
// An empty cart totals zero.
func Total(items []models.CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Price * item.Quantity
	}
	return total
}

// EffectivePrice is the unit price of a base item with the given
// customizations applied.
func EffectivePrice(base int, customizations []models.Customization) int {
	price := base
	for _, c := range customizations {
		price += c.PriceChange
	}
	return price
}
