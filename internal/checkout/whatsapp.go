package checkout

import (
	"fmt"
	"strings"

	"github.com/ashrithps/BrekkieBowlz/internal/models"
	"github.com/ashrithps/BrekkieBowlz/internal/pricing"
)

// WhatsAppMessage formats the order as a human-readable chat message:
// customer fields, one bullet line per cart item with quantity and
// subtotal, nested lines for each applied customization, optional
// comments, and the computed total.
func WhatsAppMessage(items []models.CartItem, info models.CustomerInfo, total int) string {
	var b strings.Builder

	b.WriteString("🥤 *Brekkie Bowlz Order*\n\n")
	fmt.Fprintf(&b, "📱 Mobile: %s\n", info.Mobile)
	fmt.Fprintf(&b, "🏠 Apartment: %s\n", info.ApartmentNumber)
	fmt.Fprintf(&b, "🏢 Tower: %s\n", info.TowerNumber)
	if info.DeliveryDate != "" {
		fmt.Fprintf(&b, "📅 Delivery: %s\n", info.DeliveryDate)
	}

	b.WriteString("\n*Order Details:*\n")
	for _, item := range items {
		fmt.Fprintf(&b, "• %s x%d - %s\n", item.Name, item.Quantity, pricing.FormatPrice(item.Subtotal()))
		for _, c := range item.Customizations {
			if c.PriceChange != 0 {
				sign := ""
				if c.PriceChange > 0 {
					sign = "+"
				}
				fmt.Fprintf(&b, "  ↳ %s (%s%s)\n", c.Name, sign, pricing.FormatPrice(c.PriceChange))
			} else {
				fmt.Fprintf(&b, "  ↳ %s\n", c.Name)
			}
		}
	}

	if info.Comments != "" {
		fmt.Fprintf(&b, "\n📝 Comments: %s\n", info.Comments)
	}

	fmt.Fprintf(&b, "\n💰 *Total: %s*\n\nThank you for your order! 🙏", pricing.FormatPrice(total))
	return b.String()
}

// WhatsAppURL builds the chat deep link with the message pre-filled.
func WhatsAppURL(message, phoneNumber string) string {
	return "https://wa.me/" + phoneNumber + "?text=" + encodeMessage(message)
}

// encodeMessage percent-encodes the characters a URL cannot carry while
// leaving multi-byte UTF-8 sequences (emoji included) literal, so chat
// apps render them instead of an escaped soup.
func encodeMessage(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x80 || isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')', ';', ',', '/', '?', ':', '@', '&', '=', '+', '$':
		return true
	}
	return false
}
