package checkout

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// PaymentApp describes one UPI payment application and its deep-link
// scheme.
type PaymentApp struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Scheme string `json:"scheme"`
}

// PaymentApps are the supported UPI targets, each with its app-specific
// intent scheme.
var PaymentApps = []PaymentApp{
	{ID: "phonepe", Name: "PhonePe", Scheme: "phonepe://pay"},
	{ID: "gpay", Name: "Google Pay", Scheme: "tez://upi/pay"},
	{ID: "bhim", Name: "BHIM", Scheme: "upi://pay"},
	{ID: "paytm", Name: "Paytm", Scheme: "paytm://pay"},
}

func AppByID(id string) (PaymentApp, bool) {
	for _, app := range PaymentApps {
		if app.ID == id {
			return app, true
		}
	}
	return PaymentApp{}, false
}

// UPIConfig identifies the payee the deep link pays into.
type UPIConfig struct {
	PayeeID   string
	PayeeName string
}

// UPIIntent builds the app-specific UPI deep link for the given total.
// The transaction note carries the customer's mobile number; the
// transaction reference is derived from the current timestamp.
func UPIIntent(app PaymentApp, cfg UPIConfig, total int, mobile string, now time.Time) string {
	params := url.Values{}
	params.Set("pa", cfg.PayeeID)
	params.Set("pn", cfg.PayeeName)
	params.Set("am", strconv.Itoa(total))
	params.Set("cu", "INR")
	params.Set("tn", "Order from "+mobile)
	params.Set("tr", fmt.Sprintf("TXN_%d", now.UnixMilli()))

	return app.Scheme + "?" + params.Encode()
}

// QRCodePNG renders the UPI intent as a scannable PNG.
func QRCodePNG(intent string) ([]byte, error) {
	return qrcode.Encode(intent, qrcode.Medium, 256)
}
