package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ashrithps/BrekkieBowlz/internal/menu"
	"github.com/ashrithps/BrekkieBowlz/internal/models"
	"github.com/ashrithps/BrekkieBowlz/internal/pricing"
)

// BuildOrder shapes the finalized cart and delivery form into the webhook
// payload. The order id and timestamp are generated fresh on every call.
func BuildOrder(items []models.CartItem, info models.CustomerInfo, now time.Time) models.Order {
	lines := make([]models.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, models.OrderLine{
			ID:             item.Key.String(),
			Name:           item.Name,
			Price:          item.Price,
			Quantity:       item.Quantity,
			Subtotal:       item.Subtotal(),
			Customizations: item.Customizations,
		})
	}

	return models.Order{
		OrderID: fmt.Sprintf("ORDER_%d", now.UnixMilli()),
		CustomerInfo: models.OrderCustomer{
			Mobile:          info.Mobile,
			ApartmentNumber: info.ApartmentNumber,
			TowerNumber:     info.TowerNumber,
			DeliveryDate:    info.DeliveryDate,
			Comments:        info.Comments,
		},
		Delivery: models.OrderDelivery{
			Date:          info.DeliveryDate,
			TimeSlot:      menu.DeliveryTimeSlot,
			FormattedDate: menu.FormatDeliveryDate(info.DeliveryDate, now),
		},
		Items:     lines,
		Total:     pricing.Total(items),
		Timestamp: now.UTC(),
	}
}

// Notifier posts order payloads to the order webhook.
type Notifier struct {
	webhookURL string
	client     *http.Client
}

func NewNotifier(webhookURL string, client *http.Client) *Notifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Notifier{webhookURL: webhookURL, client: client}
}

// Send delivers the order. Only an HTTP success status counts; no
// response body is expected.
func (n *Notifier) Send(ctx context.Context, order models.Order) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encoding order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building order webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending order webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("order webhook failed: status %d", resp.StatusCode)
	}
	return nil
}
