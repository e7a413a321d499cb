// Package notification sends transactional order emails through an
// HTTP email API. Sending is fire-and-forget: checkout never waits on
// or fails because of a mail delivery problem.
package notification

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tabreed-backend/internal/domain"
	"tabreed-backend/pkg/logger"

	"github.com/goccy/go-json"
)

// Mailer posts messages to a transactional email API. A nil Mailer is
// valid and sends nothing, so callers need no configuration checks.
type Mailer struct {
	apiURL     string
	apiKey     string
	fromAddr   string
	adminAddr  string
	storeName  string
	currency   string
	httpClient *http.Client
}

// NewMailer returns nil when the API credentials are not configured,
// which disables email entirely.
func NewMailer(apiURL, apiKey, fromAddr, adminAddr, storeName, currency string) *Mailer {
	if apiURL == "" || apiKey == "" {
		logger.Warn().Msg("mailer: email API not configured, order emails disabled")
		return nil
	}
	return &Mailer{
		apiURL:    apiURL,
		apiKey:    apiKey,
		fromAddr:  fromAddr,
		adminAddr: adminAddr,
		storeName: storeName,
		currency:  currency,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// SendOrderEmails dispatches the customer confirmation and the admin
// alert for a freshly placed order. Run it in a goroutine; failures
// are logged and dropped.
func (m *Mailer) SendOrderEmails(order *domain.Order) {
	if m == nil {
		return
	}

	if order.Customer.Email != "" {
		m.send(message{
			From:    m.fromAddr,
			To:      order.Customer.Email,
			Subject: fmt.Sprintf("تأكيد الطلب %s - %s", shortID(order.ID), m.storeName),
			HTML:    m.customerBody(order),
		})
	}

	if m.adminAddr != "" {
		m.send(message{
			From:    m.fromAddr,
			To:      m.adminAddr,
			Subject: fmt.Sprintf("New order %s (%.2f %s)", shortID(order.ID), order.TotalAmount, m.currency),
			HTML:    m.adminBody(order),
		})
	}
}

func (m *Mailer) send(msg message) {
	body, err := json.Marshal(msg)
	if err != nil {
		logger.Error().Err(err).Msg("mailer: marshal failed")
		return
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		req, err := http.NewRequest(http.MethodPost, m.apiURL, bytes.NewReader(body))
		if err != nil {
			logger.Error().Err(err).Msg("mailer: request build failed")
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+m.apiKey)

		resp, err := m.httpClient.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode < 300 {
				logger.Info().Str("to", msg.To).Msg("mailer: sent")
				return
			}
			lastErr = fmt.Errorf("email API returned %d", resp.StatusCode)
		} else {
			lastErr = err
		}
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	logger.Error().Err(lastErr).Str("to", msg.To).Msg("mailer: giving up after retries")
}

func (m *Mailer) customerBody(order *domain.Order) string {
	var b strings.Builder
	b.WriteString(`<div dir="rtl" style="font-family:Tahoma,Arial,sans-serif">`)
	fmt.Fprintf(&b, "<h2>شكراً لطلبك من %s</h2>", m.storeName)
	fmt.Fprintf(&b, "<p>رقم الطلب: <b>%s</b></p>", shortID(order.ID))
	b.WriteString("<ul>")
	for _, item := range order.Items {
		name := item.NameAr
		if name == "" {
			name = item.Name
		}
		if item.Price > 0 {
			fmt.Fprintf(&b, "<li>%s × %d — %.2f %s</li>", name, item.Quantity, item.Price*float64(item.Quantity), m.currency)
		} else {
			fmt.Fprintf(&b, "<li>%s × %d — السعر عند الطلب</li>", name, item.Quantity)
		}
	}
	b.WriteString("</ul>")
	fmt.Fprintf(&b, "<p>رسوم التوصيل: %.2f %s</p>", order.ShippingFee, m.currency)
	fmt.Fprintf(&b, "<p><b>الإجمالي: %.2f %s</b></p>", order.TotalAmount, m.currency)
	b.WriteString("<p>سنتواصل معك قريباً لتأكيد موعد التوصيل والتركيب.</p>")
	b.WriteString("</div>")
	return b.String()
}

func (m *Mailer) adminBody(order *domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h3>Order %s</h3>", shortID(order.ID))
	fmt.Fprintf(&b, "<p>%s — %s — %s</p>", order.Customer.Name, order.Customer.Phone, order.Customer.City)
	fmt.Fprintf(&b, "<p>%s</p>", order.Customer.Address)
	b.WriteString("<ul>")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "<li>%s (%s, %d BTU) × %d @ %.2f</li>", item.Name, item.Brand, item.CapacityBTU, item.Quantity, item.Price)
	}
	b.WriteString("</ul>")
	fmt.Fprintf(&b, "<p>Payment: %s — Total: %.2f %s</p>", order.PaymentMethod, order.TotalAmount, m.currency)
	return b.String()
}

// shortID is the order reference shown to people: the first uuid block.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return strings.ToUpper(id[:i])
	}
	return id
}
