package checkout

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"strings"

	"github.com/Dant324/bare-and-beautiful/internal/cart"
)

// Customer identifies who is checking out. It is sourced from the stored
// account record, never from client-supplied fields.
type Customer struct {
	Email string
	Name  string
	Phone string
}

// Order is the payload both notification templates receive. Placing an
// order produces no durable server-side artifact beyond these sends.
type Order struct {
	ID       string `json:"orderId"`
	Customer string `json:"customer"`
	Email    string `json:"email"`
	Items    string `json:"items"`
	Total    string `json:"total"`
}

// Dispatcher completes checkouts over the two independent paths: the
// double template email and the WhatsApp deep-link handoff.
type Dispatcher struct {
	email            EmailSender
	customerTemplate string
	businessTemplate string
	whatsAppNumber   string
}

func NewDispatcher(email EmailSender, customerTemplate, businessTemplate, whatsAppNumber string) *Dispatcher {
	return &Dispatcher{
		email:            email,
		customerTemplate: customerTemplate,
		businessTemplate: businessTemplate,
		whatsAppNumber:   whatsAppNumber,
	}
}

// NewOrderID generates the displayed order reference: a fixed prefix and
// four random digits.
func NewOrderID() string {
	return fmt.Sprintf("BB-%d", 1000+rand.Intn(9000))
}

// BuildOrder assembles the notification payload from the cart summary.
func BuildOrder(customer Customer, summary cart.Summary) Order {
	name := customer.Name
	if name == "" {
		name = customer.Email
	}
	lines := make([]string, 0, len(summary.Items))
	for _, it := range summary.Items {
		lines = append(lines, fmt.Sprintf("• %s (x%d)", it.Product.Name, it.Quantity))
	}
	return Order{
		ID:       NewOrderID(),
		Customer: name,
		Email:    customer.Email,
		Items:    strings.Join(lines, "\n"),
		Total:    FormatKSh(summary.Total),
	}
}

// SendOrderEmails submits the same payload against the customer receipt
// template and then the business notification template, in that order.
// Either failure makes the whole email path fail; the order is still
// considered placed by the caller.
func (d *Dispatcher) SendOrderEmails(ctx context.Context, o Order) error {
	params := map[string]string{
		"user_email":  o.Email,
		"user_name":   o.Customer,
		"order_id":    o.ID,
		"items":       o.Items,
		"total_price": o.Total,
	}
	if err := d.email.Send(ctx, d.customerTemplate, params); err != nil {
		return fmt.Errorf("customer receipt: %w", err)
	}
	if err := d.email.Send(ctx, d.businessTemplate, params); err != nil {
		return fmt.Errorf("business notification: %w", err)
	}
	return nil
}

// WhatsAppLink builds the deep link carrying the URL-encoded order
// summary. This path performs no server write.
func (d *Dispatcher) WhatsAppLink(customer Customer, summary cart.Summary) string {
	phone := customer.Phone
	if phone == "" {
		phone = "Not Provided"
	}

	var b strings.Builder
	b.WriteString("New Order - Bare & Beautiful\n\n")
	fmt.Fprintf(&b, "Customer: %s\n", customerName(customer))
	fmt.Fprintf(&b, "Email: %s\n", customer.Email)
	fmt.Fprintf(&b, "Phone: %s\n\n", phone)
	b.WriteString("Items:\n")
	for _, it := range summary.Items {
		fmt.Fprintf(&b, "• %s (x%d) - %s\n", it.Product.Name, it.Quantity, FormatKSh(it.Product.Price*it.Quantity))
	}
	fmt.Fprintf(&b, "\nTotal: %s", FormatKSh(summary.Total))

	return "https://wa.me/" + d.whatsAppNumber + "?text=" + url.QueryEscape(b.String())
}

// WhatsAppConfigured reports whether the deep-link target is set.
func (d *Dispatcher) WhatsAppConfigured() bool {
	return d.whatsAppNumber != ""
}

func customerName(c Customer) string {
	if c.Name != "" {
		return c.Name
	}
	return c.Email
}

// FormatKSh renders an integer amount with thousands grouping, e.g.
// "KSh 3,000".
func FormatKSh(amount int) string {
	digits := fmt.Sprintf("%d", amount)
	if amount < 0 {
		digits = digits[1:]
	}

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if amount < 0 {
		return "KSh -" + b.String()
	}
	return "KSh " + b.String()
}
