// Package notify renders order summaries and tells the outside world about
// placed orders.
package notify

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/safar/rakhi-store/internal/models"
)

const whatsAppBase = "https://wa.me/"

// Summary renders the plain-text order message sent to the shop owner.
func Summary(r *models.Receipt) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Order ID: %s\n", r.OrderID)
	fmt.Fprintf(&b, "Name: %s\n", r.Customer.Name)
	fmt.Fprintf(&b, "Phone: %s\n", r.Phone)
	fmt.Fprintf(&b, "Pincode: %s\n", r.Customer.Pincode)
	fmt.Fprintf(&b, "Address: %s\n", r.Customer.Address)
	if ref := strings.TrimSpace(r.Customer.ReferenceBy); ref != "" {
		fmt.Fprintf(&b, "Reference By: %s\n", ref)
	}
	for _, l := range r.Lines {
		fmt.Fprintf(&b, "- %s × %d = ₹%d\n", l.Product, l.Quantity, l.Subtotal)
	}
	fmt.Fprintf(&b, "Total: ₹%d", r.Total)

	return b.String()
}

// WhatsAppLink opens a chat with recipient prefilled with text. Spaces are
// sent as %20, not +.
func WhatsAppLink(recipient, text string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return whatsAppBase + url.PathEscape(strings.TrimSpace(recipient)) + "?text=" + escaped
}
