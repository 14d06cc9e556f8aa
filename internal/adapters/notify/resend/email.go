package resend

import (
	"fmt"
	"html"
	"strings"

	"github.com/delphine/shop/internal/domain"
)

func formatPrice(v float64) string {
	return fmt.Sprintf("€%.2f", v)
}

func firstName(o domain.Order) string {
	if o.ShippingAddress.FirstName != "" {
		return o.ShippingAddress.FirstName
	}
	if parts := strings.Fields(o.UserName); len(parts) > 0 {
		return parts[0]
	}
	return "there"
}

func renderEmail(event domain.NotifyEvent, o domain.Order) (subject, body string, err error) {
	switch event {
	case domain.NotifyConfirmation:
		return "Order Confirmed - " + o.OrderID, confirmationHTML(o), nil
	case domain.NotifyShipped:
		return "Your Order Has Shipped - " + o.OrderID, shippedHTML(o), nil
	case domain.NotifyDelivered:
		return "Your Order Has Been Delivered - " + o.OrderID, deliveredHTML(o), nil
	}
	return "", "", fmt.Errorf("invalid email type %q", event)
}

func headerHTML(b *strings.Builder) {
	b.WriteString(`<div style="text-align:center;margin-bottom:32px">`)
	b.WriteString(`<h1 style="color:#1a1a2e;font-size:28px;margin:0;letter-spacing:3px;font-weight:300">DELPHINE</h1>`)
	b.WriteString(`<p style="color:#6b7280;margin:8px 0 0;font-size:11px;letter-spacing:2px">SWIMWEAR</p></div>`)
}

func footerHTML(b *strings.Builder) {
	b.WriteString(`<div style="margin-top:40px;padding-top:20px;border-top:1px solid #e5e7eb;text-align:center;color:#6b7280;font-size:12px">`)
	b.WriteString(`<p style="margin:0">Delphine Swimwear</p><p style="margin:4px 0 0">Tirana, Albania</p>`)
	b.WriteString(`<p style="margin:8px 0 0"><a href="https://delphineswimwear.com" style="color:#1a1a2e">delphineswimwear.com</a></p></div>`)
}

func addressHTML(b *strings.Builder, a domain.ShippingAddress) {
	fmt.Fprintf(b, `<p style="margin:0;line-height:1.6">%s %s<br>%s<br>%s, %s<br>%s</p>`,
		html.EscapeString(a.FirstName), html.EscapeString(a.LastName),
		html.EscapeString(a.Address),
		html.EscapeString(a.City), html.EscapeString(a.PostalCode),
		html.EscapeString(a.Country))
}

func itemsHTML(b *strings.Builder, o domain.Order) {
	for _, it := range o.Items {
		fmt.Fprintf(b, `<tr><td style="padding:12px 0;border-bottom:1px solid #e5e7eb"><p style="margin:0;font-weight:500">%s</p>`,
			html.EscapeString(it.ProductName))
		fmt.Fprintf(b, `<p style="margin:4px 0 0;color:#6b7280;font-size:13px">%s × %d</p></td>`,
			html.EscapeString(it.VariantName), it.Quantity)
		fmt.Fprintf(b, `<td style="padding:12px 0;border-bottom:1px solid #e5e7eb;text-align:right;font-weight:500">%s</td></tr>`,
			formatPrice(it.Price*float64(it.Quantity)))
	}
}

func openBody(b *strings.Builder) {
	b.WriteString(`<!DOCTYPE html><html><body style="font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif;line-height:1.6;color:#1f2937;max-width:600px;margin:0 auto;padding:20px">`)
	headerHTML(b)
}

func closeBody(b *strings.Builder) string {
	footerHTML(b)
	b.WriteString(`</body></html>`)
	return b.String()
}

func codBanner(b *strings.Builder, o domain.Order, label string) {
	fmt.Fprintf(b, `<div style="background:#fef3c7;padding:16px;margin:24px 0"><p style="margin:0;color:#92400e;font-size:14px"><strong>Payment on Delivery</strong><br>%s <strong>%s</strong></p></div>`,
		label, formatPrice(o.Total))
}

func confirmationHTML(o domain.Order) string {
	var b strings.Builder
	openBody(&b)
	b.WriteString(`<div style="background:#d1fae5;border:1px solid #6ee7b7;padding:20px;margin-bottom:24px;text-align:center"><p style="color:#065f46;font-size:18px;margin:0">Order Confirmed!</p></div>`)
	fmt.Fprintf(&b, `<p>Hi %s,</p><p>Thank you for your order! We've received it and will begin processing shortly.</p>`, html.EscapeString(firstName(o)))
	fmt.Fprintf(&b, `<div style="background:#f9fafb;padding:20px;margin:24px 0"><p style="margin:0 0 8px;font-weight:600;font-size:14px;color:#6b7280">ORDER NUMBER</p><p style="margin:0;font-size:24px;font-family:monospace;color:#1a1a2e;font-weight:600">%s</p></div>`, o.OrderID)
	b.WriteString(`<h3 style="font-size:14px;color:#6b7280;margin:24px 0 12px;font-weight:600">ORDER DETAILS</h3><table style="width:100%;border-collapse:collapse">`)
	itemsHTML(&b, o)
	b.WriteString(`</table><div style="margin-top:16px;padding-top:16px;border-top:2px solid #1a1a2e"><table style="width:100%">`)
	fmt.Fprintf(&b, `<tr><td style="padding:4px 0;color:#6b7280">Subtotal</td><td style="text-align:right">%s</td></tr>`, formatPrice(o.Subtotal))
	fmt.Fprintf(&b, `<tr><td style="padding:4px 0;color:#6b7280">Shipping</td><td style="text-align:right">%s</td></tr>`, formatPrice(o.Shipping))
	fmt.Fprintf(&b, `<tr><td style="padding:8px 0;font-weight:600;font-size:18px">Total</td><td style="text-align:right;font-weight:600;font-size:18px">%s</td></tr>`, formatPrice(o.Total))
	b.WriteString(`</table></div><div style="margin:24px 0"><h3 style="font-size:14px;color:#6b7280;margin:0 0 12px;font-weight:600">SHIPPING TO</h3><div style="background:#f9fafb;padding:16px">`)
	addressHTML(&b, o.ShippingAddress)
	b.WriteString(`</div></div>`)
	codBanner(&b, o, "Please have")
	b.WriteString(`<p style="color:#6b7280;font-size:14px">We'll send you another email when your order ships.</p>`)
	return closeBody(&b)
}

func shippedHTML(o domain.Order) string {
	var b strings.Builder
	openBody(&b)
	b.WriteString(`<div style="background:#dbeafe;border:1px solid #93c5fd;padding:20px;margin-bottom:24px;text-align:center"><p style="color:#1e40af;font-size:18px;margin:0">Your Order Has Shipped!</p></div>`)
	fmt.Fprintf(&b, `<p>Hi %s,</p><p>Great news! Your order <strong>%s</strong> is on its way.</p>`, html.EscapeString(firstName(o)), o.OrderID)
	if o.TrackingNumber != "" {
		fmt.Fprintf(&b, `<div style="background:#f9fafb;padding:20px;margin:24px 0"><p style="margin:0 0 8px;font-weight:600;font-size:14px;color:#6b7280">TRACKING NUMBER</p><p style="margin:0;font-size:20px;font-family:monospace;color:#1a1a2e">%s</p></div>`, html.EscapeString(o.TrackingNumber))
	}
	b.WriteString(`<div style="margin:24px 0"><p style="margin:0 0 8px;font-weight:600;font-size:14px;color:#6b7280">SHIPPING TO</p><div style="background:#f9fafb;padding:16px">`)
	addressHTML(&b, o.ShippingAddress)
	b.WriteString(`</div></div>`)
	codBanner(&b, o, "Total to pay:")
	b.WriteString(`<p style="color:#6b7280;font-size:14px">If you have any questions, simply reply to this email.</p>`)
	return closeBody(&b)
}

func deliveredHTML(o domain.Order) string {
	var b strings.Builder
	openBody(&b)
	b.WriteString(`<div style="background:#d1fae5;border:1px solid #6ee7b7;padding:20px;margin-bottom:24px;text-align:center"><p style="color:#065f46;font-size:18px;margin:0">Your Order Has Been Delivered!</p></div>`)
	fmt.Fprintf(&b, `<p>Hi %s,</p><p>Your order <strong>%s</strong> has been delivered. We hope you love your new swimwear!</p>`, html.EscapeString(firstName(o)), o.OrderID)
	b.WriteString(`<div style="background:#f9fafb;padding:20px;margin:24px 0"><p style="margin:0 0 16px;font-weight:600">Order Summary</p><div style="border-top:1px solid #e5e7eb;padding-top:16px"><table style="width:100%">`)
	fmt.Fprintf(&b, `<tr><td style="padding:4px 0;color:#6b7280">Order ID</td><td style="text-align:right;font-family:monospace">%s</td></tr>`, o.OrderID)
	fmt.Fprintf(&b, `<tr><td style="padding:4px 0;color:#6b7280">Total Paid</td><td style="text-align:right;font-weight:600">%s</td></tr>`, formatPrice(o.Total))
	b.WriteString(`</table></div></div>`)
	b.WriteString(`<p>Thank you for shopping with Delphine. We'd love to see you wearing our pieces - tag us on Instagram <strong>@delphineswimwear</strong>!</p>`)
	b.WriteString(`<div style="text-align:center;margin:32px 0"><a href="https://delphineswimwear.com/shop" style="display:inline-block;background:#1a1a2e;color:white;padding:14px 40px;text-decoration:none;font-size:13px;letter-spacing:1px">SHOP MORE</a></div>`)
	return closeBody(&b)
}
