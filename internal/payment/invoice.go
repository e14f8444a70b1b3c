package payment

import (
	"fmt"
	"html"
	"strings"

	"github.com/yesmovie/backend/internal/domain"
)

// invoiceSubject is the subject line for purchase receipts.
const invoiceSubject = "Your Purchase Receipt"

// buildHTMLInvoice renders the HTML body of the purchase receipt.
func buildHTMLInvoice(result *domain.PaymentResult) string {
	var sb strings.Builder
	sb.WriteString("<h1>Thank you for your purchase!</h1>")
	sb.WriteString("<h2>Order Details:</h2>")
	sb.WriteString("<ul>")
	for _, item := range result.PurchasedItems {
		sb.WriteString(fmt.Sprintf("<li>%s - Quantity: %d - Price: ₦%s</li>",
			html.EscapeString(item.Title), item.Quantity, item.UnitPrice.StringFixed(2)))
	}
	sb.WriteString("</ul>")
	sb.WriteString(fmt.Sprintf("<p>Total Amount Paid: ₦%s</p>", result.AmountPaid.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("<p>Transaction Reference: %s</p>", html.EscapeString(result.Reference)))
	sb.WriteString("<p>We hope you enjoy your movies!</p>")
	return sb.String()
}

// buildTextInvoice renders the plain-text body of the purchase receipt.
func buildTextInvoice(result *domain.PaymentResult) string {
	var sb strings.Builder
	sb.WriteString("Thank you for your purchase!\n")
	sb.WriteString("Order Details:\n")
	for _, item := range result.PurchasedItems {
		sb.WriteString(fmt.Sprintf("- %s - Quantity: %d - Price: ₦%s\n",
			item.Title, item.Quantity, item.UnitPrice.StringFixed(2)))
	}
	sb.WriteString(fmt.Sprintf("Total Amount Paid: ₦%s\n", result.AmountPaid.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Transaction Reference: %s\n", result.Reference))
	sb.WriteString("We hope you enjoy your movies!\n")
	return sb.String()
}
