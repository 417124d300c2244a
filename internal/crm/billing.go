package crm

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/valuable-brands/backoffice/internal/shared"
)

// BillingDocument is an invoice or receipt rendered as HTML, ready for PDF
// conversion.
type BillingDocument struct {
	Title      string
	Filename   string
	HTML       string
	FooterHTML string
}

// BillingBuilder renders billing documents for registrations.
type BillingBuilder struct {
	company string
	now     func() time.Time
}

// NewBillingBuilder constructs a BillingBuilder for the given company name.
func NewBillingBuilder(company string) *BillingBuilder {
	return &BillingBuilder{company: company, now: time.Now}
}

// WithNow overrides the builder clock for tests.
func (b *BillingBuilder) WithNow(fn func() time.Time) *BillingBuilder {
	if fn != nil {
		b.now = fn
	}
	return b
}

// Invoice renders the invoice for a registration.
func (b *BillingBuilder) Invoice(brand Brand, reg Registration) BillingDocument {
	title := "Invoice " + reg.InvoiceNumber
	doc := b.render(title, brand, reg, [][2]string{
		{"Invoice Number", reg.InvoiceNumber},
		{"Event", reg.EventName},
		{"Package", reg.Package},
		{"Amount Due", shared.FormatKES(reg.InvoiceAmount)},
		{"Payment Status", string(reg.PaymentStatus)},
	})
	doc.Filename = billingFilename("Invoice", reg.InvoiceNumber, brand.Name)
	return doc
}

// Receipt renders a payment receipt for a registration.
func (b *BillingBuilder) Receipt(brand Brand, reg Registration) BillingDocument {
	title := "Receipt " + reg.InvoiceNumber
	doc := b.render(title, brand, reg, [][2]string{
		{"Receipt For Invoice", reg.InvoiceNumber},
		{"Event", reg.EventName},
		{"Package", reg.Package},
		{"Amount Received", shared.FormatKES(reg.InvoiceAmount)},
		{"Received On", b.now().Format("2 Jan 2006")},
	})
	doc.Filename = billingFilename("Receipt", reg.InvoiceNumber, brand.Name)
	return doc
}

func (b *BillingBuilder) render(title string, brand Brand, reg Registration, rows [][2]string) BillingDocument {
	var w strings.Builder
	w.WriteString("<html><head><meta charset=\"utf-8\"><style>")
	w.WriteString("body{font-family:sans-serif;margin:28px;color:#0f172a;}")
	w.WriteString("h1{font-size:22px;margin-bottom:2px;}h2{font-size:15px;margin:18px 0 6px;}")
	w.WriteString(".meta{color:#64748b;font-size:11px;margin-bottom:18px;}")
	w.WriteString("table{width:100%;border-collapse:collapse;margin-bottom:14px;font-size:12px;}")
	w.WriteString("th,td{border:1px solid #e2e8f0;padding:6px 8px;text-align:left;}")
	w.WriteString("th{background:#f1f5f9;width:35%;}")
	w.WriteString("</style></head><body>")

	w.WriteString(fmt.Sprintf("<h1>%s</h1>", html.EscapeString(b.company)))
	w.WriteString(fmt.Sprintf("<h2>%s</h2>", html.EscapeString(title)))
	w.WriteString(fmt.Sprintf("<p class=\"meta\">Issued %s</p>", b.now().Format("2 Jan 2006")))

	w.WriteString("<h2>Billed To</h2><table>")
	for _, row := range [][2]string{
		{"Brand", brand.Name},
		{"Contact", brand.ContactName},
		{"Email", brand.ContactEmail},
	} {
		w.WriteString(fmt.Sprintf("<tr><th>%s</th><td>%s</td></tr>",
			html.EscapeString(row[0]), html.EscapeString(row[1])))
	}
	w.WriteString("</table>")

	w.WriteString("<h2>Details</h2><table>")
	for _, row := range rows {
		w.WriteString(fmt.Sprintf("<tr><th>%s</th><td>%s</td></tr>",
			html.EscapeString(row[0]), html.EscapeString(row[1])))
	}
	w.WriteString("</table>")
	w.WriteString("</body></html>")

	footer := `<html><head><style>p{font-size:9px;color:#64748b;text-align:center;font-family:sans-serif;}</style></head>` +
		`<body><p>` + html.EscapeString(b.company) + ` &middot; Page <span class="pageNumber"></span> of <span class="totalPages"></span></p></body></html>`

	return BillingDocument{Title: title, HTML: w.String(), FooterHTML: footer}
}

func billingFilename(kind, number, brandName string) string {
	return fmt.Sprintf("%s-%s-%s.pdf", kind, number, strings.ReplaceAll(strings.TrimSpace(brandName), " ", "_"))
}
