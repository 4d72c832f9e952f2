// Package templates renders the HTML bodies for outbound workshop emails
// and printable invoices.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/garage-platform/garage-api/internal/domain"
)

//go:embed files/*.html
var files embed.FS

var pages = template.Must(template.ParseFS(files, "files/*.html"))

// RenderDailyReport renders the daily report email body
func RenderDailyReport(report *domain.DailyReport) (string, error) {
	return render("daily_report.html", report)
}

// RenderInvoice renders a bill as a printable HTML invoice
func RenderInvoice(bill *domain.Bill) (string, error) {
	return render("invoice.html", bill)
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}
