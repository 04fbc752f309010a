package export

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mazaadati/bidmaster-admin/internal/dashboard"
	"github.com/mazaadati/bidmaster-admin/report"
)

// PDFExporter renders dashboard reports through Gotenberg.
type PDFExporter struct {
	Client *report.Client
}

// RenderReport builds the report HTML and converts it to PDF bytes.
func (p *PDFExporter) RenderReport(ctx context.Context, rep dashboard.Report) ([]byte, error) {
	if p == nil || p.Client == nil {
		return nil, fmt.Errorf("pdf exporter not initialised")
	}
	return p.Client.RenderHTML(ctx, buildHTML(rep))
}

func buildHTML(rep dashboard.Report) string {
	var b strings.Builder
	b.WriteString("<html><head><meta charset=\"utf-8\"><style>")
	b.WriteString("body{font-family:sans-serif;margin:24px;}h1{font-size:20px;}table{width:100%;border-collapse:collapse;margin-bottom:16px;}th,td{border:1px solid #ddd;padding:6px;text-align:right;}th{text-align:left;background:#f5f5f5;}section{margin-bottom:24px;} .metric-label{text-align:left;}")
	b.WriteString("</style></head><body>")
	b.WriteString("<h1>BidMaster Dashboard Report")
	if rep.Period != "" {
		b.WriteString(" (" + htmlEscape(rep.Period) + ")")
	}
	b.WriteString("</h1>")

	b.WriteString("<section><h2>Overview</h2><table><tbody>")
	writeCountRow(&b, "Total Users", rep.Stats.TotalUsers)
	writeCountRow(&b, "Active Auctions", rep.Stats.ActiveAuctions)
	writeCountRow(&b, "Pending Reviews", rep.Stats.PendingReviews)
	writeCountRow(&b, "Orders Today", rep.Stats.OrdersToday)
	writeAmountRow(&b, "Revenue Today", rep.Stats.RevenueToday)
	writeAmountRow(&b, "Revenue This Month", rep.Stats.RevenueMonth)
	writeAmountRow(&b, "Wallet Volume", rep.Stats.WalletVolume)
	b.WriteString("</tbody></table></section>")

	if len(rep.Sales) > 0 {
		b.WriteString("<section><h2>Sales Trend</h2><table><thead><tr><th>Date</th><th>Orders</th><th>Revenue</th></tr></thead><tbody>")
		for _, point := range rep.Sales {
			b.WriteString("<tr><td class=\"metric-label\">")
			b.WriteString(htmlEscape(point.Date))
			b.WriteString("</td><td>")
			b.WriteString(strconv.Itoa(point.Orders))
			b.WriteString("</td><td>")
			b.WriteString(formatFloat(point.Revenue))
			b.WriteString("</td></tr>")
		}
		b.WriteString("</tbody></table></section>")
	}

	b.WriteString("</body></html>")
	return b.String()
}

func writeCountRow(b *strings.Builder, label string, value int) {
	b.WriteString("<tr><td class=\"metric-label\">")
	b.WriteString(htmlEscape(label))
	b.WriteString("</td><td>")
	b.WriteString(strconv.Itoa(value))
	b.WriteString("</td></tr>")
}

func writeAmountRow(b *strings.Builder, label string, value float64) {
	b.WriteString("<tr><td class=\"metric-label\">")
	b.WriteString(htmlEscape(label))
	b.WriteString("</td><td>")
	b.WriteString(formatFloat(value))
	b.WriteString("</td></tr>")
}

func htmlEscape(v string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(v)
}
