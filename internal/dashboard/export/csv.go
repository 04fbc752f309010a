// Package export serialises dashboard reports to CSV and PDF.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/mazaadati/bidmaster-admin/internal/dashboard"
)

// WriteReportCSV serialises the dashboard snapshot and sales trend to CSV.
func WriteReportCSV(w io.Writer, report dashboard.Report) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Metric", "Value"}); err != nil {
		return err
	}
	records := [][]string{
		{"Period", report.Period},
		{"Total Users", strconv.Itoa(report.Stats.TotalUsers)},
		{"Active Auctions", strconv.Itoa(report.Stats.ActiveAuctions)},
		{"Pending Reviews", strconv.Itoa(report.Stats.PendingReviews)},
		{"Orders Today", strconv.Itoa(report.Stats.OrdersToday)},
		{"Revenue Today", formatFloat(report.Stats.RevenueToday)},
		{"Revenue This Month", formatFloat(report.Stats.RevenueMonth)},
		{"Wallet Volume", formatFloat(report.Stats.WalletVolume)},
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	if len(report.Sales) > 0 {
		if err := writer.Write([]string{}); err != nil {
			return err
		}
		if err := writer.Write([]string{"Date", "Orders", "Revenue"}); err != nil {
			return err
		}
		for _, point := range report.Sales {
			if err := writer.Write([]string{
				point.Date,
				strconv.Itoa(point.Orders),
				formatFloat(point.Revenue),
			}); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
