package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazaadati/bidmaster-admin/internal/dashboard"
)

func sampleReport() dashboard.Report {
	return dashboard.Report{
		Period: "2026-08",
		Stats: dashboard.Stats{
			TotalUsers:     1200,
			ActiveAuctions: 34,
			PendingReviews: 5,
			OrdersToday:    18,
			RevenueToday:   2450.5,
			RevenueMonth:   60210.75,
			WalletVolume:   15000,
		},
		Sales: []dashboard.SalesPoint{
			{Date: "2026-08-01", Orders: 12, Revenue: 1800},
			{Date: "2026-08-02", Orders: 6, Revenue: 650.5},
		},
	}
}

func TestWriteReportCSV(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteReportCSV(buf, sampleReport()))

	reader := csv.NewReader(bytes.NewReader(buf.Bytes()))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Metric", "Value"}, records[0])
	assert.Contains(t, records, []string{"Total Users", "1200"})
	assert.Contains(t, records, []string{"Revenue Today", "2450.50"})
	assert.Contains(t, records, []string{"2026-08-02", "6", "650.50"})
}

func TestWriteReportCSVWithoutSales(t *testing.T) {
	rep := sampleReport()
	rep.Sales = nil

	buf := &bytes.Buffer{}
	require.NoError(t, WriteReportCSV(buf, rep))
	assert.NotContains(t, buf.String(), "Date,Orders,Revenue")
}

func TestBuildHTMLEscapesValues(t *testing.T) {
	rep := sampleReport()
	rep.Period = `<script>"x"</script>`
	html := buildHTML(rep)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.True(t, strings.HasPrefix(html, "<html>"))
}
