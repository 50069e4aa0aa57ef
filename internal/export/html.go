package export

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"cotton-backend/internal/analytics"
	"cotton-backend/internal/models"
	"cotton-backend/internal/timeutil"
)

var summaryTemplate = template.Must(template.New("summary").Funcs(template.FuncMap{
	"add": func(a, b int) int { return a + b },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Cotton Brokerage Summary</title>
<style>
body { font-family: Arial, sans-serif; margin: 24px; color: #222; }
h1 { font-size: 20px; }
table { border-collapse: collapse; margin-top: 12px; }
th, td { border: 1px solid #999; padding: 4px 10px; font-size: 13px; }
th { background: #eee; }
.num { text-align: right; }
.meta { color: #666; font-size: 12px; }
</style>
</head>
<body>
<h1>Cotton Brokerage Summary</h1>
<p class="meta">Generated {{.GeneratedAt.Format "02-Jan-2006 03:04 PM"}}</p>

<table>
<tr><th>Contracts</th><td class="num">{{.Stats.ContractCount}}</td></tr>
<tr><th>Total Contract Amount</th><td class="num">Rs. {{printf "%.2f" .Stats.TotalContractAmount}}</td></tr>
<tr><th>Total Commission</th><td class="num">Rs. {{printf "%.2f" .Stats.TotalCommission}}</td></tr>
<tr><th>Total Paid</th><td class="num">Rs. {{printf "%.2f" .Stats.TotalPaid}}</td></tr>
<tr><th>Total Due</th><td class="num">Rs. {{printf "%.2f" .Stats.TotalDue}}</td></tr>
<tr><th>Bales Contracted</th><td class="num">{{.Stats.TotalBalesContracted}}</td></tr>
<tr><th>Bales Delivered</th><td class="num">{{.Stats.TotalBalesSold}}</td></tr>
<tr><th>Average Commission Rate</th><td class="num">{{printf "%.2f" .Stats.AverageCommissionRate}}%</td></tr>
</table>

<h1>Contracts</h1>
<table>
<tr>
<th>#</th><th>Contract</th><th>Ginner</th><th>Mill</th><th>Date</th>
<th>Bales</th><th>Amount</th><th>Commission</th>
</tr>
{{range $i, $c := .Contracts}}
<tr>
<td class="num">{{add $i 1}}</td>
<td>{{$c.ContractID}}</td>
<td>{{index $.GinnerNames $c.GinnerID}}</td>
<td>{{index $.MillNames $c.MillID}}</td>
<td>{{$c.DateCreated.Format "02-Jan-2006"}}</td>
<td class="num">{{$c.TotalBales}}</td>
<td class="num">Rs. {{printf "%.2f" $c.TotalAmount}}</td>
<td class="num">Rs. {{printf "%.2f" $c.CommissionAmount}}</td>
</tr>
{{end}}
</table>
</body>
</html>
`))

type summaryPage struct {
	GeneratedAt time.Time
	Stats       analytics.DashboardStats
	Contracts   []*models.Contract
	GinnerNames map[string]string
	MillNames   map[string]string
}

// GenerateSummaryHTML renders the dashboard figures and contract list as a
// standalone HTML page.
func (s *Service) GenerateSummaryHTML(ctx context.Context) ([]byte, error) {
	contracts, err := s.Contracts.List(ctx)
	if err != nil {
		return nil, err
	}
	deliveries, err := s.Deliveries.List(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.Payments.List(ctx)
	if err != nil {
		return nil, err
	}
	ginnerNames, err := s.ginnerNames(ctx)
	if err != nil {
		return nil, err
	}
	millNames, err := s.millNames(ctx)
	if err != nil {
		return nil, err
	}

	page := summaryPage{
		GeneratedAt: timeutil.Now(),
		Stats:       analytics.ComputeDashboard(contracts, deliveries, payments),
		Contracts:   contracts,
		GinnerNames: ginnerNames,
		MillNames:   millNames,
	}

	var buf bytes.Buffer
	if err := summaryTemplate.Execute(&buf, page); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportSummaryHTML writes the HTML summary to the exports directory and
// returns its path.
func (s *Service) ExportSummaryHTML(ctx context.Context) (string, error) {
	data, err := s.GenerateSummaryHTML(ctx)
	if err != nil {
		return "", err
	}
	return s.save(s.filename("summary", "html"), data)
}
