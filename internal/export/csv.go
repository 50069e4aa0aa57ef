package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"cotton-backend/internal/models"
)

// GenerateContractsCSV renders all contracts with resolved party names and
// fulfillment figures. encoding/csv handles quoting, so names containing
// commas survive a round trip through any spreadsheet tool.
func (s *Service) GenerateContractsCSV(ctx context.Context) ([]byte, error) {
	contracts, err := s.Contracts.List(ctx)
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
	deliveries, err := s.Deliveries.List(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.Payments.List(ctx)
	if err != nil {
		return nil, err
	}

	deliveredBales := make(map[string]int)
	for _, d := range deliveries {
		deliveredBales[d.ContractID] += d.TotalBales
	}
	paidAmount := make(map[string]float64)
	for _, p := range payments {
		paidAmount[p.ContractID] += p.AmountPaid
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{
		"#", "Contract ID", "Ginner", "Mill", "Date",
		"Total Bales", "Price/Batch", "Total Amount", "Commission %", "Commission",
		"Delivered Bales", "Paid", "Remaining",
	})

	for i, c := range contracts {
		w.Write([]string{
			fmt.Sprintf("%d", i+1),
			c.ContractID,
			ginnerNames[c.GinnerID],
			millNames[c.MillID],
			c.DateCreated.Format("02-Jan-2006"),
			fmt.Sprintf("%d", c.TotalBales),
			fmt.Sprintf("%.2f", c.PricePerBatch),
			fmt.Sprintf("%.2f", c.TotalAmount),
			fmt.Sprintf("%.2f", c.CommissionPercentage),
			fmt.Sprintf("%.2f", c.CommissionAmount()),
			fmt.Sprintf("%d", deliveredBales[c.ContractID]),
			fmt.Sprintf("%.2f", paidAmount[c.ContractID]),
			fmt.Sprintf("%.2f", c.TotalAmount-paidAmount[c.ContractID]),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportContractsCSV writes the contracts CSV to the exports directory and
// returns its path.
func (s *Service) ExportContractsCSV(ctx context.Context) (string, error) {
	data, err := s.GenerateContractsCSV(ctx)
	if err != nil {
		return "", err
	}
	return s.save(s.filename("contracts", "csv"), data)
}

// GenerateLedgerCSV renders the payment ledger for one ginner's contracts,
// or all entries when contractID is empty.
func (s *Service) GenerateLedgerCSV(ctx context.Context, contractID string) ([]byte, error) {
	var entries []*models.LedgerEntry
	var err error
	if contractID == "" {
		entries, err = s.Ledger.List(ctx)
	} else {
		entries, err = s.Ledger.ListByContract(ctx, contractID)
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Contract ID", "Deal ID", "Amount Paid", "Date Paid", "Mills Due To"})
	for _, e := range entries {
		w.Write([]string{
			e.ContractID,
			e.DealID,
			fmt.Sprintf("%.2f", e.AmountPaid),
			e.DatePaid.Format("02-Jan-2006"),
			e.MillsDueTo,
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
