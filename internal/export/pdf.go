package export

import (
	"bytes"
	"context"
	"fmt"

	"cotton-backend/internal/analytics"
	"cotton-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// billableWeight picks the weight a delivery is settled on: the mill-side
// weighbridge figure when recorded, the factory figure otherwise, and the
// assumed bale weight as a last resort.
func billableWeight(millWeight, factoryWeight float64, bales int) float64 {
	if millWeight > 0 {
		return millWeight
	}
	if factoryWeight > 0 {
		return factoryWeight
	}
	return analytics.KgFromBales(bales)
}

// GenerateContractStatementPDF builds a statement for one contract: party
// details, the delivery table with maund conversion at the given rate, the
// payment history and the outstanding balance.
func (s *Service) GenerateContractStatementPDF(ctx context.Context, contractID string, ratePerMaund float64) ([]byte, error) {
	contract, err := s.Contracts.GetByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, fmt.Errorf("contract %s not found", contractID)
	}
	ginner, err := s.Ginners.GetByID(ctx, contract.GinnerID)
	if err != nil {
		return nil, err
	}
	mill, err := s.Mills.GetByID(ctx, contract.MillID)
	if err != nil {
		return nil, err
	}
	deliveries, err := s.Deliveries.ListByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	payments, err := s.Payments.ListByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}

	summary := analytics.BuildContractSummary(contract, ginner, mill, deliveries, payments)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Cotton Brokerage - Contract Statement", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Contract Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Contract Information", "1", 1, "L", true, 0, "")

	ginnerName := "(unknown ginner)"
	if ginner != nil {
		ginnerName = ginner.GinnerName
	}
	millName := "(unknown mill)"
	if mill != nil {
		millName = mill.MillName
	}

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Contract: %s", contract.ContractID), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", contract.DateCreated.Format("02-Jan-2006")), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Ginner: %s", ginnerName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Mill: %s", millName), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Total Bales: %d", contract.TotalBales), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Total Amount: Rs. %.2f", contract.TotalAmount), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Delivery table with maund conversion
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, fmt.Sprintf("Deliveries (rate Rs. %.2f per maund)", ratePerMaund), "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(32, 7, "Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Bales", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Weight (kg)", "1", 0, "C", true, 0, "")
	pdf.CellFormat(28, 7, "Maunds", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Truck", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	var totalMaunds, totalWeightAmount float64
	for _, d := range deliveries {
		weight := billableWeight(d.MillWeight, d.FactoryWeight, d.TotalBales)
		maunds := analytics.MaundsFromKg(weight)
		amount := analytics.AmountForWeight(weight, ratePerMaund)
		totalMaunds += maunds
		totalWeightAmount += amount

		pdf.CellFormat(32, 6, d.DeliveryDate.Format("02-Jan-2006"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", d.TotalBales), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.1f", weight), "1", 0, "R", false, 0, "")
		pdf.CellFormat(28, 6, fmt.Sprintf("%.2f", maunds), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("Rs. %.2f", amount), "1", 0, "R", false, 0, "")
		truck := d.TruckNumber
		if len(truck) > 18 {
			truck = truck[:15] + "..."
		}
		pdf.CellFormat(40, 6, truck, "1", 1, "L", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(52, 7, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("%d bales", summary.DeliveredBales), "1", 0, "R", false, 0, "")
	pdf.CellFormat(28, 7, fmt.Sprintf("%.2f", totalMaunds), "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("Rs. %.2f", totalWeightAmount), "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "", "1", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Payment History
	if len(payments) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(190, 8, "Payment History", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(63, 7, "Payment ID", "1", 0, "C", true, 0, "")
		pdf.CellFormat(63, 7, "Date", "1", 0, "C", true, 0, "")
		pdf.CellFormat(64, 7, "Amount", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, p := range payments {
			pdf.CellFormat(63, 6, p.PaymentID, "1", 0, "C", false, 0, "")
			pdf.CellFormat(63, 6, p.Date.Format("02-Jan-2006"), "1", 0, "C", false, 0, "")
			pdf.CellFormat(64, 6, fmt.Sprintf("Rs. %.2f", p.AmountPaid), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(5)
	}

	// Financial Summary
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, "Financial Summary", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(63, 8, fmt.Sprintf("Total Paid: Rs. %.2f", summary.PaidAmount), "1", 0, "C", false, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Commission: Rs. %.2f", summary.CommissionAmount), "1", 0, "C", false, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Remaining Bales: %d", summary.RemainingBales), "1", 1, "C", false, 0, "")

	if summary.RemainingAmount > 0 {
		pdf.SetFillColor(255, 200, 200)
	} else {
		pdf.SetFillColor(200, 255, 200)
	}
	pdf.SetFont("Arial", "B", 14)
	balanceText := fmt.Sprintf("Balance Due: Rs. %.2f", summary.RemainingAmount)
	if summary.RemainingAmount <= 0 {
		balanceText = "FULLY PAID"
	}
	pdf.CellFormat(190, 10, balanceText, "1", 1, "C", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportContractStatementPDF writes a contract statement to the exports
// directory and returns its path.
func (s *Service) ExportContractStatementPDF(ctx context.Context, contractID string, ratePerMaund float64) (string, error) {
	data, err := s.GenerateContractStatementPDF(ctx, contractID, ratePerMaund)
	if err != nil {
		return "", err
	}
	return s.save(s.filename("statement_"+contractID, "pdf"), data)
}
