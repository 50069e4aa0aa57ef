package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateWorkbook builds a spreadsheet with one sheet per entity, suitable
// for hand-off to an accountant or import into other tooling.
func (s *Service) GenerateWorkbook(ctx context.Context) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	type sheet struct {
		name   string
		header []interface{}
		rows   func() ([][]interface{}, error)
	}

	sheets := []sheet{
		{
			name:   "Ginners",
			header: []interface{}{"Ginner ID", "Name", "Contact", "IBAN", "Address", "NTN", "STN", "Bank Address", "Contact Person", "Station"},
			rows: func() ([][]interface{}, error) {
				ginners, err := s.Ginners.List(ctx)
				if err != nil {
					return nil, err
				}
				var rows [][]interface{}
				for _, g := range ginners {
					rows = append(rows, []interface{}{g.GinnerID, g.GinnerName, g.Contact, g.IBAN, g.Address, g.NTN, g.STN, g.BankAddress, g.ContactPerson, g.Station})
				}
				return rows, nil
			},
		},
		{
			name:   "Mills",
			header: []interface{}{"Mill ID", "Name", "Address", "Owner"},
			rows: func() ([][]interface{}, error) {
				mills, err := s.Mills.List(ctx)
				if err != nil {
					return nil, err
				}
				var rows [][]interface{}
				for _, m := range mills {
					rows = append(rows, []interface{}{m.MillID, m.MillName, m.Address, m.OwnerName})
				}
				return rows, nil
			},
		},
		{
			name:   "Contracts",
			header: []interface{}{"Contract ID", "Ginner ID", "Mill ID", "Total Bales", "Price/Batch", "Total Amount", "Commission %", "Date Created", "Delivery Notes", "Payment Notes"},
			rows: func() ([][]interface{}, error) {
				contracts, err := s.Contracts.List(ctx)
				if err != nil {
					return nil, err
				}
				var rows [][]interface{}
				for _, c := range contracts {
					rows = append(rows, []interface{}{c.ContractID, c.GinnerID, c.MillID, c.TotalBales, c.PricePerBatch, c.TotalAmount, c.CommissionPercentage, c.DateCreated.Format("02-Jan-2006"), c.DeliveryNotes, c.PaymentNotes})
				}
				return rows, nil
			},
		},
		{
			name:   "Deliveries",
			header: []interface{}{"Delivery ID", "Contract ID", "Amount", "Total Bales", "Factory Weight (kg)", "Mill Weight (kg)", "Truck Number", "Driver Contact", "Departure", "Delivered"},
			rows: func() ([][]interface{}, error) {
				deliveries, err := s.Deliveries.List(ctx)
				if err != nil {
					return nil, err
				}
				var rows [][]interface{}
				for _, d := range deliveries {
					rows = append(rows, []interface{}{d.DeliveryID, d.ContractID, d.Amount, d.TotalBales, d.FactoryWeight, d.MillWeight, d.TruckNumber, d.DriverContact, d.DepartureDate.Format("02-Jan-2006"), d.DeliveryDate.Format("02-Jan-2006")})
				}
				return rows, nil
			},
		},
		{
			name:   "Payments",
			header: []interface{}{"Payment ID", "Contract ID", "Total Amount", "Amount Paid", "Total Bales", "Date"},
			rows: func() ([][]interface{}, error) {
				payments, err := s.Payments.List(ctx)
				if err != nil {
					return nil, err
				}
				var rows [][]interface{}
				for _, p := range payments {
					rows = append(rows, []interface{}{p.PaymentID, p.ContractID, p.TotalAmount, p.AmountPaid, p.TotalBales, p.Date.Format("02-Jan-2006")})
				}
				return rows, nil
			},
		},
		{
			name:   "Ledger",
			header: []interface{}{"Contract ID", "Deal ID", "Amount Paid", "Date Paid", "Mills Due To"},
			rows: func() ([][]interface{}, error) {
				entries, err := s.Ledger.List(ctx)
				if err != nil {
					return nil, err
				}
				var rows [][]interface{}
				for _, e := range entries {
					rows = append(rows, []interface{}{e.ContractID, e.DealID, e.AmountPaid, e.DatePaid.Format("02-Jan-2006"), e.MillsDueTo})
				}
				return rows, nil
			},
		},
	}

	for _, sh := range sheets {
		if _, err := f.NewSheet(sh.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sh.name, err)
		}
		if err := f.SetSheetRow(sh.name, "A1", &sh.header); err != nil {
			return nil, err
		}
		rows, err := sh.rows()
		if err != nil {
			return nil, err
		}
		for i, row := range rows {
			cell := fmt.Sprintf("A%d", i+2)
			if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
				return nil, err
			}
		}
	}

	// Drop the default sheet excelize starts with.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportWorkbook writes the workbook to the exports directory and returns
// its path.
func (s *Service) ExportWorkbook(ctx context.Context) (string, error) {
	data, err := s.GenerateWorkbook(ctx)
	if err != nil {
		return "", err
	}
	return s.save(s.filename("records", "xlsx"), data)
}
