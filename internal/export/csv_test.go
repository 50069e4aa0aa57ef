package export

import (
	"context"
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cotton-backend/internal/db"
	"cotton-backend/internal/models"
	"cotton-backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.InitSchema(database))

	return NewService(
		t.TempDir(),
		repositories.NewGinnerRepository(database),
		repositories.NewMillRepository(database),
		repositories.NewContractRepository(database),
		repositories.NewDeliveryRepository(database),
		repositories.NewPaymentRepository(database),
		repositories.NewLedgerRepository(database),
	)
}

func seedExportStore(t *testing.T, s *Service) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.Ginners.Create(ctx, &models.Ginner{GinnerID: "G1", GinnerName: "Ravi Cotton, Multan"}))
	require.NoError(t, s.Mills.Create(ctx, &models.Mill{MillID: "M1", MillName: "Crescent Textile"}))
	require.NoError(t, s.Contracts.Create(ctx, &models.Contract{
		ContractID: "C1", GinnerID: "G1", MillID: "M1",
		TotalBales: 100, PricePerBatch: 7500, TotalAmount: 750000,
		CommissionPercentage: 2,
		DateCreated:          time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, s.Deliveries.Create(ctx, &models.Delivery{
		DeliveryID: "D1", ContractID: "C1", TotalBales: 40,
		MillWeight:   5950.25,
		DeliveryDate: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, s.Payments.Create(ctx, &models.Payment{
		PaymentID: "P1", ContractID: "C1", AmountPaid: 300000,
		Date: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
	}))
}

func TestGenerateContractsCSV(t *testing.T) {
	svc := newTestService(t)
	seedExportStore(t, svc)

	data, err := svc.GenerateContractsCSV(context.Background())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header := records[0]
	row := records[1]
	require.Equal(t, len(header), len(row))

	byColumn := map[string]string{}
	for i, h := range header {
		byColumn[h] = row[i]
	}

	assert.Equal(t, "C1", byColumn["Contract ID"])
	assert.Equal(t, "Ravi Cotton, Multan", byColumn["Ginner"], "comma in the name must survive quoting")
	assert.Equal(t, "Crescent Textile", byColumn["Mill"])
	assert.Equal(t, "40", byColumn["Delivered Bales"])
	assert.Equal(t, "300000.00", byColumn["Paid"])
	assert.Equal(t, "450000.00", byColumn["Remaining"])
	assert.Equal(t, "15000.00", byColumn["Commission"])
}

func TestGenerateLedgerCSV_FiltersByContract(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Ledger.Create(ctx, &models.LedgerEntry{ContractID: "C1", DealID: "d1", AmountPaid: 100, DatePaid: now}))
	require.NoError(t, svc.Ledger.Create(ctx, &models.LedgerEntry{ContractID: "C2", DealID: "d1", AmountPaid: 200, DatePaid: now}))

	data, err := svc.GenerateLedgerCSV(ctx, "C1")
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 2) // header + one entry

	data, err = svc.GenerateLedgerCSV(ctx, "")
	require.NoError(t, err)
	records, err = csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestExportContractsCSV_WritesTimestampedFile(t *testing.T) {
	svc := newTestService(t)
	seedExportStore(t, svc)

	path, err := svc.ExportContractsCSV(context.Background())
	require.NoError(t, err)

	assert.Equal(t, svc.Dir, filepath.Dir(path))
	name := filepath.Base(path)
	assert.Regexp(t, `^contracts_\d{8}_\d{6}\.csv$`, name)
	require.FileExists(t, path)
}

func TestGenerateSummaryHTML(t *testing.T) {
	svc := newTestService(t)
	seedExportStore(t, svc)

	data, err := svc.GenerateSummaryHTML(context.Background())
	require.NoError(t, err)

	html := string(data)
	assert.Contains(t, html, "Ravi Cotton, Multan")
	assert.Contains(t, html, "Crescent Textile")
	assert.Contains(t, html, "750000.00")
}

func TestGenerateContractStatementPDF(t *testing.T) {
	svc := newTestService(t)
	seedExportStore(t, svc)

	data, err := svc.GenerateContractStatementPDF(context.Background(), "C1", 7500)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"), "output should be a PDF document")

	_, err = svc.GenerateContractStatementPDF(context.Background(), "missing", 7500)
	assert.Error(t, err)
}

func TestBillableWeight(t *testing.T) {
	assert.Equal(t, 5950.25, billableWeight(5950.25, 6000, 40))
	assert.Equal(t, 6000.0, billableWeight(0, 6000, 40))
	assert.Equal(t, 6000.0, billableWeight(0, 0, 40)) // 40 bales at the assumed 150 kg
	assert.Equal(t, 0.0, billableWeight(0, 0, 0))
}
