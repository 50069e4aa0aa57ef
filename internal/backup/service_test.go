package backup

import (
	"context"
	"os"
	"path/filepath"
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
		t.TempDir(), 10,
		repositories.NewGinnerRepository(database),
		repositories.NewMillRepository(database),
		repositories.NewContractRepository(database),
		repositories.NewDeliveryRepository(database),
		repositories.NewPaymentRepository(database),
		repositories.NewLedgerRepository(database),
	)
}

func seedStore(t *testing.T, s *Service) {
	t.Helper()
	ctx := context.Background()

	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.Ginners.Create(ctx, &models.Ginner{GinnerID: "G1", GinnerName: "Ravi Cotton, Multan"}))
	require.NoError(t, s.Mills.Create(ctx, &models.Mill{MillID: "M1", MillName: "Crescent Textile"}))
	require.NoError(t, s.Contracts.Create(ctx, &models.Contract{
		ContractID: "C1", GinnerID: "G1", MillID: "M1",
		TotalBales: 100, PricePerBatch: 7500, TotalAmount: 750000,
		CommissionPercentage: 2, DateCreated: created,
	}))
	require.NoError(t, s.Deliveries.Create(ctx, &models.Delivery{
		DeliveryID: "D1", ContractID: "C1", TotalBales: 40,
		FactoryWeight: 6000, MillWeight: 5950,
		DeliveryDate: created.AddDate(0, 0, 5),
	}))
	require.NoError(t, s.Payments.Create(ctx, &models.Payment{
		PaymentID: "P1", ContractID: "C1", AmountPaid: 300000,
		Date: created.AddDate(0, 0, 10),
	}))
	require.NoError(t, s.Ledger.Create(ctx, &models.LedgerEntry{
		ContractID: "C1", DealID: "deal-1", AmountPaid: 300000,
		DatePaid: created.AddDate(0, 0, 10),
	}))
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	src := newTestService(t)
	seedStore(t, src)

	result := src.Backup(ctx, Options{})
	require.True(t, result.Success, result.Message)
	assert.Equal(t, 6, result.Records)
	require.FileExists(t, result.Path)

	// Restore into a completely fresh store.
	dst := newTestService(t)
	restored := dst.Restore(ctx, result.Path)
	require.True(t, restored.Success, restored.Message)
	assert.Equal(t, 6, restored.Inserted)

	contract, err := dst.Contracts.GetByID(ctx, "C1")
	require.NoError(t, err)
	require.NotNil(t, contract)
	assert.Equal(t, 750000.0, contract.TotalAmount)
	assert.True(t, contract.DateCreated.Equal(time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)),
		"dates must round-trip exactly")

	ginner, err := dst.Ginners.GetByID(ctx, "G1")
	require.NoError(t, err)
	require.NotNil(t, ginner)
	assert.Equal(t, "Ravi Cotton, Multan", ginner.GinnerName)

	entry, err := dst.Ledger.Get(ctx, "C1", "deal-1")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 300000.0, entry.AmountPaid)
}

func TestRestoreIsIdempotent(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(t)
	seedStore(t, svc)

	result := svc.Backup(ctx, Options{})
	require.True(t, result.Success)

	// Restoring into the store the backup came from inserts nothing.
	restored := svc.Restore(ctx, result.Path)
	require.True(t, restored.Success, restored.Message)
	assert.Equal(t, 0, restored.Inserted)

	contracts, err := svc.Contracts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, contracts, 1)
}

func TestRestoreMergesOnlyMissingRecords(t *testing.T) {
	ctx := context.Background()

	src := newTestService(t)
	seedStore(t, src)
	result := src.Backup(ctx, Options{})
	require.True(t, result.Success)

	dst := newTestService(t)
	// Pre-existing record with the same key but different content wins.
	require.NoError(t, dst.Ginners.Create(ctx, &models.Ginner{GinnerID: "G1", GinnerName: "Renamed Locally"}))

	restored := dst.Restore(ctx, result.Path)
	require.True(t, restored.Success)
	assert.Equal(t, 5, restored.Inserted)

	ginner, err := dst.Ginners.GetByID(ctx, "G1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed Locally", ginner.GinnerName, "restore must not overwrite existing records")
}

func TestRestoreRejectsCorruptFileWithoutTouchingStore(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(t)
	seedStore(t, svc)

	path := filepath.Join(svc.Dir, "bogus"+FileExt)
	require.NoError(t, os.MkdirAll(svc.Dir, 0755))
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))

	restored := svc.Restore(ctx, path)
	assert.False(t, restored.Success)
	assert.Equal(t, 0, restored.Inserted)

	contracts, err := svc.Contracts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, contracts, 1)
}

func TestRestoreWritesSafetyBackupFirst(t *testing.T) {
	ctx := context.Background()

	src := newTestService(t)
	seedStore(t, src)
	result := src.Backup(ctx, Options{})
	require.True(t, result.Success)

	dst := newTestService(t)
	restored := dst.Restore(ctx, result.Path)
	require.True(t, restored.Success)

	matches, err := filepath.Glob(filepath.Join(dst.Dir, "cotton_prerestore_*"+FileExt))
	require.NoError(t, err)
	assert.NotEmpty(t, matches, "restore must leave a pre-restore safety backup")
}

func TestIncrementalBackupFiltersByDate(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(t)
	seedStore(t, svc)

	// Seed dates are all in early Feb 2026; cut after them.
	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Contracts.Create(ctx, &models.Contract{
		ContractID: "C2", GinnerID: "G1", MillID: "M1",
		TotalBales: 50, PricePerBatch: 8000, TotalAmount: 400000,
		DateCreated: since.AddDate(0, 0, 3),
	}))

	result := svc.Backup(ctx, Options{Since: since})
	require.True(t, result.Success, result.Message)

	data, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	snap, err := decode(data)
	require.NoError(t, err)

	// Masters come along in full; transactional records are filtered.
	assert.Len(t, snap.Ginners, 1)
	assert.Len(t, snap.Mills, 1)
	require.Len(t, snap.Contracts, 1)
	assert.Equal(t, "C2", snap.Contracts[0].ContractID)
	assert.Empty(t, snap.Deliveries)
	assert.Empty(t, snap.Payments)
	assert.Empty(t, snap.LedgerEntries)
}

func TestPruneKeepsNewestN(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(t)
	svc.Retention = 3
	seedStore(t, svc)

	require.NoError(t, os.MkdirAll(svc.Dir, 0755))
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		stamp := time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.UTC).Format("20060102_150405")
		path := filepath.Join(svc.Dir, "cotton_backup_"+stamp+FileExt)
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))
		require.NoError(t, os.Chtimes(path, base.Add(time.Duration(i)*time.Minute), base.Add(time.Duration(i)*time.Minute)))
	}

	result := svc.Backup(ctx, Options{})
	require.True(t, result.Success)

	infos, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, infos, 3)
	assert.Equal(t, filepath.Base(result.Path), infos[0].Name, "the fresh backup survives pruning")
}

func TestIncrementalBackupSkipsPrune(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(t)
	svc.Retention = 1
	seedStore(t, svc)

	full := svc.Backup(ctx, Options{})
	require.True(t, full.Success)

	inc := svc.Backup(ctx, Options{Since: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)})
	require.True(t, inc.Success)

	infos, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, infos, 2, "incremental backups neither prune nor get pruned")
}
