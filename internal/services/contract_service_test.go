package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"cotton-backend/internal/db"
	"cotton-backend/internal/models"
	"cotton-backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *ContractService {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.InitSchema(database))

	return NewContractService(
		repositories.NewContractRepository(database),
		repositories.NewDeliveryRepository(database),
		repositories.NewPaymentRepository(database),
		repositories.NewLedgerRepository(database),
		repositories.NewGinnerRepository(database),
		repositories.NewMillRepository(database),
	)
}

func TestApplyAmountRule(t *testing.T) {
	t.Run("recomputes when bales and price are positive", func(t *testing.T) {
		c := &models.Contract{TotalBales: 100, PricePerBatch: 7500.50, TotalAmount: 1}
		ApplyAmountRule(c)
		assert.InDelta(t, 750050, c.TotalAmount, 0.001)
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		c := &models.Contract{TotalBales: 3, PricePerBatch: 0.115}
		ApplyAmountRule(c)
		assert.InDelta(t, 0.35, c.TotalAmount, 1e-9)
	})

	t.Run("zero bales leaves amount untouched", func(t *testing.T) {
		c := &models.Contract{TotalBales: 0, PricePerBatch: 7500, TotalAmount: 42}
		ApplyAmountRule(c)
		assert.Equal(t, 42.0, c.TotalAmount)
	})

	t.Run("zero price leaves amount untouched", func(t *testing.T) {
		c := &models.Contract{TotalBales: 100, PricePerBatch: 0, TotalAmount: 42}
		ApplyAmountRule(c)
		assert.Equal(t, 42.0, c.TotalAmount)
	})

	t.Run("avoids float accumulation error", func(t *testing.T) {
		// 0.1 * 3 in float64 is 0.30000000000000004.
		c := &models.Contract{TotalBales: 3, PricePerBatch: 0.1}
		ApplyAmountRule(c)
		assert.Equal(t, 0.3, c.TotalAmount)
	})
}

func TestContractService_CreateAndUpdate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	c := &models.Contract{ContractID: "C1", GinnerID: "G1", MillID: "M1", TotalBales: 200, PricePerBatch: 8000}
	require.NoError(t, svc.Create(ctx, c))

	assert.False(t, c.DateCreated.IsZero(), "create should default the date")
	assert.InDelta(t, 1600000, c.TotalAmount, 0.001)

	got, err := svc.Get(ctx, "C1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.DateCreated.Equal(c.DateCreated))

	t.Run("update inherits original date", func(t *testing.T) {
		upd := &models.Contract{ContractID: "C1", GinnerID: "G1", MillID: "M1", TotalBales: 250, PricePerBatch: 8000}
		require.NoError(t, svc.Update(ctx, upd))

		got, err := svc.Get(ctx, "C1")
		require.NoError(t, err)
		assert.Equal(t, 250, got.TotalBales)
		assert.InDelta(t, 2000000, got.TotalAmount, 0.001)
		assert.True(t, got.DateCreated.Equal(c.DateCreated))
	})

	t.Run("updating a missing contract fails", func(t *testing.T) {
		err := svc.Update(ctx, &models.Contract{ContractID: "nope"})
		assert.Error(t, err)
	})
}

func TestContractService_DeleteCascade(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &models.Contract{ContractID: "C1", TotalBales: 10, PricePerBatch: 100}))
	require.NoError(t, svc.Create(ctx, &models.Contract{ContractID: "C2", TotalBales: 10, PricePerBatch: 100}))

	now := time.Now()
	require.NoError(t, svc.Deliveries.Create(ctx, &models.Delivery{DeliveryID: "D1", ContractID: "C1", TotalBales: 5, DeliveryDate: now}))
	require.NoError(t, svc.Deliveries.Create(ctx, &models.Delivery{DeliveryID: "D2", ContractID: "C2", TotalBales: 5, DeliveryDate: now}))
	require.NoError(t, svc.Payments.Create(ctx, &models.Payment{PaymentID: "P1", ContractID: "C1", AmountPaid: 500, Date: now}))
	require.NoError(t, svc.Ledger.Create(ctx, &models.LedgerEntry{ContractID: "C1", DealID: "deal-1", AmountPaid: 500, DatePaid: now}))

	require.NoError(t, svc.Delete(ctx, "C1"))

	got, err := svc.Get(ctx, "C1")
	require.NoError(t, err)
	assert.Nil(t, got)

	deliveries, err := svc.Deliveries.ListByContract(ctx, "C1")
	require.NoError(t, err)
	assert.Empty(t, deliveries)

	payments, err := svc.Payments.ListByContract(ctx, "C1")
	require.NoError(t, err)
	assert.Empty(t, payments)

	entries, err := svc.Ledger.ListByContract(ctx, "C1")
	require.NoError(t, err)
	assert.Empty(t, entries)

	// The sibling contract and its records survive.
	other, err := svc.Get(ctx, "C2")
	require.NoError(t, err)
	require.NotNil(t, other)

	otherDeliveries, err := svc.Deliveries.ListByContract(ctx, "C2")
	require.NoError(t, err)
	assert.Len(t, otherDeliveries, 1)
}

func TestContractService_Summary(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	t.Run("missing contract yields nil", func(t *testing.T) {
		s, err := svc.Summary(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("dangling party references are tolerated", func(t *testing.T) {
		require.NoError(t, svc.Create(ctx, &models.Contract{ContractID: "C1", GinnerID: "ghost", MillID: "ghost", TotalBales: 10, PricePerBatch: 100}))

		s, err := svc.Summary(ctx, "C1")
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Nil(t, s.Ginner)
		assert.Nil(t, s.Mill)
		assert.Equal(t, 10, s.RemainingBales)
	})
}
