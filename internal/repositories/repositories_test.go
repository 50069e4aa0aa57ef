package repositories

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"cotton-backend/internal/db"
	"cotton-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.InitSchema(database))
	return database
}

func TestGinnerRepository_CRUD(t *testing.T) {
	repo := NewGinnerRepository(newTestDB(t))
	ctx := context.Background()

	t.Run("missing ginner yields nil, not an error", func(t *testing.T) {
		g, err := repo.GetByID(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, g)
	})

	g := &models.Ginner{
		GinnerID:   "G1",
		GinnerName: "Ravi Cotton, Multan",
		Contact:    "0300-1234567",
		IBAN:       "PK36SCBL0000001123456702",
		NTN:        "1234567-8",
		Station:    "Multan",
	}
	require.NoError(t, repo.Create(ctx, g))

	got, err := repo.GetByID(ctx, "G1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, g, got)

	g.Contact = "0301-9999999"
	require.NoError(t, repo.Update(ctx, g))
	got, err = repo.GetByID(ctx, "G1")
	require.NoError(t, err)
	assert.Equal(t, "0301-9999999", got.Contact)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, "G1"))
	got, err = repo.GetByID(ctx, "G1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeliveryRepository_DatesRoundTrip(t *testing.T) {
	repo := NewDeliveryRepository(newTestDB(t))
	ctx := context.Background()

	departure := time.Date(2026, 2, 3, 8, 15, 30, 123456789, time.UTC)
	delivery := time.Date(2026, 2, 4, 18, 45, 0, 0, time.UTC)

	d := &models.Delivery{
		DeliveryID:    "D1",
		ContractID:    "C1",
		TotalBales:    40,
		FactoryWeight: 6000.5,
		MillWeight:    5950.25,
		TruckNumber:   "LES-1234",
		DepartureDate: departure,
		DeliveryDate:  delivery,
	}
	require.NoError(t, repo.Create(ctx, d))

	got, err := repo.GetByID(ctx, "D1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.DepartureDate.Equal(departure), "nanosecond precision must survive storage")
	assert.True(t, got.DeliveryDate.Equal(delivery))
	assert.Equal(t, 5950.25, got.MillWeight)
}

func TestDeliveryRepository_ListByContract(t *testing.T) {
	repo := NewDeliveryRepository(newTestDB(t))
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.Create(ctx, &models.Delivery{DeliveryID: "D1", ContractID: "C1", DeliveryDate: now}))
	require.NoError(t, repo.Create(ctx, &models.Delivery{DeliveryID: "D2", ContractID: "C1", DeliveryDate: now}))
	require.NoError(t, repo.Create(ctx, &models.Delivery{DeliveryID: "D3", ContractID: "C2", DeliveryDate: now}))

	got, err := repo.ListByContract(ctx, "C1")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestLedgerRepository_CompositeKey(t *testing.T) {
	repo := NewLedgerRepository(newTestDB(t))
	ctx := context.Background()

	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &models.LedgerEntry{ContractID: "C1", DealID: "deal-1", AmountPaid: 100, DatePaid: now}))
	require.NoError(t, repo.Create(ctx, &models.LedgerEntry{ContractID: "C1", DealID: "deal-2", AmountPaid: 200, DatePaid: now}))

	t.Run("both key parts are required to match", func(t *testing.T) {
		e, err := repo.Get(ctx, "C1", "deal-2")
		require.NoError(t, err)
		require.NotNil(t, e)
		assert.Equal(t, 200.0, e.AmountPaid)

		e, err = repo.Get(ctx, "C2", "deal-1")
		require.NoError(t, err)
		assert.Nil(t, e)
	})

	t.Run("delete removes a single entry", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "C1", "deal-1"))

		e, err := repo.Get(ctx, "C1", "deal-1")
		require.NoError(t, err)
		assert.Nil(t, e)

		remaining, err := repo.ListByContract(ctx, "C1")
		require.NoError(t, err)
		assert.Len(t, remaining, 1)
	})
}

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	u := &models.User{
		Name:         "Asif",
		Email:        "asif@example.com",
		PasswordHash: "$2a$10$notarealhash",
		Role:         "broker",
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID, "create should populate the generated id")

	byEmail, err := repo.GetByEmail(ctx, "asif@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, u.ID, byEmail.ID)

	missing, err := repo.GetByEmail(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.SetActive(ctx, u.ID, false))
	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, byID.IsActive)
}

func TestTimeColumnHelpers(t *testing.T) {
	t.Run("zero time stores as empty string", func(t *testing.T) {
		assert.Equal(t, "", formatTime(time.Time{}))

		parsed, err := parseTime("")
		require.NoError(t, err)
		assert.True(t, parsed.IsZero())
	})

	t.Run("round trip preserves the instant", func(t *testing.T) {
		orig := time.Date(2026, 7, 9, 23, 59, 59, 999999999, time.FixedZone("PKT", 5*3600))
		parsed, err := parseTime(formatTime(orig))
		require.NoError(t, err)
		assert.True(t, parsed.Equal(orig))
	})

	t.Run("garbage fails", func(t *testing.T) {
		_, err := parseTime("not-a-date")
		assert.Error(t, err)
	})
}
