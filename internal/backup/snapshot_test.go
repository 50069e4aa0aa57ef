package backup

import (
	"testing"
	"time"

	"cotton-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObfuscateIsAnInvolution(t *testing.T) {
	data := []byte("the quick brown fox, twice masked, is itself again")
	assert.Equal(t, data, obfuscate(obfuscate(data)))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	created := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	snap := &Snapshot{
		Version:   FormatVersion,
		ID:        "snap-1",
		CreatedAt: created,
		Device:    "test/linux",
		Ginners:   []*models.Ginner{{GinnerID: "G1", GinnerName: "Ravi Cotton"}},
		Contracts: []*models.Contract{{ContractID: "C1", TotalBales: 100, TotalAmount: 750000, DateCreated: created}},
	}

	data, err := encode(snap)
	require.NoError(t, err)

	decoded, err := decode(data)
	require.NoError(t, err)

	assert.Equal(t, snap.ID, decoded.ID)
	assert.Equal(t, snap.Device, decoded.Device)
	require.Len(t, decoded.Ginners, 1)
	assert.Equal(t, "Ravi Cotton", decoded.Ginners[0].GinnerName)
	require.Len(t, decoded.Contracts, 1)
	assert.Equal(t, 750000.0, decoded.Contracts[0].TotalAmount)
	assert.True(t, decoded.Contracts[0].DateCreated.Equal(created))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := decode([]byte("definitely not a backup file"))
	assert.Error(t, err)
}

func TestDecodeRejectsTruncatedFile(t *testing.T) {
	snap := &Snapshot{Version: FormatVersion, ID: "snap-1", CreatedAt: time.Now()}
	data, err := encode(snap)
	require.NoError(t, err)

	_, err = decode(data[:len(data)/2])
	assert.Error(t, err)
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	snap := &Snapshot{Version: FormatVersion + 1, ID: "snap-1", CreatedAt: time.Now()}
	data, err := encode(snap)
	require.NoError(t, err)

	_, err = decode(data)
	assert.Error(t, err)
}

func TestRecordCount(t *testing.T) {
	snap := &Snapshot{
		Ginners:       []*models.Ginner{{GinnerID: "G1"}},
		Mills:         []*models.Mill{{MillID: "M1"}, {MillID: "M2"}},
		Contracts:     []*models.Contract{{ContractID: "C1"}},
		LedgerEntries: []*models.LedgerEntry{{ContractID: "C1", DealID: "d1"}},
	}
	assert.Equal(t, 5, snap.RecordCount())
}
