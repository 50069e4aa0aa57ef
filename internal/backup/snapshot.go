package backup

import (
	"bytes"
	"compress/flate"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"cotton-backend/internal/models"
)

// FormatVersion tags the snapshot layout. Bump when a field change would
// break older readers.
const FormatVersion = 1

// FileExt is the backup file extension.
const FileExt = ".cbk"

// Snapshot is the aggregate persisted to a backup file: a format version,
// provenance, and the full contents of every table.
type Snapshot struct {
	Version   int       `json:"version"`
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Device    string    `json:"device"`

	Ginners       []*models.Ginner      `json:"ginners"`
	Mills         []*models.Mill        `json:"mills"`
	Contracts     []*models.Contract    `json:"contracts"`
	Deliveries    []*models.Delivery    `json:"deliveries"`
	Payments      []*models.Payment     `json:"payments"`
	LedgerEntries []*models.LedgerEntry `json:"ledger_entries"`
}

// RecordCount is the total number of records across all collections.
func (s *Snapshot) RecordCount() int {
	return len(s.Ginners) + len(s.Mills) + len(s.Contracts) +
		len(s.Deliveries) + len(s.Payments) + len(s.LedgerEntries)
}

// encode serializes a snapshot: JSON, then flate compression, then the
// byte-wise obfuscation transform.
func encode(snap *Snapshot) ([]byte, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	var compressed bytes.Buffer
	fw, err := flate.NewWriter(&compressed, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(raw); err != nil {
		return nil, fmt.Errorf("failed to compress snapshot: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress snapshot: %w", err)
	}

	return obfuscate(compressed.Bytes()), nil
}

// decode reverses encode and validates the result. A corrupt or truncated
// file fails here, before anything touches the live store.
func decode(data []byte) (*Snapshot, error) {
	fr := flate.NewReader(bytes.NewReader(obfuscate(data)))
	defer fr.Close()

	raw, err := io.ReadAll(fr)
	if err != nil {
		return nil, fmt.Errorf("backup file is corrupt or not a backup: %w", err)
	}

	snap := &Snapshot{}
	if err := json.Unmarshal(raw, snap); err != nil {
		return nil, fmt.Errorf("backup content is not a valid snapshot: %w", err)
	}
	if snap.Version <= 0 || snap.Version > FormatVersion {
		return nil, fmt.Errorf("unsupported backup format version %d", snap.Version)
	}

	return snap, nil
}
