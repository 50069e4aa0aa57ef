package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cotton-backend/internal/models"
)

// LedgerRepository stores per-deal amounts owed to ginners by mills.
// Rows are keyed by the composite (contract_id, deal_id).
type LedgerRepository struct {
	DB *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{DB: db}
}

const ledgerColumns = `contract_id, deal_id, amount_paid, date_paid, mills_due_to`

func scanLedgerEntry(row interface{ Scan(...interface{}) error }) (*models.LedgerEntry, error) {
	e := &models.LedgerEntry{}
	var datePaid string
	err := row.Scan(&e.ContractID, &e.DealID, &e.AmountPaid, &datePaid, &e.MillsDueTo)
	if err != nil {
		return nil, err
	}
	if e.DatePaid, err = parseTime(datePaid); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *LedgerRepository) List(ctx context.Context) ([]*models.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries ORDER BY date_paid DESC`
	return r.queryEntries(ctx, query)
}

func (r *LedgerRepository) ListByContract(ctx context.Context, contractID string) ([]*models.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE contract_id = ? ORDER BY date_paid DESC`
	return r.queryEntries(ctx, query, contractID)
}

func (r *LedgerRepository) queryEntries(ctx context.Context, query string, args ...interface{}) ([]*models.LedgerEntry, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.LedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Get returns (nil, nil) when no entry exists for the composite key.
func (r *LedgerRepository) Get(ctx context.Context, contractID, dealID string) (*models.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE contract_id = ? AND deal_id = ?`

	e, err := scanLedgerEntry(r.DB.QueryRowContext(ctx, query, contractID, dealID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entry %s/%s: %w", contractID, dealID, err)
	}
	return e, nil
}

func (r *LedgerRepository) Create(ctx context.Context, e *models.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (contract_id, deal_id, amount_paid, date_paid, mills_due_to)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.DB.ExecContext(ctx, query,
		e.ContractID,
		e.DealID,
		e.AmountPaid,
		formatTime(e.DatePaid),
		e.MillsDueTo,
	)
	if err != nil {
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}
	return nil
}

func (r *LedgerRepository) Update(ctx context.Context, e *models.LedgerEntry) error {
	query := `
		UPDATE ledger_entries
		SET amount_paid = ?, date_paid = ?, mills_due_to = ?
		WHERE contract_id = ? AND deal_id = ?
	`
	_, err := r.DB.ExecContext(ctx, query,
		e.AmountPaid,
		formatTime(e.DatePaid),
		e.MillsDueTo,
		e.ContractID,
		e.DealID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger entry %s/%s: %w", e.ContractID, e.DealID, err)
	}
	return nil
}

func (r *LedgerRepository) Delete(ctx context.Context, contractID, dealID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM ledger_entries WHERE contract_id = ? AND deal_id = ?`, contractID, dealID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger entry %s/%s: %w", contractID, dealID, err)
	}
	return nil
}
