package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cotton-backend/internal/models"
)

type ContractRepository struct {
	DB *sql.DB
}

func NewContractRepository(db *sql.DB) *ContractRepository {
	return &ContractRepository{DB: db}
}

const contractColumns = `contract_id, ginner_id, mill_id, total_bales, price_per_batch,
	       total_amount, commission_percentage, date_created, delivery_notes, payment_notes`

func scanContract(row interface{ Scan(...interface{}) error }) (*models.Contract, error) {
	c := &models.Contract{}
	var dateCreated string
	err := row.Scan(
		&c.ContractID,
		&c.GinnerID,
		&c.MillID,
		&c.TotalBales,
		&c.PricePerBatch,
		&c.TotalAmount,
		&c.CommissionPercentage,
		&dateCreated,
		&c.DeliveryNotes,
		&c.PaymentNotes,
	)
	if err != nil {
		return nil, err
	}
	if c.DateCreated, err = parseTime(dateCreated); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ContractRepository) List(ctx context.Context) ([]*models.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts ORDER BY date_created DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	var contracts []*models.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}

	return contracts, rows.Err()
}

// GetByID returns (nil, nil) when no contract exists with the given ID.
func (r *ContractRepository) GetByID(ctx context.Context, id string) (*models.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE contract_id = ?`

	c, err := scanContract(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contract %s: %w", id, err)
	}
	return c, nil
}

func (r *ContractRepository) Create(ctx context.Context, c *models.Contract) error {
	query := `
		INSERT INTO contracts (contract_id, ginner_id, mill_id, total_bales, price_per_batch,
			total_amount, commission_percentage, date_created, delivery_notes, payment_notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.DB.ExecContext(ctx, query,
		c.ContractID,
		c.GinnerID,
		c.MillID,
		c.TotalBales,
		c.PricePerBatch,
		c.TotalAmount,
		c.CommissionPercentage,
		formatTime(c.DateCreated),
		c.DeliveryNotes,
		c.PaymentNotes,
	)
	if err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}
	return nil
}

// Update overwrites every field of the row keyed by ContractID.
func (r *ContractRepository) Update(ctx context.Context, c *models.Contract) error {
	query := `
		UPDATE contracts
		SET ginner_id = ?, mill_id = ?, total_bales = ?, price_per_batch = ?,
		    total_amount = ?, commission_percentage = ?, date_created = ?,
		    delivery_notes = ?, payment_notes = ?
		WHERE contract_id = ?
	`
	_, err := r.DB.ExecContext(ctx, query,
		c.GinnerID,
		c.MillID,
		c.TotalBales,
		c.PricePerBatch,
		c.TotalAmount,
		c.CommissionPercentage,
		formatTime(c.DateCreated),
		c.DeliveryNotes,
		c.PaymentNotes,
		c.ContractID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contract %s: %w", c.ContractID, err)
	}
	return nil
}

// DeleteCascade removes a contract and all of its child rows in one
// transaction. The database enforces no foreign keys, so the deletion order
// is an explicit policy: ledger entries, payments, deliveries, then the
// contract row itself.
func (r *ContractRepository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin cascade delete: %w", err)
	}
	defer tx.Rollback()

	steps := []string{
		`DELETE FROM ledger_entries WHERE contract_id = ?`,
		`DELETE FROM payments WHERE contract_id = ?`,
		`DELETE FROM deliveries WHERE contract_id = ?`,
		`DELETE FROM contracts WHERE contract_id = ?`,
	}
	for _, stmt := range steps {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("failed to cascade delete contract %s: %w", id, err)
		}
	}

	return tx.Commit()
}
