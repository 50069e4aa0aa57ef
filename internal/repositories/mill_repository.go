package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cotton-backend/internal/models"
)

type MillRepository struct {
	DB *sql.DB
}

func NewMillRepository(db *sql.DB) *MillRepository {
	return &MillRepository{DB: db}
}

func scanMill(row interface{ Scan(...interface{}) error }) (*models.Mill, error) {
	m := &models.Mill{}
	if err := row.Scan(&m.MillID, &m.MillName, &m.Address, &m.OwnerName); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MillRepository) List(ctx context.Context) ([]*models.Mill, error) {
	query := `SELECT mill_id, mill_name, address, owner_name FROM mills ORDER BY mill_name`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list mills: %w", err)
	}
	defer rows.Close()

	var mills []*models.Mill
	for rows.Next() {
		m, err := scanMill(rows)
		if err != nil {
			return nil, err
		}
		mills = append(mills, m)
	}

	return mills, rows.Err()
}

// GetByID returns (nil, nil) when no mill exists with the given ID.
func (r *MillRepository) GetByID(ctx context.Context, id string) (*models.Mill, error) {
	query := `SELECT mill_id, mill_name, address, owner_name FROM mills WHERE mill_id = ?`

	m, err := scanMill(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mill %s: %w", id, err)
	}
	return m, nil
}

func (r *MillRepository) Create(ctx context.Context, m *models.Mill) error {
	query := `INSERT INTO mills (mill_id, mill_name, address, owner_name) VALUES (?, ?, ?, ?)`
	_, err := r.DB.ExecContext(ctx, query, m.MillID, m.MillName, m.Address, m.OwnerName)
	if err != nil {
		return fmt.Errorf("failed to create mill: %w", err)
	}
	return nil
}

func (r *MillRepository) Update(ctx context.Context, m *models.Mill) error {
	query := `UPDATE mills SET mill_name = ?, address = ?, owner_name = ? WHERE mill_id = ?`
	_, err := r.DB.ExecContext(ctx, query, m.MillName, m.Address, m.OwnerName, m.MillID)
	if err != nil {
		return fmt.Errorf("failed to update mill %s: %w", m.MillID, err)
	}
	return nil
}

func (r *MillRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM mills WHERE mill_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete mill %s: %w", id, err)
	}
	return nil
}
