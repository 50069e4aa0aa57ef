package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cotton-backend/internal/models"
)

type GinnerRepository struct {
	DB *sql.DB
}

func NewGinnerRepository(db *sql.DB) *GinnerRepository {
	return &GinnerRepository{DB: db}
}

const ginnerColumns = `ginner_id, ginner_name, contact, iban, address, ntn, stn,
	       bank_address, contact_person, station`

func scanGinner(row interface{ Scan(...interface{}) error }) (*models.Ginner, error) {
	g := &models.Ginner{}
	err := row.Scan(
		&g.GinnerID,
		&g.GinnerName,
		&g.Contact,
		&g.IBAN,
		&g.Address,
		&g.NTN,
		&g.STN,
		&g.BankAddress,
		&g.ContactPerson,
		&g.Station,
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *GinnerRepository) List(ctx context.Context) ([]*models.Ginner, error) {
	query := `SELECT ` + ginnerColumns + ` FROM ginners ORDER BY ginner_name`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list ginners: %w", err)
	}
	defer rows.Close()

	var ginners []*models.Ginner
	for rows.Next() {
		g, err := scanGinner(rows)
		if err != nil {
			return nil, err
		}
		ginners = append(ginners, g)
	}

	return ginners, rows.Err()
}

// GetByID returns (nil, nil) when no ginner exists with the given ID.
func (r *GinnerRepository) GetByID(ctx context.Context, id string) (*models.Ginner, error) {
	query := `SELECT ` + ginnerColumns + ` FROM ginners WHERE ginner_id = ?`

	g, err := scanGinner(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ginner %s: %w", id, err)
	}
	return g, nil
}

func (r *GinnerRepository) Create(ctx context.Context, g *models.Ginner) error {
	query := `
		INSERT INTO ginners (ginner_id, ginner_name, contact, iban, address, ntn, stn,
			bank_address, contact_person, station)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.DB.ExecContext(ctx, query,
		g.GinnerID,
		g.GinnerName,
		g.Contact,
		g.IBAN,
		g.Address,
		g.NTN,
		g.STN,
		g.BankAddress,
		g.ContactPerson,
		g.Station,
	)
	if err != nil {
		return fmt.Errorf("failed to create ginner: %w", err)
	}
	return nil
}

func (r *GinnerRepository) Update(ctx context.Context, g *models.Ginner) error {
	query := `
		UPDATE ginners
		SET ginner_name = ?, contact = ?, iban = ?, address = ?, ntn = ?, stn = ?,
		    bank_address = ?, contact_person = ?, station = ?
		WHERE ginner_id = ?
	`
	_, err := r.DB.ExecContext(ctx, query,
		g.GinnerName,
		g.Contact,
		g.IBAN,
		g.Address,
		g.NTN,
		g.STN,
		g.BankAddress,
		g.ContactPerson,
		g.Station,
		g.GinnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ginner %s: %w", g.GinnerID, err)
	}
	return nil
}

func (r *GinnerRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM ginners WHERE ginner_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ginner %s: %w", id, err)
	}
	return nil
}
