package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cotton-backend/internal/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

const paymentColumns = `payment_id, contract_id, total_amount, amount_paid, total_bales, date`

func scanPayment(row interface{ Scan(...interface{}) error }) (*models.Payment, error) {
	p := &models.Payment{}
	var date string
	err := row.Scan(
		&p.PaymentID,
		&p.ContractID,
		&p.TotalAmount,
		&p.AmountPaid,
		&p.TotalBales,
		&date,
	)
	if err != nil {
		return nil, err
	}
	if p.Date, err = parseTime(date); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PaymentRepository) List(ctx context.Context) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY date DESC`
	return r.queryPayments(ctx, query)
}

func (r *PaymentRepository) ListByContract(ctx context.Context, contractID string) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE contract_id = ? ORDER BY date DESC`
	return r.queryPayments(ctx, query, contractID)
}

func (r *PaymentRepository) queryPayments(ctx context.Context, query string, args ...interface{}) ([]*models.Payment, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

// GetByID returns (nil, nil) when no payment exists with the given ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = ?`

	p, err := scanPayment(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment %s: %w", id, err)
	}
	return p, nil
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	query := `
		INSERT INTO payments (payment_id, contract_id, total_amount, amount_paid, total_bales, date)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.PaymentID,
		p.ContractID,
		p.TotalAmount,
		p.AmountPaid,
		p.TotalBales,
		formatTime(p.Date),
	)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *models.Payment) error {
	query := `
		UPDATE payments
		SET contract_id = ?, total_amount = ?, amount_paid = ?, total_bales = ?, date = ?
		WHERE payment_id = ?
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.ContractID,
		p.TotalAmount,
		p.AmountPaid,
		p.TotalBales,
		formatTime(p.Date),
		p.PaymentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment %s: %w", p.PaymentID, err)
	}
	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM payments WHERE payment_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment %s: %w", id, err)
	}
	return nil
}
