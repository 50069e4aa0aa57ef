package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cotton-backend/internal/models"
)

type DeliveryRepository struct {
	DB *sql.DB
}

func NewDeliveryRepository(db *sql.DB) *DeliveryRepository {
	return &DeliveryRepository{DB: db}
}

const deliveryColumns = `delivery_id, contract_id, amount, total_bales, factory_weight,
	       mill_weight, truck_number, driver_contact, departure_date, delivery_date`

func scanDelivery(row interface{ Scan(...interface{}) error }) (*models.Delivery, error) {
	d := &models.Delivery{}
	var departure, delivered string
	err := row.Scan(
		&d.DeliveryID,
		&d.ContractID,
		&d.Amount,
		&d.TotalBales,
		&d.FactoryWeight,
		&d.MillWeight,
		&d.TruckNumber,
		&d.DriverContact,
		&departure,
		&delivered,
	)
	if err != nil {
		return nil, err
	}
	if d.DepartureDate, err = parseTime(departure); err != nil {
		return nil, err
	}
	if d.DeliveryDate, err = parseTime(delivered); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DeliveryRepository) List(ctx context.Context) ([]*models.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries ORDER BY delivery_date DESC`
	return r.queryDeliveries(ctx, query)
}

func (r *DeliveryRepository) ListByContract(ctx context.Context, contractID string) ([]*models.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE contract_id = ? ORDER BY delivery_date DESC`
	return r.queryDeliveries(ctx, query, contractID)
}

func (r *DeliveryRepository) queryDeliveries(ctx context.Context, query string, args ...interface{}) ([]*models.Delivery, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []*models.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, rows.Err()
}

// GetByID returns (nil, nil) when no delivery exists with the given ID.
func (r *DeliveryRepository) GetByID(ctx context.Context, id string) (*models.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE delivery_id = ?`

	d, err := scanDelivery(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get delivery %s: %w", id, err)
	}
	return d, nil
}

func (r *DeliveryRepository) Create(ctx context.Context, d *models.Delivery) error {
	query := `
		INSERT INTO deliveries (delivery_id, contract_id, amount, total_bales, factory_weight,
			mill_weight, truck_number, driver_contact, departure_date, delivery_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.DB.ExecContext(ctx, query,
		d.DeliveryID,
		d.ContractID,
		d.Amount,
		d.TotalBales,
		d.FactoryWeight,
		d.MillWeight,
		d.TruckNumber,
		d.DriverContact,
		formatTime(d.DepartureDate),
		formatTime(d.DeliveryDate),
	)
	if err != nil {
		return fmt.Errorf("failed to create delivery: %w", err)
	}
	return nil
}

func (r *DeliveryRepository) Update(ctx context.Context, d *models.Delivery) error {
	query := `
		UPDATE deliveries
		SET contract_id = ?, amount = ?, total_bales = ?, factory_weight = ?,
		    mill_weight = ?, truck_number = ?, driver_contact = ?,
		    departure_date = ?, delivery_date = ?
		WHERE delivery_id = ?
	`
	_, err := r.DB.ExecContext(ctx, query,
		d.ContractID,
		d.Amount,
		d.TotalBales,
		d.FactoryWeight,
		d.MillWeight,
		d.TruckNumber,
		d.DriverContact,
		formatTime(d.DepartureDate),
		formatTime(d.DeliveryDate),
		d.DeliveryID,
	)
	if err != nil {
		return fmt.Errorf("failed to update delivery %s: %w", d.DeliveryID, err)
	}
	return nil
}

func (r *DeliveryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM deliveries WHERE delivery_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete delivery %s: %w", id, err)
	}
	return nil
}
