package models

import "time"

// Contract represents a brokered deal between a ginner (seller) and a mill (buyer).
// TotalAmount is derived from TotalBales and PricePerBatch whenever both are
// positive; see services.ApplyAmountRule.
type Contract struct {
	ContractID           string    `json:"contract_id"`
	GinnerID             string    `json:"ginner_id"`
	MillID               string    `json:"mill_id"`
	TotalBales           int       `json:"total_bales"`
	PricePerBatch        float64   `json:"price_per_batch"`
	TotalAmount          float64   `json:"total_amount"`
	CommissionPercentage float64   `json:"commission_percentage"` // 0-100
	DateCreated          time.Time `json:"date_created"`
	DeliveryNotes        string    `json:"delivery_notes"`
	PaymentNotes         string    `json:"payment_notes"`
}

// CommissionAmount returns the broker commission for this contract.
func (c *Contract) CommissionAmount() float64 {
	return c.TotalAmount * c.CommissionPercentage / 100
}
