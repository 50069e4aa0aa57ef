package models

import "time"

// Payment records money collected from the mill against a contract.
// TotalAmount and TotalBales are snapshots of the contract at payment time,
// kept for older records; AmountPaid is the authoritative field.
type Payment struct {
	PaymentID   string    `json:"payment_id"`
	ContractID  string    `json:"contract_id"`
	TotalAmount float64   `json:"total_amount"`
	AmountPaid  float64   `json:"amount_paid"`
	TotalBales  int       `json:"total_bales"`
	Date        time.Time `json:"date"`
}
