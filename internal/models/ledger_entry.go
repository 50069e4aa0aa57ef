package models

import "time"

// LedgerEntry is a side record of an amount a ginner is owed by mills under
// a specific deal of a contract. Keyed by (ContractID, DealID); tracked
// independently of Payment records and not reconciled against them.
type LedgerEntry struct {
	ContractID string    `json:"contract_id"`
	DealID     string    `json:"deal_id"`
	AmountPaid float64   `json:"amount_paid"`
	DatePaid   time.Time `json:"date_paid"`
	MillsDueTo string    `json:"mills_due_to"`
}
