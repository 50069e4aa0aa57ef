// Package analytics computes derived figures over record snapshots.
// Everything here is pure: no I/O, no mutation of inputs.
package analytics

import (
	"cotton-backend/internal/models"
)

// DashboardStats is the aggregate view shown on the dashboard.
type DashboardStats struct {
	ContractCount         int     `json:"contract_count"`
	TotalContractAmount   float64 `json:"total_contract_amount"`
	TotalCommission       float64 `json:"total_commission"`
	TotalPaid             float64 `json:"total_paid"`
	TotalDue              float64 `json:"total_due"`
	TotalBalesSold        int     `json:"total_bales_sold"`
	TotalBalesContracted  int     `json:"total_bales_contracted"`
	AverageCommissionRate float64 `json:"average_commission_rate"`
}

// ComputeDashboard aggregates contracts, deliveries and payments into the
// dashboard figures. An empty contract slice yields an average commission
// rate of 0, not a division by zero.
func ComputeDashboard(contracts []*models.Contract, deliveries []*models.Delivery, payments []*models.Payment) DashboardStats {
	stats := DashboardStats{ContractCount: len(contracts)}

	var commissionSum float64
	for _, c := range contracts {
		stats.TotalContractAmount += c.TotalAmount
		stats.TotalCommission += c.CommissionAmount()
		stats.TotalBalesContracted += c.TotalBales
		commissionSum += c.CommissionPercentage
	}
	for _, p := range payments {
		stats.TotalPaid += p.AmountPaid
	}
	for _, d := range deliveries {
		stats.TotalBalesSold += d.TotalBales
	}

	stats.TotalDue = stats.TotalContractAmount - stats.TotalPaid
	if len(contracts) > 0 {
		stats.AverageCommissionRate = commissionSum / float64(len(contracts))
	}

	return stats
}

// ContractSummary is the per-contract view: the contract with its resolved
// parties and fulfillment/collection progress. Ginner or Mill may be nil
// when the referenced ID does not exist; that is a normal, handled case.
type ContractSummary struct {
	Contract  *models.Contract   `json:"contract"`
	Ginner    *models.Ginner     `json:"ginner,omitempty"`
	Mill      *models.Mill       `json:"mill,omitempty"`
	Deliveries []*models.Delivery `json:"deliveries"`
	Payments  []*models.Payment  `json:"payments"`

	DeliveredBales   int     `json:"delivered_bales"`
	PaidAmount       float64 `json:"paid_amount"`
	RemainingBales   int     `json:"remaining_bales"`
	RemainingAmount  float64 `json:"remaining_amount"`
	CommissionAmount float64 `json:"commission_amount"`
}

// BuildContractSummary computes fulfillment and collection progress for one
// contract. Remaining figures may go negative when over-delivered or
// overpaid; that is recorded, not rejected.
func BuildContractSummary(c *models.Contract, g *models.Ginner, m *models.Mill, deliveries []*models.Delivery, payments []*models.Payment) *ContractSummary {
	s := &ContractSummary{
		Contract:   c,
		Ginner:     g,
		Mill:       m,
		Deliveries: deliveries,
		Payments:   payments,
	}

	for _, d := range deliveries {
		s.DeliveredBales += d.TotalBales
	}
	for _, p := range payments {
		s.PaidAmount += p.AmountPaid
	}

	s.RemainingBales = c.TotalBales - s.DeliveredBales
	s.RemainingAmount = c.TotalAmount - s.PaidAmount
	s.CommissionAmount = c.CommissionAmount()

	return s
}
