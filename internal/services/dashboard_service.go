package services

import (
	"context"

	"cotton-backend/internal/analytics"
	"cotton-backend/internal/repositories"
)

// DashboardService assembles the dashboard aggregate from fresh store
// snapshots. Computation itself lives in the analytics package.
type DashboardService struct {
	Contracts  *repositories.ContractRepository
	Deliveries *repositories.DeliveryRepository
	Payments   *repositories.PaymentRepository
	Ginners    *repositories.GinnerRepository
	Mills      *repositories.MillRepository
}

func NewDashboardService(
	contracts *repositories.ContractRepository,
	deliveries *repositories.DeliveryRepository,
	payments *repositories.PaymentRepository,
	ginners *repositories.GinnerRepository,
	mills *repositories.MillRepository,
) *DashboardService {
	return &DashboardService{
		Contracts:  contracts,
		Deliveries: deliveries,
		Payments:   payments,
		Ginners:    ginners,
		Mills:      mills,
	}
}

// Dashboard is the stats aggregate plus master data counts.
type Dashboard struct {
	analytics.DashboardStats
	GinnerCount int `json:"ginner_count"`
	MillCount   int `json:"mill_count"`
}

func (s *DashboardService) Stats(ctx context.Context) (*Dashboard, error) {
	contracts, err := s.Contracts.List(ctx)
	if err != nil {
		return nil, err
	}
	deliveries, err := s.Deliveries.List(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.Payments.List(ctx)
	if err != nil {
		return nil, err
	}
	ginners, err := s.Ginners.List(ctx)
	if err != nil {
		return nil, err
	}
	mills, err := s.Mills.List(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		DashboardStats: analytics.ComputeDashboard(contracts, deliveries, payments),
		GinnerCount:    len(ginners),
		MillCount:      len(mills),
	}, nil
}
