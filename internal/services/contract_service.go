package services

import (
	"context"
	"fmt"

	"cotton-backend/internal/analytics"
	"cotton-backend/internal/models"
	"cotton-backend/internal/repositories"
	"cotton-backend/internal/timeutil"

	"github.com/shopspring/decimal"
)

// ApplyAmountRule recomputes TotalAmount = TotalBales × PricePerBatch
// whenever both inputs are positive, overwriting any caller-supplied value.
// Older records carry hand-entered amounts, so the rule only fires when the
// inputs make the product meaningful. This is a load-bearing business rule
// on every contract write path, not a persistence detail.
func ApplyAmountRule(c *models.Contract) {
	if c.TotalBales <= 0 || c.PricePerBatch <= 0 {
		return
	}
	amount := decimal.NewFromInt(int64(c.TotalBales)).
		Mul(decimal.NewFromFloat(c.PricePerBatch)).
		Round(2)
	c.TotalAmount, _ = amount.Float64()
}

type ContractService struct {
	Contracts  *repositories.ContractRepository
	Deliveries *repositories.DeliveryRepository
	Payments   *repositories.PaymentRepository
	Ledger     *repositories.LedgerRepository
	Ginners    *repositories.GinnerRepository
	Mills      *repositories.MillRepository
}

func NewContractService(
	contracts *repositories.ContractRepository,
	deliveries *repositories.DeliveryRepository,
	payments *repositories.PaymentRepository,
	ledger *repositories.LedgerRepository,
	ginners *repositories.GinnerRepository,
	mills *repositories.MillRepository,
) *ContractService {
	return &ContractService{
		Contracts:  contracts,
		Deliveries: deliveries,
		Payments:   payments,
		Ledger:     ledger,
		Ginners:    ginners,
		Mills:      mills,
	}
}

func (s *ContractService) List(ctx context.Context) ([]*models.Contract, error) {
	return s.Contracts.List(ctx)
}

func (s *ContractService) Get(ctx context.Context, id string) (*models.Contract, error) {
	return s.Contracts.GetByID(ctx, id)
}

func (s *ContractService) Create(ctx context.Context, c *models.Contract) error {
	if c.DateCreated.IsZero() {
		c.DateCreated = timeutil.Now()
	}
	ApplyAmountRule(c)
	return s.Contracts.Create(ctx, c)
}

func (s *ContractService) Update(ctx context.Context, c *models.Contract) error {
	existing, err := s.Contracts.GetByID(ctx, c.ContractID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("contract %s does not exist", c.ContractID)
	}
	if c.DateCreated.IsZero() {
		c.DateCreated = existing.DateCreated
	}
	ApplyAmountRule(c)
	return s.Contracts.Update(ctx, c)
}

// Delete removes the contract and all child records (ledger entries,
// payments, deliveries) through the repository's cascade policy.
func (s *ContractService) Delete(ctx context.Context, id string) error {
	return s.Contracts.DeleteCascade(ctx, id)
}

// Summary resolves a contract with its parties and computes fulfillment and
// collection progress. Returns (nil, nil) when the contract does not exist.
func (s *ContractService) Summary(ctx context.Context, id string) (*analytics.ContractSummary, error) {
	contract, err := s.Contracts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, nil
	}

	// Ginner/Mill lookups failing is normal; a contract may reference IDs
	// that were never created or were deleted later.
	ginner, err := s.Ginners.GetByID(ctx, contract.GinnerID)
	if err != nil {
		return nil, err
	}
	mill, err := s.Mills.GetByID(ctx, contract.MillID)
	if err != nil {
		return nil, err
	}

	deliveries, err := s.Deliveries.ListByContract(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := s.Payments.ListByContract(ctx, id)
	if err != nil {
		return nil, err
	}

	return analytics.BuildContractSummary(contract, ginner, mill, deliveries, payments), nil
}
