// Package export renders the record store into files a broker can hand to
// an accountant: a spreadsheet workbook, CSV extracts, per-contract PDF
// statements and an HTML summary. All artifacts are written under the
// configured exports directory with timestamped names.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"cotton-backend/internal/repositories"
	"cotton-backend/internal/timeutil"
)

// Service generates export artifacts from the live store.
type Service struct {
	Dir string

	Ginners    *repositories.GinnerRepository
	Mills      *repositories.MillRepository
	Contracts  *repositories.ContractRepository
	Deliveries *repositories.DeliveryRepository
	Payments   *repositories.PaymentRepository
	Ledger     *repositories.LedgerRepository
}

func NewService(
	dir string,
	ginners *repositories.GinnerRepository,
	mills *repositories.MillRepository,
	contracts *repositories.ContractRepository,
	deliveries *repositories.DeliveryRepository,
	payments *repositories.PaymentRepository,
	ledger *repositories.LedgerRepository,
) *Service {
	return &Service{
		Dir:        dir,
		Ginners:    ginners,
		Mills:      mills,
		Contracts:  contracts,
		Deliveries: deliveries,
		Payments:   payments,
		Ledger:     ledger,
	}
}

// filename builds `<kind>_YYYYMMDD_HHMMSS.<ext>` under the exports dir.
func (s *Service) filename(kind, ext string) string {
	name := fmt.Sprintf("%s_%s.%s", kind, timeutil.Now().Format(timeutil.StampLayout), ext)
	return filepath.Join(s.Dir, name)
}

func (s *Service) save(path string, data []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create exports directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

// ginnerNames returns a lookup of ginner ID to display name.
func (s *Service) ginnerNames(ctx context.Context) (map[string]string, error) {
	ginners, err := s.Ginners.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(ginners))
	for _, g := range ginners {
		names[g.GinnerID] = g.GinnerName
	}
	return names, nil
}

// millNames returns a lookup of mill ID to display name.
func (s *Service) millNames(ctx context.Context) (map[string]string, error) {
	mills, err := s.Mills.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(mills))
	for _, m := range mills {
		names[m.MillID] = m.MillName
	}
	return names, nil
}
