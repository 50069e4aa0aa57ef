package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"cotton-backend/internal/metrics"
	"cotton-backend/internal/models"
	"cotton-backend/internal/repositories"
	"cotton-backend/internal/timeutil"

	"github.com/google/uuid"
)

// Alert categories produced by the periodic scan.
const (
	AlertOverduePayment  = "overdue_payment"
	AlertPendingDelivery = "pending_delivery"
	AlertNearCompletion  = "near_completion"
	AlertInactiveGinner  = "inactive_ginner"
)

// Threshold rules, ages measured from Contract.DateCreated.
const (
	overduePaymentAge   = 30 * 24 * time.Hour
	pendingDeliveryAge  = 15 * 24 * time.Hour
	inactiveGinnerAge   = 60 * 24 * time.Hour
	pendingDeliveryFrac = 0.5
	nearCompletionFrac  = 0.9
)

// Alert is a transient notification. Alerts are rebuilt from scratch on
// every scan; Dismiss only affects the current in-memory list.
type Alert struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	ContractID string    `json:"contract_id,omitempty"`
	GinnerID   string    `json:"ginner_id,omitempty"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// NotificationService re-evaluates all contracts and ginners against the
// threshold rules on a fixed interval. Start/Stop bound the scheduler's
// lifetime, and a tick is skipped when the previous scan is still running.
type NotificationService struct {
	Contracts  *repositories.ContractRepository
	Ginners    *repositories.GinnerRepository
	Deliveries *repositories.DeliveryRepository
	Payments   *repositories.PaymentRepository

	interval time.Duration

	startMu sync.Mutex
	ticker  *time.Ticker
	stop    chan struct{}
	running int32

	mu     sync.Mutex
	alerts []Alert
}

func NewNotificationService(
	contracts *repositories.ContractRepository,
	ginners *repositories.GinnerRepository,
	deliveries *repositories.DeliveryRepository,
	payments *repositories.PaymentRepository,
	interval time.Duration,
) *NotificationService {
	return &NotificationService{
		Contracts:  contracts,
		Ginners:    ginners,
		Deliveries: deliveries,
		Payments:   payments,
		interval:   interval,
	}
}

// Start launches the periodic scan. Idempotent; the first scan runs
// immediately.
func (s *NotificationService) Start() {
	s.startMu.Lock()
	defer s.startMu.Unlock()

	if s.ticker != nil {
		return // Already running
	}

	s.ticker = time.NewTicker(s.interval)
	s.stop = make(chan struct{})

	go func() {
		log.Printf("[Notifications] Scanner started (interval: %v)", s.interval)
		s.scan()

		for {
			select {
			case <-s.ticker.C:
				s.scan()
			case <-s.stop:
				log.Println("[Notifications] Scanner stopped")
				return
			}
		}
	}()
}

// Stop halts the periodic scan. Idempotent.
func (s *NotificationService) Stop() {
	s.startMu.Lock()
	defer s.startMu.Unlock()

	if s.ticker != nil {
		s.ticker.Stop()
		close(s.stop)
		s.ticker = nil
	}
}

// scan rebuilds the alert list. A tick that arrives while the previous scan
// is still running is skipped, not queued.
func (s *NotificationService) scan() {
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		log.Println("[Notifications] Previous scan still running, skipping tick")
		return
	}
	defer atomic.StoreInt32(&s.running, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.ScanNow(ctx); err != nil {
		log.Printf("[Notifications] Scan failed: %v", err)
	}
}

// ScanNow fetches fresh snapshots and replaces the alert list.
func (s *NotificationService) ScanNow(ctx context.Context) error {
	contracts, err := s.Contracts.List(ctx)
	if err != nil {
		return err
	}
	ginners, err := s.Ginners.List(ctx)
	if err != nil {
		return err
	}
	deliveries, err := s.Deliveries.List(ctx)
	if err != nil {
		return err
	}
	payments, err := s.Payments.List(ctx)
	if err != nil {
		return err
	}

	alerts := evaluateAlerts(timeutil.Now(), contracts, ginners, deliveries, payments)

	s.mu.Lock()
	s.alerts = alerts
	s.mu.Unlock()

	metrics.ActiveAlerts.Set(float64(len(alerts)))
	return nil
}

// Alerts returns a copy of the current alert list.
func (s *NotificationService) Alerts() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// Dismiss removes one alert from the current list. The removal lasts only
// until the next scan rebuilds the list.
func (s *NotificationService) Dismiss(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.alerts {
		if a.ID == id {
			s.alerts = append(s.alerts[:i], s.alerts[i+1:]...)
			metrics.ActiveAlerts.Set(float64(len(s.alerts)))
			return true
		}
	}
	return false
}

// evaluateAlerts classifies contracts and ginners against the threshold
// rules. Pure over its inputs; now is injected for testability.
func evaluateAlerts(now time.Time, contracts []*models.Contract, ginners []*models.Ginner, deliveries []*models.Delivery, payments []*models.Payment) []Alert {
	paidByContract := make(map[string]float64)
	for _, p := range payments {
		paidByContract[p.ContractID] += p.AmountPaid
	}
	deliveredByContract := make(map[string]int)
	for _, d := range deliveries {
		deliveredByContract[d.ContractID] += d.TotalBales
	}
	latestContractByGinner := make(map[string]time.Time)
	for _, c := range contracts {
		if c.DateCreated.After(latestContractByGinner[c.GinnerID]) {
			latestContractByGinner[c.GinnerID] = c.DateCreated
		}
	}

	var alerts []Alert
	add := func(kind, contractID, ginnerID, message string) {
		alerts = append(alerts, Alert{
			ID:         uuid.NewString(),
			Type:       kind,
			ContractID: contractID,
			GinnerID:   ginnerID,
			Message:    message,
			CreatedAt:  now,
		})
	}

	for _, c := range contracts {
		age := now.Sub(c.DateCreated)
		paid := paidByContract[c.ContractID]
		delivered := deliveredByContract[c.ContractID]

		if paid < c.TotalAmount && age > overduePaymentAge {
			add(AlertOverduePayment, c.ContractID, c.GinnerID,
				fmt.Sprintf("Contract %s has %.2f outstanding after %d days", c.ContractID, c.TotalAmount-paid, int(age.Hours()/24)))
		}

		if c.TotalBales > 0 && delivered < c.TotalBales &&
			float64(delivered)/float64(c.TotalBales) < pendingDeliveryFrac &&
			age > pendingDeliveryAge {
			add(AlertPendingDelivery, c.ContractID, c.GinnerID,
				fmt.Sprintf("Contract %s has delivered only %d of %d bales", c.ContractID, delivered, c.TotalBales))
		}

		if c.TotalAmount > 0 {
			frac := paid / c.TotalAmount
			if frac >= nearCompletionFrac && frac < 1 {
				add(AlertNearCompletion, c.ContractID, c.GinnerID,
					fmt.Sprintf("Contract %s is %.0f%% collected", c.ContractID, frac*100))
			}
		}
	}

	for _, g := range ginners {
		latest, hasContracts := latestContractByGinner[g.GinnerID]
		if hasContracts && now.Sub(latest) > inactiveGinnerAge {
			add(AlertInactiveGinner, "", g.GinnerID,
				fmt.Sprintf("Ginner %s has had no new contract in %d days", g.GinnerName, int(now.Sub(latest).Hours()/24)))
		}
	}

	return alerts
}
