package services

import (
	"testing"
	"time"

	"cotton-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alertsOfType(alerts []Alert, kind string) []Alert {
	var out []Alert
	for _, a := range alerts {
		if a.Type == kind {
			out = append(out, a)
		}
	}
	return out
}

func TestEvaluateAlerts_OverduePayment(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("underpaid contract older than 30 days", func(t *testing.T) {
		contracts := []*models.Contract{{
			ContractID:  "C1",
			TotalAmount: 100000,
			DateCreated: now.AddDate(0, 0, -31),
		}}
		payments := []*models.Payment{{PaymentID: "P1", ContractID: "C1", AmountPaid: 20000}}

		alerts := evaluateAlerts(now, contracts, nil, nil, payments)
		overdue := alertsOfType(alerts, AlertOverduePayment)
		require.Len(t, overdue, 1)
		assert.Equal(t, "C1", overdue[0].ContractID)
		assert.Contains(t, overdue[0].Message, "80000.00")
	})

	t.Run("29 day old contract stays quiet", func(t *testing.T) {
		contracts := []*models.Contract{{
			ContractID:  "C1",
			TotalAmount: 100000,
			DateCreated: now.AddDate(0, 0, -29),
		}}

		alerts := evaluateAlerts(now, contracts, nil, nil, nil)
		assert.Empty(t, alertsOfType(alerts, AlertOverduePayment))
	})

	t.Run("fully paid contract stays quiet regardless of age", func(t *testing.T) {
		contracts := []*models.Contract{{
			ContractID:  "C1",
			TotalAmount: 100000,
			DateCreated: now.AddDate(0, 0, -90),
		}}
		payments := []*models.Payment{{PaymentID: "P1", ContractID: "C1", AmountPaid: 100000}}

		alerts := evaluateAlerts(now, contracts, nil, nil, payments)
		assert.Empty(t, alertsOfType(alerts, AlertOverduePayment))
	})
}

func TestEvaluateAlerts_PendingDelivery(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	base := models.Contract{ContractID: "C1", TotalBales: 100, DateCreated: now.AddDate(0, 0, -16)}

	t.Run("under half delivered after 15 days", func(t *testing.T) {
		c := base
		deliveries := []*models.Delivery{{DeliveryID: "D1", ContractID: "C1", TotalBales: 40}}

		alerts := evaluateAlerts(now, []*models.Contract{&c}, nil, deliveries, nil)
		pending := alertsOfType(alerts, AlertPendingDelivery)
		require.Len(t, pending, 1)
		assert.Contains(t, pending[0].Message, "40 of 100")
	})

	t.Run("exactly half delivered stays quiet", func(t *testing.T) {
		c := base
		deliveries := []*models.Delivery{{DeliveryID: "D1", ContractID: "C1", TotalBales: 50}}

		alerts := evaluateAlerts(now, []*models.Contract{&c}, nil, deliveries, nil)
		assert.Empty(t, alertsOfType(alerts, AlertPendingDelivery))
	})

	t.Run("zero bale contract cannot fire", func(t *testing.T) {
		c := base
		c.TotalBales = 0

		alerts := evaluateAlerts(now, []*models.Contract{&c}, nil, nil, nil)
		assert.Empty(t, alertsOfType(alerts, AlertPendingDelivery))
	})
}

func TestEvaluateAlerts_NearCompletion(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	contract := &models.Contract{ContractID: "C1", TotalAmount: 100000, DateCreated: now.AddDate(0, 0, -5)}

	cases := []struct {
		name  string
		paid  float64
		fires bool
	}{
		{"89 percent", 89000, false},
		{"90 percent", 90000, true},
		{"99 percent", 99000, true},
		{"fully paid", 100000, false},
		{"overpaid", 110000, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payments := []*models.Payment{{PaymentID: "P1", ContractID: "C1", AmountPaid: tc.paid}}
			alerts := evaluateAlerts(now, []*models.Contract{contract}, nil, nil, payments)
			near := alertsOfType(alerts, AlertNearCompletion)
			if tc.fires {
				assert.Len(t, near, 1)
			} else {
				assert.Empty(t, near)
			}
		})
	}
}

func TestEvaluateAlerts_InactiveGinner(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	ginners := []*models.Ginner{{GinnerID: "G1", GinnerName: "Sadiq Ginning"}}

	t.Run("no contract in 61 days", func(t *testing.T) {
		contracts := []*models.Contract{{ContractID: "C1", GinnerID: "G1", DateCreated: now.AddDate(0, 0, -61), TotalAmount: 1}}
		payments := []*models.Payment{{PaymentID: "P1", ContractID: "C1", AmountPaid: 1}}

		alerts := evaluateAlerts(now, contracts, ginners, nil, payments)
		inactive := alertsOfType(alerts, AlertInactiveGinner)
		require.Len(t, inactive, 1)
		assert.Equal(t, "G1", inactive[0].GinnerID)
		assert.Contains(t, inactive[0].Message, "Sadiq Ginning")
	})

	t.Run("recent contract keeps the ginner active", func(t *testing.T) {
		contracts := []*models.Contract{
			{ContractID: "C1", GinnerID: "G1", DateCreated: now.AddDate(0, 0, -200), TotalAmount: 1},
			{ContractID: "C2", GinnerID: "G1", DateCreated: now.AddDate(0, 0, -10), TotalAmount: 1},
		}
		payments := []*models.Payment{
			{PaymentID: "P1", ContractID: "C1", AmountPaid: 1},
			{PaymentID: "P2", ContractID: "C2", AmountPaid: 1},
		}

		alerts := evaluateAlerts(now, contracts, ginners, nil, payments)
		assert.Empty(t, alertsOfType(alerts, AlertInactiveGinner))
	})

	t.Run("ginner with no contracts at all stays quiet", func(t *testing.T) {
		alerts := evaluateAlerts(now, nil, ginners, nil, nil)
		assert.Empty(t, alerts)
	})
}

func TestNotificationService_Dismiss(t *testing.T) {
	svc := &NotificationService{}
	svc.alerts = []Alert{
		{ID: "a1", Type: AlertOverduePayment},
		{ID: "a2", Type: AlertNearCompletion},
	}

	assert.True(t, svc.Dismiss("a1"))
	assert.False(t, svc.Dismiss("a1"), "dismissing twice fails the second time")
	assert.Len(t, svc.Alerts(), 1)
	assert.Equal(t, "a2", svc.Alerts()[0].ID)
}
