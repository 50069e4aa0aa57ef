package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cotton-backend/internal/handlers"
	"cotton-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	ginnerHandler *handlers.GinnerHandler,
	millHandler *handlers.MillHandler,
	contractHandler *handlers.ContractHandler,
	deliveryHandler *handlers.DeliveryHandler,
	paymentHandler *handlers.PaymentHandler,
	ledgerHandler *handlers.LedgerHandler,
	dashboardHandler *handlers.DashboardHandler,
	alertHandler *handlers.AlertHandler,
	backupHandler *handlers.BackupHandler,
	exportHandler *handlers.ExportHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes - Authentication and monitoring
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.HealthDetailed).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Protected API routes - Ginners
	ginnersAPI := r.PathPrefix("/api/ginners").Subrouter()
	ginnersAPI.Use(authMiddleware.Authenticate)
	ginnersAPI.HandleFunc("", ginnerHandler.ListGinners).Methods("GET")
	ginnersAPI.HandleFunc("", ginnerHandler.CreateGinner).Methods("POST")
	ginnersAPI.HandleFunc("/{id}", ginnerHandler.GetGinner).Methods("GET")
	ginnersAPI.HandleFunc("/{id}", ginnerHandler.UpdateGinner).Methods("PUT")
	ginnersAPI.HandleFunc("/{id}", ginnerHandler.DeleteGinner).Methods("DELETE")

	// Protected API routes - Mills
	millsAPI := r.PathPrefix("/api/mills").Subrouter()
	millsAPI.Use(authMiddleware.Authenticate)
	millsAPI.HandleFunc("", millHandler.ListMills).Methods("GET")
	millsAPI.HandleFunc("", millHandler.CreateMill).Methods("POST")
	millsAPI.HandleFunc("/{id}", millHandler.GetMill).Methods("GET")
	millsAPI.HandleFunc("/{id}", millHandler.UpdateMill).Methods("PUT")
	millsAPI.HandleFunc("/{id}", millHandler.DeleteMill).Methods("DELETE")

	// Protected API routes - Contracts
	contractsAPI := r.PathPrefix("/api/contracts").Subrouter()
	contractsAPI.Use(authMiddleware.Authenticate)
	contractsAPI.HandleFunc("", contractHandler.ListContracts).Methods("GET")
	contractsAPI.HandleFunc("", contractHandler.CreateContract).Methods("POST")
	contractsAPI.HandleFunc("/{id}", contractHandler.GetContract).Methods("GET")
	contractsAPI.HandleFunc("/{id}/summary", contractHandler.GetContractSummary).Methods("GET")
	contractsAPI.HandleFunc("/{id}", contractHandler.UpdateContract).Methods("PUT")
	contractsAPI.HandleFunc("/{id}", contractHandler.DeleteContract).Methods("DELETE")

	// Protected API routes - Deliveries
	deliveriesAPI := r.PathPrefix("/api/deliveries").Subrouter()
	deliveriesAPI.Use(authMiddleware.Authenticate)
	deliveriesAPI.HandleFunc("", deliveryHandler.ListDeliveries).Methods("GET")
	deliveriesAPI.HandleFunc("", deliveryHandler.CreateDelivery).Methods("POST")
	deliveriesAPI.HandleFunc("/{id}", deliveryHandler.GetDelivery).Methods("GET")
	deliveriesAPI.HandleFunc("/{id}", deliveryHandler.UpdateDelivery).Methods("PUT")
	deliveriesAPI.HandleFunc("/{id}", deliveryHandler.DeleteDelivery).Methods("DELETE")

	// Protected API routes - Payments
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Use(authMiddleware.Authenticate)
	paymentsAPI.HandleFunc("", paymentHandler.ListPayments).Methods("GET")
	paymentsAPI.HandleFunc("", paymentHandler.CreatePayment).Methods("POST")
	paymentsAPI.HandleFunc("/{id}", paymentHandler.GetPayment).Methods("GET")
	paymentsAPI.HandleFunc("/{id}", paymentHandler.UpdatePayment).Methods("PUT")
	paymentsAPI.HandleFunc("/{id}", paymentHandler.DeletePayment).Methods("DELETE")

	// Protected API routes - Payment ledger (composite key)
	ledgerAPI := r.PathPrefix("/api/ledger").Subrouter()
	ledgerAPI.Use(authMiddleware.Authenticate)
	ledgerAPI.HandleFunc("", ledgerHandler.ListEntries).Methods("GET")
	ledgerAPI.HandleFunc("", ledgerHandler.CreateEntry).Methods("POST")
	ledgerAPI.HandleFunc("/{contract_id}/{deal_id}", ledgerHandler.GetEntry).Methods("GET")
	ledgerAPI.HandleFunc("/{contract_id}/{deal_id}", ledgerHandler.UpdateEntry).Methods("PUT")
	ledgerAPI.HandleFunc("/{contract_id}/{deal_id}", ledgerHandler.DeleteEntry).Methods("DELETE")

	// Protected API routes - Dashboard and alerts
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("", dashboardHandler.GetDashboard).Methods("GET")

	alertsAPI := r.PathPrefix("/api/alerts").Subrouter()
	alertsAPI.Use(authMiddleware.Authenticate)
	alertsAPI.HandleFunc("", alertHandler.ListAlerts).Methods("GET")
	alertsAPI.HandleFunc("/scan", alertHandler.ScanNow).Methods("POST")
	alertsAPI.HandleFunc("/{id}", alertHandler.DismissAlert).Methods("DELETE")

	// Protected API routes - Exports
	exportsAPI := r.PathPrefix("/api/exports").Subrouter()
	exportsAPI.Use(authMiddleware.Authenticate)
	exportsAPI.HandleFunc("/workbook", exportHandler.ExportWorkbook).Methods("GET")
	exportsAPI.HandleFunc("/contracts.csv", exportHandler.ExportContractsCSV).Methods("GET")
	exportsAPI.HandleFunc("/contracts/{id}/statement.pdf", exportHandler.ExportContractStatement).Methods("GET")
	exportsAPI.HandleFunc("/summary.html", exportHandler.ExportSummaryHTML).Methods("GET")

	// Protected API routes - Backups (restore is admin-only)
	backupsAPI := r.PathPrefix("/api/backups").Subrouter()
	backupsAPI.Use(authMiddleware.Authenticate)
	backupsAPI.HandleFunc("", backupHandler.ListBackups).Methods("GET")
	backupsAPI.HandleFunc("", backupHandler.CreateBackup).Methods("POST")
	backupsAPI.HandleFunc("/download", backupHandler.DownloadBackup).Methods("GET")

	restoreAPI := r.PathPrefix("/api/backups/restore").Subrouter()
	restoreAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireRole("admin"))
	restoreAPI.HandleFunc("", backupHandler.RestoreBackup).Methods("POST")

	// Admin-only API routes - User management
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireRole("admin"))
	usersAPI.HandleFunc("", userHandler.ListUsers).Methods("GET")
	usersAPI.HandleFunc("/{id}", userHandler.GetUser).Methods("GET")
	usersAPI.HandleFunc("/{id}/active", userHandler.SetActive).Methods("PUT")
	usersAPI.HandleFunc("/{id}", userHandler.DeleteUser).Methods("DELETE")

	return r
}
