package handlers

import (
	"net/http"

	"cotton-backend/internal/services"
	"cotton-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type AlertHandler struct {
	Service *services.NotificationService
}

func NewAlertHandler(s *services.NotificationService) *AlertHandler {
	return &AlertHandler{Service: s}
}

func (h *AlertHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Service.Alerts())
}

// ScanNow triggers an immediate scan instead of waiting for the next tick.
func (h *AlertHandler) ScanNow(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.ScanNow(r.Context()); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, h.Service.Alerts())
}

func (h *AlertHandler) DismissAlert(w http.ResponseWriter, r *http.Request) {
	if !h.Service.Dismiss(mux.Vars(r)["id"]) {
		utils.Error(w, http.StatusNotFound, "Alert not found")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Alert dismissed"})
}
