package handlers

import (
	"encoding/json"
	"net/http"

	"cotton-backend/internal/models"
	"cotton-backend/internal/repositories"
	"cotton-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type PaymentHandler struct {
	Repo *repositories.PaymentRepository
}

func NewPaymentHandler(repo *repositories.PaymentRepository) *PaymentHandler {
	return &PaymentHandler{Repo: repo}
}

// ListPayments returns all payments, or those of one contract when a
// contract_id query parameter is given.
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	var (
		payments []*models.Payment
		err      error
	)
	if contractID := r.URL.Query().Get("contract_id"); contractID != "" {
		payments, err = h.Repo.ListByContract(r.Context(), contractID)
	} else {
		payments, err = h.Repo.List(r.Context())
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.Repo.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if payment == nil {
		utils.Error(w, http.StatusNotFound, "Payment not found")
		return
	}
	utils.JSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var p models.Payment
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if p.PaymentID == "" || p.ContractID == "" {
		utils.Error(w, http.StatusBadRequest, "payment_id and contract_id are required")
		return
	}

	existing, err := h.Repo.GetByID(r.Context(), p.PaymentID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing != nil {
		utils.Error(w, http.StatusConflict, "Payment already exists")
		return
	}

	if err := h.Repo.Create(r.Context(), &p); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, &p)
}

func (h *PaymentHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var p models.Payment
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p.PaymentID = mux.Vars(r)["id"]

	existing, err := h.Repo.GetByID(r.Context(), p.PaymentID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		utils.Error(w, http.StatusNotFound, "Payment not found")
		return
	}

	if err := h.Repo.Update(r.Context(), &p); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, &p)
}

func (h *PaymentHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Payment deleted"})
}
