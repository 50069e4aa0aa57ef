package handlers

import (
	"encoding/json"
	"net/http"

	"cotton-backend/internal/models"
	"cotton-backend/internal/repositories"
	"cotton-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type DeliveryHandler struct {
	Repo *repositories.DeliveryRepository
}

func NewDeliveryHandler(repo *repositories.DeliveryRepository) *DeliveryHandler {
	return &DeliveryHandler{Repo: repo}
}

// ListDeliveries returns all deliveries, or those of one contract when a
// contract_id query parameter is given.
func (h *DeliveryHandler) ListDeliveries(w http.ResponseWriter, r *http.Request) {
	var (
		deliveries []*models.Delivery
		err        error
	)
	if contractID := r.URL.Query().Get("contract_id"); contractID != "" {
		deliveries, err = h.Repo.ListByContract(r.Context(), contractID)
	} else {
		deliveries, err = h.Repo.List(r.Context())
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, deliveries)
}

func (h *DeliveryHandler) GetDelivery(w http.ResponseWriter, r *http.Request) {
	delivery, err := h.Repo.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if delivery == nil {
		utils.Error(w, http.StatusNotFound, "Delivery not found")
		return
	}
	utils.JSON(w, http.StatusOK, delivery)
}

func (h *DeliveryHandler) CreateDelivery(w http.ResponseWriter, r *http.Request) {
	var d models.Delivery
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if d.DeliveryID == "" || d.ContractID == "" {
		utils.Error(w, http.StatusBadRequest, "delivery_id and contract_id are required")
		return
	}

	existing, err := h.Repo.GetByID(r.Context(), d.DeliveryID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing != nil {
		utils.Error(w, http.StatusConflict, "Delivery already exists")
		return
	}

	if err := h.Repo.Create(r.Context(), &d); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, &d)
}

func (h *DeliveryHandler) UpdateDelivery(w http.ResponseWriter, r *http.Request) {
	var d models.Delivery
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	d.DeliveryID = mux.Vars(r)["id"]

	existing, err := h.Repo.GetByID(r.Context(), d.DeliveryID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		utils.Error(w, http.StatusNotFound, "Delivery not found")
		return
	}

	if err := h.Repo.Update(r.Context(), &d); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, &d)
}

func (h *DeliveryHandler) DeleteDelivery(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Delivery deleted"})
}
