package handlers

import (
	"encoding/json"
	"net/http"

	"cotton-backend/internal/models"
	"cotton-backend/internal/services"
	"cotton-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ContractHandler struct {
	Service *services.ContractService
}

func NewContractHandler(s *services.ContractService) *ContractHandler {
	return &ContractHandler{Service: s}
}

func (h *ContractHandler) ListContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.Service.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, contracts)
}

func (h *ContractHandler) GetContract(w http.ResponseWriter, r *http.Request) {
	contract, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if contract == nil {
		utils.Error(w, http.StatusNotFound, "Contract not found")
		return
	}
	utils.JSON(w, http.StatusOK, contract)
}

// GetContractSummary returns the contract joined with its parties,
// deliveries, payments and fulfillment figures.
func (h *ContractHandler) GetContractSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if summary == nil {
		utils.Error(w, http.StatusNotFound, "Contract not found")
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}

func (h *ContractHandler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var c models.Contract
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if c.ContractID == "" {
		utils.Error(w, http.StatusBadRequest, "contract_id is required")
		return
	}

	existing, err := h.Service.Get(r.Context(), c.ContractID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing != nil {
		utils.Error(w, http.StatusConflict, "Contract already exists")
		return
	}

	if err := h.Service.Create(r.Context(), &c); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, &c)
}

func (h *ContractHandler) UpdateContract(w http.ResponseWriter, r *http.Request) {
	var c models.Contract
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	c.ContractID = mux.Vars(r)["id"]

	if err := h.Service.Update(r.Context(), &c); err != nil {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, &c)
}

// DeleteContract removes the contract and all its dependent records.
func (h *ContractHandler) DeleteContract(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Contract and dependent records deleted"})
}
