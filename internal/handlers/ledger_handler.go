package handlers

import (
	"encoding/json"
	"net/http"

	"cotton-backend/internal/models"
	"cotton-backend/internal/repositories"
	"cotton-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// LedgerHandler exposes ledger entries, which are keyed by the pair
// (contract_id, deal_id) rather than a single ID.
type LedgerHandler struct {
	Repo *repositories.LedgerRepository
}

func NewLedgerHandler(repo *repositories.LedgerRepository) *LedgerHandler {
	return &LedgerHandler{Repo: repo}
}

func (h *LedgerHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	var (
		entries []*models.LedgerEntry
		err     error
	)
	if contractID := r.URL.Query().Get("contract_id"); contractID != "" {
		entries, err = h.Repo.ListByContract(r.Context(), contractID)
	} else {
		entries, err = h.Repo.List(r.Context())
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, entries)
}

func (h *LedgerHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entry, err := h.Repo.Get(r.Context(), vars["contract_id"], vars["deal_id"])
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entry == nil {
		utils.Error(w, http.StatusNotFound, "Ledger entry not found")
		return
	}
	utils.JSON(w, http.StatusOK, entry)
}

func (h *LedgerHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var e models.LedgerEntry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if e.ContractID == "" || e.DealID == "" {
		utils.Error(w, http.StatusBadRequest, "contract_id and deal_id are required")
		return
	}

	existing, err := h.Repo.Get(r.Context(), e.ContractID, e.DealID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing != nil {
		utils.Error(w, http.StatusConflict, "Ledger entry already exists")
		return
	}

	if err := h.Repo.Create(r.Context(), &e); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, &e)
}

func (h *LedgerHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	var e models.LedgerEntry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	vars := mux.Vars(r)
	e.ContractID = vars["contract_id"]
	e.DealID = vars["deal_id"]

	existing, err := h.Repo.Get(r.Context(), e.ContractID, e.DealID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		utils.Error(w, http.StatusNotFound, "Ledger entry not found")
		return
	}

	if err := h.Repo.Update(r.Context(), &e); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, &e)
}

func (h *LedgerHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.Repo.Delete(r.Context(), vars["contract_id"], vars["deal_id"]); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Ledger entry deleted"})
}
