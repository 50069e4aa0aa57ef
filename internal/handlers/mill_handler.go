package handlers

import (
	"encoding/json"
	"net/http"

	"cotton-backend/internal/models"
	"cotton-backend/internal/repositories"
	"cotton-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type MillHandler struct {
	Repo *repositories.MillRepository
}

func NewMillHandler(repo *repositories.MillRepository) *MillHandler {
	return &MillHandler{Repo: repo}
}

func (h *MillHandler) ListMills(w http.ResponseWriter, r *http.Request) {
	mills, err := h.Repo.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, mills)
}

func (h *MillHandler) GetMill(w http.ResponseWriter, r *http.Request) {
	mill, err := h.Repo.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if mill == nil {
		utils.Error(w, http.StatusNotFound, "Mill not found")
		return
	}
	utils.JSON(w, http.StatusOK, mill)
}

func (h *MillHandler) CreateMill(w http.ResponseWriter, r *http.Request) {
	var m models.Mill
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if m.MillID == "" || m.MillName == "" {
		utils.Error(w, http.StatusBadRequest, "mill_id and mill_name are required")
		return
	}

	existing, err := h.Repo.GetByID(r.Context(), m.MillID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing != nil {
		utils.Error(w, http.StatusConflict, "Mill already exists")
		return
	}

	if err := h.Repo.Create(r.Context(), &m); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, &m)
}

func (h *MillHandler) UpdateMill(w http.ResponseWriter, r *http.Request) {
	var m models.Mill
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	m.MillID = mux.Vars(r)["id"]

	existing, err := h.Repo.GetByID(r.Context(), m.MillID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		utils.Error(w, http.StatusNotFound, "Mill not found")
		return
	}

	if err := h.Repo.Update(r.Context(), &m); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, &m)
}

func (h *MillHandler) DeleteMill(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Mill deleted"})
}
