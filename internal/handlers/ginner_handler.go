package handlers

import (
	"encoding/json"
	"net/http"

	"cotton-backend/internal/models"
	"cotton-backend/internal/repositories"
	"cotton-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type GinnerHandler struct {
	Repo *repositories.GinnerRepository
}

func NewGinnerHandler(repo *repositories.GinnerRepository) *GinnerHandler {
	return &GinnerHandler{Repo: repo}
}

func (h *GinnerHandler) ListGinners(w http.ResponseWriter, r *http.Request) {
	ginners, err := h.Repo.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, ginners)
}

func (h *GinnerHandler) GetGinner(w http.ResponseWriter, r *http.Request) {
	ginner, err := h.Repo.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if ginner == nil {
		utils.Error(w, http.StatusNotFound, "Ginner not found")
		return
	}
	utils.JSON(w, http.StatusOK, ginner)
}

func (h *GinnerHandler) CreateGinner(w http.ResponseWriter, r *http.Request) {
	var g models.Ginner
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if g.GinnerID == "" || g.GinnerName == "" {
		utils.Error(w, http.StatusBadRequest, "ginner_id and ginner_name are required")
		return
	}

	existing, err := h.Repo.GetByID(r.Context(), g.GinnerID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing != nil {
		utils.Error(w, http.StatusConflict, "Ginner already exists")
		return
	}

	if err := h.Repo.Create(r.Context(), &g); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, &g)
}

func (h *GinnerHandler) UpdateGinner(w http.ResponseWriter, r *http.Request) {
	var g models.Ginner
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	g.GinnerID = mux.Vars(r)["id"]

	existing, err := h.Repo.GetByID(r.Context(), g.GinnerID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		utils.Error(w, http.StatusNotFound, "Ginner not found")
		return
	}

	if err := h.Repo.Update(r.Context(), &g); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, &g)
}

func (h *GinnerHandler) DeleteGinner(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Ginner deleted"})
}
