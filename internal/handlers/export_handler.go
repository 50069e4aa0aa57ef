package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"

	"cotton-backend/internal/export"
	"cotton-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// ExportHandler generates export artifacts. Each endpoint writes the file
// into the exports directory and streams it back as an attachment.
type ExportHandler struct {
	Service *export.Service
}

func NewExportHandler(s *export.Service) *ExportHandler {
	return &ExportHandler{Service: s}
}

func (h *ExportHandler) serve(w http.ResponseWriter, r *http.Request, path, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(path))
	http.ServeFile(w, r, path)
}

// ExportWorkbook returns a spreadsheet with one sheet per entity.
func (h *ExportHandler) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	path, err := h.Service.ExportWorkbook(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.serve(w, r, path, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

// ExportContractsCSV returns the contracts table with resolved party names
// and fulfillment figures.
func (h *ExportHandler) ExportContractsCSV(w http.ResponseWriter, r *http.Request) {
	path, err := h.Service.ExportContractsCSV(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.serve(w, r, path, "text/csv")
}

// ExportContractStatement returns the per-contract PDF statement. The
// optional rate query parameter sets the price per maund used in the
// delivery conversion table.
func (h *ExportHandler) ExportContractStatement(w http.ResponseWriter, r *http.Request) {
	contractID := mux.Vars(r)["id"]

	rate := 0.0
	if rateStr := r.URL.Query().Get("rate"); rateStr != "" {
		parsed, err := strconv.ParseFloat(rateStr, 64)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "rate must be a number")
			return
		}
		rate = parsed
	}

	path, err := h.Service.ExportContractStatementPDF(r.Context(), contractID, rate)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.serve(w, r, path, "application/pdf")
}

// ExportSummaryHTML returns the dashboard and contract list as a standalone
// HTML page.
func (h *ExportHandler) ExportSummaryHTML(w http.ResponseWriter, r *http.Request) {
	path, err := h.Service.ExportSummaryHTML(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.serve(w, r, path, "text/html")
}
