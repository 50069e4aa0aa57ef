package handlers

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"time"

	"cotton-backend/internal/backup"
	"cotton-backend/pkg/utils"
)

type BackupHandler struct {
	Service *backup.Service
}

func NewBackupHandler(s *backup.Service) *BackupHandler {
	return &BackupHandler{Service: s}
}

// CreateBackup writes a backup file. An optional "since" timestamp in the
// body switches to an incremental backup.
func (h *BackupHandler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Since string `json:"since"`
	}
	// An empty body means a full backup.
	_ = json.NewDecoder(r.Body).Decode(&req)

	var opts backup.Options
	if req.Since != "" {
		since, err := time.Parse(time.RFC3339, req.Since)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "since must be an RFC3339 timestamp")
			return
		}
		opts.Since = since
	}

	result := h.Service.Backup(r.Context(), opts)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	utils.JSON(w, status, result)
}

func (h *BackupHandler) ListBackups(w http.ResponseWriter, r *http.Request) {
	infos, err := h.Service.List()
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, infos)
}

// RestoreBackup merges a named backup file from the backup directory into
// the live store. The name is restricted to a bare filename so the endpoint
// cannot be pointed at arbitrary paths.
func (h *BackupHandler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Filename == "" || req.Filename != filepath.Base(req.Filename) || filepath.Ext(req.Filename) != backup.FileExt {
		utils.Error(w, http.StatusBadRequest, "filename must be a backup file in the backup directory")
		return
	}

	result := h.Service.Restore(r.Context(), filepath.Join(h.Service.Dir, req.Filename))
	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	utils.JSON(w, status, result)
}

// DownloadBackup streams a backup file for off-machine safekeeping.
func (h *BackupHandler) DownloadBackup(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("filename")
	if name == "" || name != filepath.Base(name) || filepath.Ext(name) != backup.FileExt {
		utils.Error(w, http.StatusBadRequest, "filename must be a backup file in the backup directory")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", "attachment; filename="+name)
	http.ServeFile(w, r, filepath.Join(h.Service.Dir, name))
}
