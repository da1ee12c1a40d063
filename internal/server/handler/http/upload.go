package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/optifin/optifin/internal/middleware"
	"github.com/optifin/optifin/internal/models"
	"github.com/optifin/optifin/internal/statement"
	"go.uber.org/zap"
)

// maxStatementBytes bounds the multipart statement upload.
const maxStatementBytes = 10 << 20

// UploadHandler receives a bank statement as a multipart CSV file, parses
// it into the session, and responds with the resulting view.
type UploadHandler struct {
	// Interact renders the post-upload view.
	Interact *InteractHandler
	// Log records parse failures.
	Log *zap.Logger
}

// Upload handles POST /api/upload. The statement must be sent as the
// multipart file field "statement". Malformed statements become a notice
// on the upload page, not an error status.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	state := middleware.StateFromContext(r.Context())
	if state == nil {
		http.Error(w, "no session", http.StatusInternalServerError)
		return
	}

	if err := r.ParseMultipartForm(maxStatementBytes); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("statement")
	if err != nil {
		http.Error(w, "statement file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := statement.Parse(file)

	state.Lock()
	switch {
	case errors.Is(err, statement.ErrMalformedInput):
		h.Log.Info("rejected statement upload", zap.Error(err))
		state.Notice = err.Error()
		state.CurrentPage = models.PageUpload
	case err != nil:
		h.Log.Error("statement parse failed", zap.Error(err))
		state.Notice = "could not read statement"
		state.CurrentPage = models.PageUpload
	default:
		state.Statement = rows
		state.Notice = fmt.Sprintf("parsed %d transaction(s)", len(rows))
		state.CurrentPage = models.PageDashboard
	}
	view := h.Interact.Router.Run(state, nil)
	state.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(view)
}
