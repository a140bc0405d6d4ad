// internal/api/handler/api/snapshots.go
package api

import (
	"context"
	"io"
	"net/http"

	"github.com/newthinker/journal/internal/api/job"
	"github.com/newthinker/journal/internal/api/response"
	"github.com/newthinker/journal/internal/core"
	"github.com/newthinker/journal/internal/storage/archive"
	"go.uber.org/zap"
)

// SnapshotsHandler exports and imports account snapshots.
type SnapshotsHandler struct {
	archiver *archive.Archiver
	jobs     *job.Store
	metrics  Recorder
	logger   *zap.Logger
}

// NewSnapshotsHandler creates a snapshots handler.
func NewSnapshotsHandler(archiver *archive.Archiver, jobs *job.Store, metrics Recorder, logger *zap.Logger) *SnapshotsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotsHandler{archiver: archiver, jobs: jobs, metrics: orNop(metrics), logger: logger}
}

// Export starts a background export of the account in the path and returns the job.
func (h *SnapshotsHandler) Export(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ctx := context.WithoutCancel(r.Context())

	j := h.jobs.Run(ctx, "export", func(ctx context.Context) (any, error) {
		p, err := h.archiver.Export(ctx, id)
		h.metrics.RecordSnapshot("export", err)
		if err != nil {
			h.logger.Warn("snapshot export failed", zap.String("account_id", id), zap.Error(err))
			return nil, err
		}
		h.logger.Info("snapshot exported", zap.String("account_id", id), zap.String("path", p))
		return map[string]string{"path": p}, nil
	})

	response.JSON(w, http.StatusAccepted, j)
}

// Import restores a snapshot posted as the request body.
func (h *SnapshotsHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, 32*maxBodyBytes))
	if err != nil {
		response.Fail(w, core.WrapError(core.ErrInvalidRequest, err))
		return
	}

	acc, err := h.archiver.Restore(r.Context(), data)
	h.metrics.RecordSnapshot("import", err)
	if err != nil {
		response.Fail(w, err)
		return
	}

	h.logger.Info("snapshot imported", zap.String("account_id", acc.ID))
	response.JSON(w, http.StatusCreated, acc)
}

// List returns the stored snapshot paths.
func (h *SnapshotsHandler) List(w http.ResponseWriter, r *http.Request) {
	paths, err := h.archiver.List(r.Context())
	if err != nil {
		response.Fail(w, core.WrapError(core.ErrStorageFailed, err))
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"snapshots": paths,
		"count":     len(paths),
	})
}

// Job returns the state of a background job.
func (h *SnapshotsHandler) Job(w http.ResponseWriter, r *http.Request) {
	j, err := h.jobs.Get(r.PathValue("id"))
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, j)
}

// Jobs lists recent background jobs.
func (h *SnapshotsHandler) Jobs(w http.ResponseWriter, r *http.Request) {
	jobs := h.jobs.List()
	response.JSON(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"count": len(jobs),
	})
}
