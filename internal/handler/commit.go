package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "docintake/internal/domain/services/docsystem"
	"docintake/internal/httputil"
)

// respondCommit runs a workspace mutation and writes its CommitResult.
// Warnings do not change the status: the commit already happened.
func respondCommit(w http.ResponseWriter, r *http.Request, logger *slog.Logger, call func() (*docsysSvc.CommitResult, error)) {
	result, err := call()
	if err != nil {
		logger.Debug("mutation rejected", "path", r.URL.Path, "error", err)
		handleError(w, err)
		return
	}
	if len(result.Warnings) > 0 {
		logger.Warn("mutation committed with warnings",
			"path", r.URL.Path,
			"revision", result.Revision,
			"warnings", result.Warnings,
		)
	}
	httputil.RespondJSON(w, http.StatusOK, result)
}
