package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"caseflow/pkg/types"

	"github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error string `json:"error"`
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body", types.ErrValidation)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondError maps the service error taxonomy onto HTTP statuses:
// not-found sentinels become 404, validation becomes 400, anything else is
// a 500 with the detail kept out of the response body.
func respondError(w http.ResponseWriter, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, types.ErrDocumentNotFound),
		errors.Is(err, types.ErrFileMetadataNotFound),
		errors.Is(err, types.ErrCaseNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, types.ErrValidation):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		logger.WithError(err).Error("request failed")
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
