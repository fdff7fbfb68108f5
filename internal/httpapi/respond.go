package httpapi

import (
	"encoding/json"
	"errors"
	"github.com/gorilla/mux"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/sirupsen/logrus"
	"net/http"
	"strconv"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	resp := errorResponse{Error: err.Error()}

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
		resp.Field = ve.Field
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrOutOfStock):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNetworkFailure):
		status = http.StatusBadGateway
	case errors.Is(err, domain.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		s.log.WithError(err).WithFields(logrus.Fields{
			"path":   r.URL.Path,
			"status": status,
		}).Error("request failed")
	}

	writeJSON(w, status, resp)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: "id", Reason: "must be a positive integer"}
	}
	return id, nil
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return ve
		}
		return &domain.ValidationError{Field: "body", Reason: "is not valid JSON"}
	}
	return nil
}
