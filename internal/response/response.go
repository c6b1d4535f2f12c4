package response

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"crm/internal/dto"
	apperrors "crm/internal/errors"
)

// TraceID reuses the request id set by the router middleware when present.
func TraceID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return uuid.New().String()
}

func WriteJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func WriteValidationError(w http.ResponseWriter, logger *zap.Logger, traceID, message string, details ...apperrors.ValidationDetail) {
	WriteJSON(w, logger, http.StatusBadRequest, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    http.StatusBadRequest,
		Code:      "VALIDATION_ERROR",
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}

// WriteError maps a service error onto its HTTP status. Errors outside the
// taxonomy are logged and answered with a generic 500.
func WriteError(w http.ResponseWriter, logger *zap.Logger, traceID string, err error) {
	WriteErrorWithRows(w, logger, traceID, err, nil)
}

// WriteErrorWithRows is WriteError for bulk calls whose row errors must
// survive a storage failure.
func WriteErrorWithRows(w http.ResponseWriter, logger *zap.Logger, traceID string, err error, rowErrors []string) {
	resp := dto.ErrorResponse{
		TraceID:   traceID,
		Code:      apperrors.Code(err),
		Message:   err.Error(),
		RowErrors: rowErrors,
		Timestamp: time.Now().UTC(),
	}

	if fe, ok := apperrors.IsInvalidFormatError(err); ok {
		resp.Status = http.StatusBadRequest
		resp.Details = []apperrors.ValidationDetail{{Field: fe.Field, Message: fe.Message}}
	} else if re, ok := apperrors.IsOutOfRangeError(err); ok {
		resp.Status = http.StatusBadRequest
		resp.Details = []apperrors.ValidationDetail{{Field: re.Field, Message: re.Message}}
	} else if _, ok := apperrors.IsInvalidInputError(err); ok {
		resp.Status = http.StatusBadRequest
	} else if ve, ok := apperrors.IsValidationError(err); ok {
		resp.Status = http.StatusBadRequest
		resp.Details = ve.Details
	} else if de, ok := apperrors.IsDuplicateKeyError(err); ok {
		resp.Status = http.StatusConflict
		resp.Details = []apperrors.ValidationDetail{{Field: de.Field, Message: de.Message}}
	} else if nfe, ok := apperrors.IsNotFoundError(err); ok {
		resp.Status = http.StatusNotFound
		resp.MissingIDs = nfe.MissingIDs
	} else {
		logger.Error("unexpected error", zap.String("traceId", traceID), zap.Error(err))
		resp.Status = http.StatusInternalServerError
		resp.Code = apperrors.CodeInternal
		resp.Message = "an unexpected error occurred"
	}

	WriteJSON(w, logger, resp.Status, resp)
}

// DecodeJSON decodes the request body into dst and rejects unknown fields.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
