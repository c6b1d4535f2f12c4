package gql

import (
	"go.uber.org/zap"

	apperrors "crm/internal/errors"
)

const internalMessage = "an unexpected error occurred"

// resolverError exposes the taxonomy code to clients under
// "extensions.code".
type resolverError struct {
	message    string
	code       string
	missingIDs []uint
	rowErrors  []string
}

func (e *resolverError) Error() string {
	return e.message
}

func (e *resolverError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.code}
	if len(e.missingIDs) > 0 {
		ext["missingIds"] = e.missingIDs
	}
	if e.rowErrors != nil {
		ext["rowErrors"] = e.rowErrors
	}
	return ext
}

func toResolverError(logger *zap.Logger, err error, rowErrors []string) error {
	code := apperrors.Code(err)
	if code == apperrors.CodeInternal {
		logger.Error("graphql resolver failed", zap.Error(err))
		return &resolverError{message: internalMessage, code: code, rowErrors: rowErrors}
	}

	re := &resolverError{message: err.Error(), code: code, rowErrors: rowErrors}
	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		re.missingIDs = nfe.MissingIDs
	}
	return re
}
