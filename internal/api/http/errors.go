package httpapi

import (
	"errors"
	"net/http"

	"github.com/estate-hub/estate-hub/internal/domain/estate"
)

// respondDomainError maps a domain error onto the HTTP surface.
func respondDomainError(w http.ResponseWriter, err error) {
	var validation *estate.ValidationError
	var transition *estate.TransitionError
	var conflict *estate.ConflictError
	var noRule *estate.NoApplicableRuleError
	var config *estate.ConfigurationError
	var notFound *estate.NotFoundError

	switch {
	case errors.As(err, &validation):
		respondError(w, http.StatusBadRequest, "VALIDATION_FAILED", validation.Error())
	case errors.As(err, &transition):
		respondError(w, http.StatusConflict, "INVALID_TRANSITION", transition.Error())
	case errors.As(err, &conflict):
		respondError(w, http.StatusConflict, "CONFLICT", conflict.Error())
	case errors.As(err, &noRule):
		respondError(w, http.StatusUnprocessableEntity, "NO_APPLICABLE_RULE", noRule.Error())
	case errors.As(err, &config):
		respondError(w, http.StatusInternalServerError, "CONFIGURATION_ERROR", config.Error())
	case errors.As(err, &notFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", notFound.Error())
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
