package property

import (
	"net/http"

	"github.com/KOMKZ/property-catalog/errcode"
)

// ModuleCode property module code
const ModuleCode = 20

// Business codes: 20xxxx
const (
	ErrCodeNotFound  = 1
	ErrCodeInvalidID = 2
)

var (
	// ErrPropertyNotFound requested property does not exist in the durable
	// store. A sentinel outcome, not a fault: callers check with errors.Is.
	ErrPropertyNotFound = errcode.Register(errcode.New(
		ModuleCode, ErrCodeNotFound,
		"property", "error.property.not_found", "property not found",
		http.StatusNotFound,
	))

	// ErrInvalidPropertyID malformed property identifier
	ErrInvalidPropertyID = errcode.Register(errcode.New(
		ModuleCode, ErrCodeInvalidID,
		"property", "error.property.invalid_id", "invalid property id",
		http.StatusBadRequest,
	))
)
