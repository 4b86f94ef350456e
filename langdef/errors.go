package langdef

import (
	"github.com/ava12/ucum"
)

// Error codes used by langdef:
const (
	// EmptyCatalogError indicates that catalog contains no unit atoms.
	EmptyCatalogError = ucum.ConfigErrors + 10 + iota

	// DuplicateCodeError indicates the same code listed twice in one terminal class
	// or listed as both metric and non-metric unit.
	DuplicateCodeError

	// BadCodeError indicates empty code or code containing characters reserved by the grammar.
	BadCodeError
)

func emptyCatalogError() *ucum.Error {
	return ucum.FormatError(EmptyCatalogError, "catalog contains no unit atoms")
}

func duplicateCodeError(class, code string) *ucum.Error {
	return ucum.FormatError(DuplicateCodeError, "duplicate %s code %q", class, code)
}

func badCodeError(class, code string) *ucum.Error {
	return ucum.FormatError(BadCodeError, "bad %s code %q", class, code)
}
