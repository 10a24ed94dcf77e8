// Package models defines the data structures for the credit report analyzer.
package models

import (
	"errors"
)

// Common errors
var (
	ErrMissingName      = errors.New("invalid XML structure: applicant name not found")
	ErrReportNotFound   = errors.New("report not found")
	ErrInvalidReportID  = errors.New("invalid report ID format")
	ErrEmptySearchQuery = errors.New("search query is required")
)
