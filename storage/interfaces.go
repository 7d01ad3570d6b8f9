package storage

import "pricewatch/models"

// ViolationAppender is the cumulative report sink shared by all runs.
// Append must be atomic per record so concurrent runs never interleave rows.
type ViolationAppender interface {
	Append(violations []models.Violation) error
	Close() error
}

// ViolationStore is the interface any persistence backend must satisfy.
type ViolationStore interface {
	Write(violations []models.Violation) error
	FetchAll() ([]models.Violation, error)
	Close() error
}
