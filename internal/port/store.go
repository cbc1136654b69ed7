package port

import "senti/internal/domain"

// ResultStore persists analysis history for the dashboard.
type ResultStore interface {
	PutAnalysis(a domain.Analysis) error

	// GetAnalysis returns domain.ErrNotFound for unknown IDs.
	GetAnalysis(id string) (domain.Analysis, error)

	// ListAnalyses returns analyses newest first. limit <= 0 means all.
	ListAnalyses(limit int) ([]domain.Analysis, error)

	DeleteAnalysis(id string) error

	Count() (int, error)

	Clear() error

	Close() error
}
