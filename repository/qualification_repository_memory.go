package repository

import (
	"sync"
	"time"

	"loan-qualifier/domain"
)

// QualificationRun is one recorded qualification.
type QualificationRun struct {
	Applicant  domain.Applicant
	Result     domain.QualificationResult
	RecordedAt time.Time
}

// QualificationRepositoryMemory is an in-memory implementation of QualificationRepository.
type QualificationRepositoryMemory struct {
	mu   sync.Mutex
	runs []QualificationRun
}

// NewQualificationRepositoryMemory creates a new in-memory run history.
func NewQualificationRepositoryMemory() *QualificationRepositoryMemory {
	return &QualificationRepositoryMemory{
		runs: []QualificationRun{},
	}
}

// Save stores the qualification run in memory.
func (r *QualificationRepositoryMemory) Save(
	applicant domain.Applicant,
	result domain.QualificationResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.runs = append(r.runs, QualificationRun{
		Applicant:  applicant,
		Result:     result,
		RecordedAt: time.Now(),
	})
	return nil
}

// Runs returns the recorded runs, oldest first.
func (r *QualificationRepositoryMemory) Runs() []QualificationRun {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]QualificationRun, len(r.runs))
	copy(out, r.runs)
	return out
}
