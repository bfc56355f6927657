package repository

import "loan-qualifier/domain"

type QualificationRepository interface {
	Save(applicant domain.Applicant, result domain.QualificationResult) error
}
