package ports

import (
	"context"

	"github.com/aretw0/portico/pkg/domain"
)

// Submitter delivers a finished record to the external form backend.
// Implementations issue exactly one attempt per call and never retry.
// Failures should be reported as *domain.SubmissionError.
type Submitter interface {
	Submit(ctx context.Context, record domain.SubmissionRecord) error
}
