// Package ai defines the optional narrative reviewer of scored postings.
package ai

import (
	"context"

	"github.com/spigell/job-fit/internal/fit"
	"github.com/spigell/job-fit/internal/posting"
	"github.com/spigell/job-fit/internal/skills"
)

// Input is everything a reviewer may see about one scored posting.
type Input struct {
	Source  string         `json:"source"`
	Posting posting.Record `json:"posting"`
	Fit     fit.Result     `json:"job_fit"`
	Skills  skills.Result  `json:"skills_match"`
}

// Review is a short narrative over finished scores.
type Review struct {
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights,omitempty"`
	Concerns   []string `json:"concerns,omitempty"`
	Raw        string   `json:"-"`
}

// Reviewer phrases a review of a scored posting. Implementations must not
// alter or recompute the scores they are given.
type Reviewer interface {
	Review(ctx context.Context, in Input) (*Review, error)
}
