package importer

import "github.com/rs/zerolog/log"

// Report summarizes one import batch: how many source records resolved
// and were upserted, how many were skipped on a resolution miss, and
// how many failed to parse. Batches succeed with misses; only
// infrastructure errors abort them.
type Report struct {
	Importer string
	Resolved int
	Skipped  int
	Failed   int
}

// Merge folds another report's counts into this one
func (r *Report) Merge(other *Report) {
	r.Resolved += other.Resolved
	r.Skipped += other.Skipped
	r.Failed += other.Failed
}

// Log writes the report as a structured summary line
func (r *Report) Log() {
	log.Info().
		Str("importer", r.Importer).
		Int("resolved", r.Resolved).
		Int("skipped", r.Skipped).
		Int("failed", r.Failed).
		Msg("Import batch complete")
}
