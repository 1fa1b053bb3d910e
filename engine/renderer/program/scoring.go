package program

import "github.com/coolmint859/prism/engine/renderer/shader"

// ScoringConfig holds the tunable constants of best-fit selection. The
// defaults come from the original tuning: exclusivity weighted 2.5x over
// inclusivity, so a program that closely matches a renderable's exact
// feature set beats a superset program, and a 0.75 acceptance floor below
// which the fallback program is used.
type ScoringConfig struct {
	// InclusionWeight scales the inclusivity term: how much of what the
	// renderable needs the program provides.
	InclusionWeight float64

	// ExclusionWeight scales the exclusivity term: how much of what the
	// program offers is actually used.
	ExclusionWeight float64

	// Threshold is the minimum combined score a program must strictly
	// exceed to be selected over the fallback.
	Threshold float64
}

// DefaultScoringConfig returns the reference tuning (1 : 2.5 weights,
// threshold 0.75).
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		InclusionWeight: 1.0,
		ExclusionWeight: 2.5,
		Threshold:       0.75,
	}
}

// ScoreEntry records one program's scores against a candidate capability
// list.
type ScoreEntry struct {
	// Program is the scored program's name.
	Program string

	// Inclusivity is the fraction of candidate capabilities the program
	// recognizes.
	Inclusivity float64

	// Exclusivity is the fraction of the program's own capabilities the
	// candidate set exercises.
	Exclusivity float64

	// Combined is the weighted average of the two terms.
	Combined float64
}

// ScoreTrace is the structured record of one BestFit evaluation, returned
// alongside the selected name so tests and tooling can assert on
// intermediate scores without scraping logs.
type ScoreTrace struct {
	// Candidates is the capability list that was scored.
	Candidates []string

	// Entries holds per-program scores in registration order.
	Entries []ScoreEntry

	// Selected is the chosen program name.
	Selected string

	// UsedFallback is true when no program cleared the threshold and the
	// fallback was returned.
	UsedFallback bool
}

// scoreTable computes the inclusivity and exclusivity of one program's
// capability table against a candidate capability list.
//
// Inclusivity counts candidates the table recognizes. Exclusivity maps each
// recognized candidate to its capability and counts how many of the table's
// own capabilities that covers.
func scoreTable(t *shader.CapabilityTable, candidates []string) (inclusivity, exclusivity float64) {
	if len(candidates) == 0 {
		return 0, 0
	}
	covered := make(map[string]bool, len(candidates))
	matched := 0
	for _, c := range candidates {
		if !t.Recognizes(c) {
			continue
		}
		matched++
		if cap, ok := t.CapabilityOf(c); ok {
			covered[cap] = true
		}
	}
	inclusivity = float64(matched) / float64(len(candidates))

	own := t.Capabilities()
	if len(own) == 0 {
		return inclusivity, 0
	}
	used := 0
	for _, c := range own {
		if covered[c] {
			used++
		}
	}
	exclusivity = float64(used) / float64(len(own))
	return inclusivity, exclusivity
}

// combine folds the two terms into the weighted average score.
func (c ScoringConfig) combine(inclusivity, exclusivity float64) float64 {
	total := c.InclusionWeight + c.ExclusionWeight
	if total == 0 {
		return 0
	}
	return (c.InclusionWeight*inclusivity + c.ExclusionWeight*exclusivity) / total
}
