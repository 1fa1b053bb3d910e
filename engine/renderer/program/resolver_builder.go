package program

// ResolverBuilderOption is a function that configures a resolver during
// construction.
type ResolverBuilderOption func(*resolver)

// WithFallback is an option builder that sets the name of the always-present
// program BestFit returns when nothing clears the threshold.
//
// Parameters:
//   - name: the fallback program name
//
// Returns:
//   - ResolverBuilderOption: a function that applies the fallback option
func WithFallback(name string) ResolverBuilderOption {
	return func(r *resolver) {
		if name != "" {
			r.fallback = name
		}
	}
}

// WithScoring is an option builder that replaces the best-fit scoring
// constants. Weights must be non-negative; zero-weight configs score every
// program zero and always select the fallback.
//
// Parameters:
//   - cfg: the scoring weights and acceptance threshold
//
// Returns:
//   - ResolverBuilderOption: a function that applies the scoring option
func WithScoring(cfg ScoringConfig) ResolverBuilderOption {
	return func(r *resolver) {
		r.scoring = cfg
	}
}
