package asset

// CacheBuilderOption is a function that configures a cache instance during
// construction.
type CacheBuilderOption func(c *cache, workers *int)

// WithRoot is an option builder that sets the directory all resource paths
// are resolved against.
//
// Parameters:
//   - dir: the root directory for resource paths
//
// Returns:
//   - CacheBuilderOption: a function that applies the root option
func WithRoot(dir string) CacheBuilderOption {
	return func(c *cache, _ *int) {
		c.root = dir
	}
}

// WithWorkers is an option builder that sets the number of background fetch
// workers. Values below 1 keep the default.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - CacheBuilderOption: a function that applies the worker count option
func WithWorkers(n int) CacheBuilderOption {
	return func(_ *cache, workers *int) {
		if n >= 1 {
			*workers = n
		}
	}
}
