package asset

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/coolmint859/prism/common"
	"github.com/coolmint859/prism/engine/renderer/shader"
)

// pendingLoad tracks one in-flight fetch. Waiters block on done; data and
// err are safe to read once done is closed.
type pendingLoad struct {
	done chan struct{}
	data []byte
	err  error
}

// cache is the implementation of the Cache interface.
type cache struct {
	mu sync.Mutex

	root    string
	entries map[string][]byte
	pending map[string]*pendingLoad

	// pool runs fetches off the frame flow. Workers persist between loads,
	// idle-exiting after the configured timeout.
	pool       worker.DynamicWorkerPool
	nextTaskID int
}

// Cache is a coalescing resource cache: each distinct path is fetched at
// most once, a second request for a path already being loaded waits on the
// same in-flight fetch instead of issuing a duplicate, and completed results
// are kept until evicted. The shader program build loads its stage sources
// through this cache.
//
// There is no retry policy here; a failed fetch is returned to every waiter
// and is not cached, so a later Load attempts the fetch again.
type Cache interface {
	// Load returns the bytes of the named resource, fetching it if it is
	// not cached and coalescing with any in-flight fetch for the same path.
	// Blocks until the fetch completes. The returned slice is shared: treat
	// it as read-only.
	//
	// Parameters:
	//   - path: the resource path, relative to the cache root
	//
	// Returns:
	//   - []byte: the resource contents
	//   - error: the fetch failure, if any
	Load(path string) ([]byte, error)

	// Evict drops a cached entry so the next Load fetches it again.
	//
	// Parameters:
	//   - path: the resource path to drop
	Evict(path string)

	// Len returns the number of completed cached entries.
	Len() int
}

var _ Cache = &cache{}

// NewCache creates a Cache with the provided options applied.
//
// Parameters:
//   - options: variadic CacheBuilderOption functions
//
// Returns:
//   - Cache: the configured cache
func NewCache(options ...CacheBuilderOption) Cache {
	c := &cache{
		entries: make(map[string][]byte),
		pending: make(map[string]*pendingLoad),
	}
	workers := 2
	for _, opt := range options {
		opt(c, &workers)
	}
	// Queue size 64 covers a full scene's worth of shader documents with headroom.
	c.pool = worker.NewDynamicWorkerPool(workers, 64, 1*time.Second)
	return c
}

func (c *cache) Load(path string) ([]byte, error) {
	c.mu.Lock()
	if data, ok := c.entries[path]; ok {
		c.mu.Unlock()
		return data, nil
	}
	if p, ok := c.pending[path]; ok {
		c.mu.Unlock()
		<-p.done
		return p.data, p.err
	}

	p := &pendingLoad{done: make(chan struct{})}
	c.pending[path] = p
	id := c.nextTaskID
	c.nextTaskID++
	c.mu.Unlock()

	full := path
	if c.root != "" {
		full = filepath.Join(c.root, path)
	}
	c.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			data, err := os.ReadFile(full)
			if err != nil {
				err = fmt.Errorf("asset: failed to load %q: %w", path, err)
			}
			c.mu.Lock()
			p.data = data
			p.err = err
			if err == nil {
				c.entries[path] = data
			}
			delete(c.pending, path)
			c.mu.Unlock()
			close(p.done)
			if err != nil {
				common.Logger().Error("asset load failed", "path", path, "error", err)
			}
			return nil, err
		},
	})

	<-p.done
	return p.data, p.err
}

func (c *cache) Evict(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

func (c *cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// LoadShaderPair loads and decodes a shader pair manifest and both of its
// per-stage schema documents through the cache. The manifest's stage source
// paths override the schema documents' own source fields when present.
//
// Parameters:
//   - c: the cache to load through
//   - manifestPath: the path of the pair manifest document
//
// Returns:
//   - *shader.Manifest: the decoded manifest
//   - *shader.Schema: the vertex stage schema
//   - *shader.Schema: the fragment stage schema
//   - error: the first load or decode failure
func LoadShaderPair(c Cache, manifestPath string) (*shader.Manifest, *shader.Schema, *shader.Schema, error) {
	data, err := c.Load(manifestPath)
	if err != nil {
		return nil, nil, nil, err
	}
	manifest, err := shader.DecodeManifest(data)
	if err != nil {
		return nil, nil, nil, err
	}

	vert, err := loadStageSchema(c, manifest.Vertex, shader.StageVertex)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("shader pair %q: %w", manifest.Name, err)
	}
	frag, err := loadStageSchema(c, manifest.Fragment, shader.StageFragment)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("shader pair %q: %w", manifest.Name, err)
	}
	return manifest, vert, frag, nil
}

func loadStageSchema(c Cache, paths shader.StagePaths, stage shader.Stage) (*shader.Schema, error) {
	data, err := c.Load(paths.Schema)
	if err != nil {
		return nil, err
	}
	s, err := shader.DecodeSchema(data, stage)
	if err != nil {
		return nil, err
	}
	if paths.Source != "" {
		s.SourcePath = paths.Source
	}
	return s, nil
}
