package intent

import "sync"

// Fingerprint identifies the dataset a model was trained on. Two calls with
// the same workout and label counts reuse the cached model.
type Fingerprint struct {
	Workouts int
	Labels   int
}

// ModelCache holds trained models keyed by dataset fingerprint. Injected
// explicitly; there is no ambient singleton.
type ModelCache struct {
	mu      sync.Mutex
	entries map[Fingerprint]cacheEntry
}

type cacheEntry struct {
	model   Model
	metrics TrainingMetrics
}

func NewModelCache() *ModelCache {
	return &ModelCache{entries: make(map[Fingerprint]cacheEntry)}
}

// Get returns the cached model and its training metrics for a fingerprint.
func (c *ModelCache) Get(fp Fingerprint) (Model, TrainingMetrics, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[fp]
	return e.model, e.metrics, ok
}

// Put stores a model under a fingerprint.
func (c *ModelCache) Put(fp Fingerprint, m Model, metrics TrainingMetrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fp] = cacheEntry{model: m, metrics: metrics}
}
