package connection

import (
	"sync"

	"github.com/chirp-protocol/chirp-go/pkg/stanza"
)

type featureKey struct {
	space string
	local string
}

// FeatureSet stores the stream features announced by the server, keyed by
// namespace and local name. It is safe for concurrent use.
type FeatureSet struct {
	mu sync.RWMutex
	m  map[featureKey]stanza.ExtensionElement
}

// NewFeatureSet creates an empty feature set.
func NewFeatureSet() *FeatureSet {
	return &FeatureSet{m: make(map[featureKey]stanza.ExtensionElement)}
}

// Add registers an announced feature, replacing any previous announcement
// with the same namespace and name.
func (fs *FeatureSet) Add(f stanza.ExtensionElement) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.m[featureKey{space: f.Namespace(), local: f.ElementName()}] = f
}

// Has reports whether a feature with the given namespace and local name
// was announced.
func (fs *FeatureSet) Has(space, local string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	_, ok := fs.m[featureKey{space: space, local: local}]
	return ok
}

// Get returns the announced feature element, if any.
func (fs *FeatureSet) Get(space, local string) (stanza.ExtensionElement, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	f, ok := fs.m[featureKey{space: space, local: local}]
	return f, ok
}

// List returns all announced features in unspecified order.
func (fs *FeatureSet) List() []stanza.ExtensionElement {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	out := make([]stanza.ExtensionElement, 0, len(fs.m))
	for _, f := range fs.m {
		out = append(out, f)
	}
	return out
}
