package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer derives cache keys.
type Keyer interface {
	// ResultKey identifies a search result for a graph and search options.
	ResultKey(graphHash string, opts ResultKeyOpts) string

	// ArtifactKey identifies a rendered drawing of a result.
	ArtifactKey(resultHash string, opts ArtifactKeyOpts) string
}

// ResultKeyOpts holds every option that changes the search trajectory.
// Callbacks and debug switches do not belong here.
type ResultKeyOpts struct {
	Restarts    int    `json:"restarts"`
	Width       int    `json:"width"`
	Trials      int    `json:"trials"`
	SwapBudget  int    `json:"swap_budget"`
	TabuSize    int    `json:"tabu_size"`
	Seed        uint64 `json:"seed"`
	Eligibility string `json:"eligibility"`
}

// ArtifactKeyOpts identifies the output format of a rendered result.
type ArtifactKeyOpts struct {
	Format string `json:"format"` // "dot" or "svg"
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ResultKey returns "result:<sha256>".
func (DefaultKeyer) ResultKey(graphHash string, opts ResultKeyOpts) string {
	return hashKey("result", graphHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", resultHash, opts)
}

var _ Keyer = DefaultKeyer{}

// ScopedKeyer namespaces an inner [Keyer] so that several deployments can
// share one Redis:
//
//	k := cache.NewScopedKeyer(nil, "tabuclique:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or [DefaultKeyer] when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ResultKey(graphHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(graphHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(resultHash, opts)
}

// hashKey returns kind + ":" + the SHA-256 of parts encoded as a JSON array.
// parts are plain structs and strings, so encoding cannot fail.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}

// Hash is the lowercase hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON hashes the JSON encoding of v.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}
