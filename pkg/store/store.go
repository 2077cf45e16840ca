// Package store records finished search runs.
//
// Backends:
//   - [NullStore]: discards runs (CLI default)
//   - [MemoryStore]: keeps the most recent runs in process (serve default)
//   - [MongoStore]: persists runs in a MongoDB collection
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Params are the search options a run was made with.
type Params struct {
	Restarts    int    `json:"restarts" bson:"restarts"`
	Width       int    `json:"width" bson:"width"`
	Trials      int    `json:"trials" bson:"trials"`
	SwapBudget  int    `json:"swap_budget" bson:"swap_budget"`
	TabuSize    int    `json:"tabu_size" bson:"tabu_size"`
	Seed        uint64 `json:"seed" bson:"seed"`
	Eligibility string `json:"eligibility" bson:"eligibility"`
}

// Run is one recorded search.
type Run struct {
	ID        string        `json:"id" bson:"_id"`
	Instance  string        `json:"instance" bson:"instance"`
	GraphHash string        `json:"graph_hash" bson:"graph_hash"`
	Vertices  int           `json:"vertices" bson:"vertices"`
	Edges     int           `json:"edges" bson:"edges"`
	Params    Params        `json:"params" bson:"params"`
	Size      int           `json:"size" bson:"size"`
	Clique    []int         `json:"clique" bson:"clique"`
	Valid     bool          `json:"valid" bson:"valid"`
	Cached    bool          `json:"cached" bson:"cached"`
	Elapsed   time.Duration `json:"elapsed" bson:"elapsed"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}

// NewRunID returns a random run ID.
func NewRunID() string { return uuid.NewString() }

// Store persists runs.
type Store interface {
	// Save records run. An empty ID is replaced by [NewRunID] and a zero
	// CreatedAt by the current time.
	Save(ctx context.Context, run *Run) error

	// List returns up to limit runs, newest first. A limit <= 0 uses
	// DefaultListLimit.
	List(ctx context.Context, limit int) ([]Run, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// DefaultListLimit bounds List when no limit is given.
const DefaultListLimit = 50

func prepare(run *Run) {
	if run.ID == "" {
		run.ID = NewRunID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
