// Package store persists rendered drawings for the HTTP API.
//
// Two backends are provided: MongoStore for deployments and MemoryStore
// for tests and single-process servers. Both implement the Store
// interface and report missing drawings with ErrCodeDrawingNotFound.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/strandlab/rnaplot/pkg/errors"
)

// Drawing is one persisted render result.
type Drawing struct {
	ID          string    `bson:"_id" json:"id"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	Structure   string    `bson:"structure" json:"structure"`
	Sequence    string    `bson:"sequence,omitempty" json:"sequence,omitempty"`
	Format      string    `bson:"format" json:"format"`
	Artifact    []byte    `bson:"artifact" json:"artifact,omitempty"`
	LayoutHash  string    `bson:"layout_hash" json:"layout_hash"`
	Nucleotides int       `bson:"nucleotides" json:"nucleotides"`
	Pairs       int       `bson:"pairs" json:"pairs"`
}

// Store persists drawings.
type Store interface {
	// Put stores a drawing. An empty ID is filled with a fresh UUID.
	Put(ctx context.Context, d *Drawing) error

	// Get fetches a drawing by ID.
	Get(ctx context.Context, id string) (*Drawing, error)

	// List returns the most recent drawings, newest first, without
	// artifact payloads.
	List(ctx context.Context, limit int) ([]*Drawing, error)

	// Delete removes a drawing by ID.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// DefaultListLimit bounds List when the caller passes limit <= 0.
const DefaultListLimit = 50

// NewID returns a fresh drawing ID.
func NewID() string {
	return uuid.NewString()
}

// notFound builds the standard missing-drawing error.
func notFound(id string) error {
	return errors.New(errors.ErrCodeDrawingNotFound, "drawing %q not found", id)
}

// prepare fills generated fields before a Put.
func prepare(d *Drawing) {
	if d.ID == "" {
		d.ID = NewID()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
}
