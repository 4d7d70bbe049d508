// Package store persists named diagrams together with their derived
// equations.
//
// Two backends implement [Store]:
//   - [FileStore]: one JSON file per record, for the CLI
//   - [MongoStore]: a MongoDB collection, for server deployments
//
// # Usage
//
//	st, err := store.NewFileStore("") // ~/.local/share/commute/diagrams
//	rec := &store.Record{Name: "triangle", Diagram: text}
//	if err := st.Save(ctx, rec); err != nil {
//	    return err
//	}
//	fmt.Println(rec.ID) // assigned on first save
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/commute/pkg/errors"
)

// Record is a stored diagram. Diagram holds the diagram in its text form;
// Equations holds the derived lines at the time of saving.
type Record struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Diagram   string    `json:"diagram" bson:"diagram"`
	Equations []string  `json:"equations,omitempty" bson:"equations,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for diagram storage backends.
type Store interface {
	// Save inserts or replaces a record. A record without an ID gets a new
	// one. Save sets the timestamps.
	Save(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID. A missing record is a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns all records, most recently updated first.
	List(ctx context.Context) ([]*Record, error)

	// Delete removes a record. Deleting a missing record is a NOT_FOUND error.
	Delete(ctx context.Context, id string) error

	Close() error
}

// prepare validates rec and fills in its ID and timestamps.
func prepare(rec *Record, now time.Time) error {
	if err := errors.ValidateName(rec.Name); err != nil {
		return err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	} else if err := errors.ValidateID(rec.ID); err != nil {
		return err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "diagram %s not found", id)
}
