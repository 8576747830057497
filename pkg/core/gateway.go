package core

import "context"

// Gateway defines the contract for the remote record API.
// Adhering to this interface keeps the core independent of the transport
// (REST endpoint, in-memory fixture, ...).
type Gateway interface {
	// List returns all records.
	List(ctx context.Context) ([]Record, error)

	// Get retrieves a record by its ID.
	Get(ctx context.Context, id string) (Record, error)

	// Create stores a new record. The ID of r is ignored; the API assigns one.
	Create(ctx context.Context, r Record) (Record, error)

	// Update applies a partial update and returns the record as stored.
	Update(ctx context.Context, id string, p Patch) (Record, error)

	// Delete removes a record by its ID.
	Delete(ctx context.Context, id string) error

	// Initialize checks that the gateway is ready to serve requests.
	Initialize(ctx context.Context) error
}
