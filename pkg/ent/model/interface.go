package model

// Model manages the store schema.
type Model interface {
	// Migrate creates or updates tables in the database.
	Migrate() error
}
