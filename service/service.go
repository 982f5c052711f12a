// Package service runs the viewer's optional background subsystems (audio,
// status endpoint, file watcher) under one start/stop lifecycle.
package service

// Service defines the lifecycle interface for background subsystems
//
// Lifecycle:
//  1. Construction (via the owning package)
//  2. Start() - acquire resources, launch goroutines
//  3. [runtime operation]
//  4. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Start before this one
	Dependencies() []string

	// Start begins service operation
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent
	Stop() error
}
