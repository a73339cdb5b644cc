// Package memory provides in-memory implementations of the storage ports.
//
// These back tests and dry runs. Durable task persistence belongs to the
// surrounding framework, behind the driven.TaskStore boundary.
package memory
