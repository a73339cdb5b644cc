// Package domain contains the core business types for taskpull.
//
// Domain types have no dependencies on infrastructure, adapters, or
// external libraries. They represent the ubiquitous language of the
// application: sources, credentials, and normalised task records.
package domain
