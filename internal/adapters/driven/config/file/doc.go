// Package file provides file-based configuration storage.
//
// Application settings and source definitions live together in a single
// TOML file under the taskpull config directory (~/.taskpull by default).
package file
