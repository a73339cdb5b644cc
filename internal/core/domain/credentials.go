package domain

import "strings"

// OracleMarker prefixes a configured password that names a secret in the
// secure store instead of embedding it literally.
const OracleMarker = "@oracle:"

// Credential is a resolved authentication pair for a remote service.
// Immutable once resolved; held for the lifetime of one sync run.
type Credential struct {
	// Identity is the login name presented to the remote service.
	Identity string

	// Secret is the resolved password or token.
	Secret string
}

// IsOracle reports whether a configured password value is an oracle
// reference rather than a literal secret.
func IsOracle(password string) bool {
	return strings.HasPrefix(password, OracleMarker)
}

// OracleName returns the lookup name carried by an oracle reference,
// or the empty string if the value is not an oracle reference.
func OracleName(password string) string {
	if !IsOracle(password) {
		return ""
	}
	return strings.TrimPrefix(password, OracleMarker)
}
