// Package services contains the core application services.
//
// Services implement the driving ports and depend only on domain types and
// driven ports (plus connector constructors for builtin registration).
package services
