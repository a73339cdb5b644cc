// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Connector: Fetches task records from a remote service
//   - ConnectorFactory: Creates connectors from configuration
//   - TaskStore: Task record persistence (the framework's store boundary)
//   - SourceStore: Source configuration persistence
//   - SecretResolver: Secure-store lookup for oracle credential references
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
