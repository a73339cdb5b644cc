// Package bitbucket implements the Bitbucket connector.
//
// It pulls issues and their comment threads from the Bitbucket 1.0 REST API
// and maps them into normalised task records. The API surface used is small
// and unpaginated:
//
//   - GET /users/{username}/ - repositories owned by the user
//   - GET /repositories/{owner}/{slug}/issues/ - issue listing
//   - GET /repositories/{owner}/{slug}/issues/{id}/comments - comment thread
//
// Authentication is HTTP basic auth when a credential is configured,
// anonymous otherwise. All fetching is strictly sequential and fail-fast:
// a single non-200 response aborts the sync run.
package bitbucket
