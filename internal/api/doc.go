// Package api provides the HTTP REST API server for AuthGate.
//
// It exposes registration, login, and role-protected routes, wrapping
// every response in a uniform envelope so clients can handle success
// and failure uniformly.
//
// The server follows the same lifecycle pattern as other infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api
