// Package users is a small identity-and-directory service: it authenticates
// users via email and password, issues signed session tokens, and exposes a
// user directory scoped by organization membership and admin privilege.
//
// The package is organized around four pieces:
//
//   - Store: the repository contract for user records, with an in-memory
//     fixture-backed implementation (MemoryStore) and a bun/sqlite backed
//     one (BunStore).
//   - TokenService: stateless issue/verify of signed session tokens. An
//     invalid token is never an error at the boundary; it collapses to an
//     anonymous caller.
//   - Auther: the email/password login flow. Unknown email and wrong
//     password are indistinguishable to the caller.
//   - Directory: the authorization rules deciding which records a caller
//     may see. "Can't see it" and "doesn't exist" produce the same absent
//     result.
//
// HTTP glue (session middleware, a JSON controller and a healthcheck) lives
// in http.go and http_controller.go; cmd/server wires a runnable service.
package users
