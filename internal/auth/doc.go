// Package auth implements the authentication and authorisation core of
// AuthGate: user accounts, password hashing, session token issuance and
// verification, and the credential store.
//
// Design notes:
//   - Session tokens are stateless HS256 JWTs with a fixed 4-hour
//     lifetime and no server-side storage. There is no refresh or
//     revocation; a token simply expires.
//   - Roles are an open set of labels. The package defines the common
//     ones (member, moderator, admin) but route allow-lists are the
//     only authority on what a role may access.
//   - All shared mutable state lives in the credential store; the
//     UNIQUE(email) constraint makes concurrent registration safe.
package auth
