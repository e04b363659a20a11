// Package users implements a small user-account service: it stores user
// records in a relational table through bun, authenticates credentials with
// bcrypt, issues and validates signed bearer tokens, and exposes a JSON CRUD
// surface over fiber.
//
// The package is organized around a few injected capabilities:
//
//   - Users: the repository over the users table
//   - TokenService: signs and validates JWTs
//   - TokenRevoker: tracks revoked token strings until they expire
//   - Auther: orchestrates login, logout, and token verification
//   - Manager: CRUD over user records with uniqueness enforcement
//
// HTTP wiring lives in server.go and middleware/tokenware; the runnable
// service is cmd/server.
package users
