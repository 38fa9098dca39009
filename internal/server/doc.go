// Package server exposes the film list over a JSON HTTP API.
//
// # Router
//
// [Server.Router] builds a chi router with request IDs, real client IPs, request
// logging through charmbracelet/log, panic recovery and CORS for browser clients.
// All API routes live under /v1.
//
// # Authentication
//
// POST /v1/auth/login exchanges a username and password for a bearer token signed by
// [TokenIssuer]. [TokenIssuer.Middleware] guards the list routes and stores the
// caller's user ID in the request context, read back with [UserIDFromContext].
// Login attempts are throttled per client IP.
//
// # Errors
//
// Handlers return errors to [WriteError], which maps the sentinels in the shared
// package to status codes and renders {"error": "..."}. Unexpected errors are
// logged and reported as a generic 500.
package server
