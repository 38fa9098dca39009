// Package models defines domain entities and persistence interfaces for the film list service.
//
// The package contains two categories of types:
//
// 1. Read models: lightweight structs returned to callers and serialized by the HTTP API
//   - [Film] : A catalog entry shared by every user
//   - [Entry] : One position in a user's list, joined with its film
//   - [Page] : Limit/offset window over a user's list
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [User] : Accounts with a username and password hash
//   - [Membership] : A user's list entry referencing a [Film] with a positive order
//
// For a fixed user the orders of all memberships form the sequence 1..N with no gaps or repeats.
// Persistent entities implement the [Model] interface providing timestamps and validation.
package models
