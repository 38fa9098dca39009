// Package lists maintains each user's ordered film list.
//
// # Core Operations
//
// The [Service] interface is what the HTTP server, CLI and TUI call:
//
//  1. [Engine.Add] : get-or-create a film by name and append it to the list
//     - Idempotent: adding a film already in the list returns the existing entry
//     - New entries receive [Engine.NextOrder]
//
//  2. [Engine.Remove] : delete an entry and close the gap
//     - Delete and renumber commit in one transaction
//
//  3. [Engine.ApplySort] : replace the list order with a client-supplied id sequence
//     - The sequence must name every entry exactly once
//     - Only rows whose order changed are written
//
//  4. [Engine.Search] : substring search of the catalog, excluding films already listed
//
// # Ordering Invariant
//
// For every user with N entries the stored orders are exactly 1..N. Every mutating
// operation holds a per-user lock and runs inside a single SQL transaction, so
// concurrent requests for the same user cannot interleave a delete with a renumber.
package lists
