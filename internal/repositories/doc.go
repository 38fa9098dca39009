// Package repositories implements SQLite persistence for all domain entities.
//
// Key Implementations:
//   - [UserRepository] : Account persistence with username lookups and sequence numbers
//   - [FilmRepository] : The shared catalog with get-or-create and substring search
//   - [MembershipRepository] : Per-user ordered lists with bulk order updates
//
// Film and membership repositories accept a [DBTX], so the same code runs against a *sql.DB or inside a *sql.Tx.
// Use [RunInTx] to group several repository calls into one atomic unit.
//
// Sequence numbers provide stable, human-readable ordering (e.g., user #42) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
