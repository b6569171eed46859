// Package store provides SQLite-backed persistence for alignd.
//
// The store holds the full entity tree for a single local user:
// User -> Identity -> {Trait, BehaviorLog, DailyReflection}. Referential
// integrity is enforced at the database layer with ON DELETE CASCADE
// foreign keys, and uniqueness invariants (single user, one trait name per
// identity, one reflection per identity/date) are backed by indexes rather
// than application checks alone.
//
// All operations are synchronous logical transactions. Reads that feed
// aggregation or prompt assembly run inside a single transaction so callers
// observe a consistent snapshot.
package store
