// Package dao implements the data access layer for the Directory API.
//
// All entity DAOs share one generic base, DAO[T], which implements the
// persistence lifecycle over the database engine interface:
//
//	validate → uniqueness probe → id + timestamps → persist → rehydrate
//
// Insert and Update both end by rehydrating the caller's struct from the
// document the engine actually stored, so the caller always sees persisted
// state, including generated ids and timestamps.
//
// # Entity DAOs
//
// Per-entity types (Accounts, Roles, Permissions, Parties, Addresses,
// Contacts) are thin glue over the base: a uniqueness filter, defaults, and
// entity-specific finders. They follow a consistent pattern:
//
//   - Constructor function (NewXxx) accepts a database engine
//   - Get returns (nil, nil) when the record does not exist
//   - Errors wrap the database sentinels; check with errors.Is
//
// # Associations
//
// Roles carry permission ids and accounts carry role ids as deduplicated
// arrays, emulating join tables. Grant unions ids in, Revoke removes them by
// set difference, Replace reconciles the stored array against a desired set.
// Store composes the DAOs and performs the cross-entity cascades (deleting a
// permission detaches it from every role, and so on).
package dao
