// Package store defines the persistence interfaces consumed by the
// scheduling engine, together with the sentinel errors implementations
// must return. The engine itself operates on plain domain records; any
// conforming backend (relational, key-value, in-memory) satisfies these
// contracts.
package store
