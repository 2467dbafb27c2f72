// Package domain contains the core business entities of the scheduling
// engine: vocabulary words, per-word learning progress, daily study
// counters, streak state, and the cached daily batch. It is independent of
// any specific infrastructure or delivery mechanism.
package domain
