// Package calendar reconciles sync-eligible store rows against a Google
// Calendar.
//
// Each row is either unsynced (no stored external id, gets a create) or
// synced (stored id, gets an update). An update answered with the provider's
// not-found status means the entry was deleted out of band; the reconciler
// immediately recreates it and the new id overwrites the stale mapping. All
// mapping changes are collected and written back to the store in one batch at
// the end of the run.
package calendar
