// Package store persists canonical events in the external_events table and
// owns both reconciliation surfaces against it: the idempotent content upsert
// keyed by (source, source_event_id), and the calendar sync mapping columns.
//
// Row ids are a pure function of the unique key (see event.DeriveID), so the
// store needs no run-to-run memory to stay duplicate-free.
package store
