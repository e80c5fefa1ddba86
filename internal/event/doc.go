// Package event defines the canonical event record produced by the GBUWH
// extraction pipeline.
//
// A canonical event carries UTC instants, the source time zone name for
// re-localization by consumers, and a deterministic identity derived from its
// source namespace and source event id. The same logical event always maps to
// the same row id, which is what makes repeated upserts idempotent.
package event
