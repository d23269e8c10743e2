// Package worker recomputes service areas in response to NATS messages.
//
// Recalculation requests are published to a subject (default
// "oasis.recalc") and consumed through a queue group, so running several
// worker processes spreads the load without duplicate computation. Each
// message names one service area; the worker loads the area's wells from
// the store, runs the engine, and persists the resulting polygons.
//
// The worker fingerprints each loaded computation and skips areas whose
// inputs have not changed since the last successful run, which makes
// blanket "recalculate everything" publishes cheap.
package worker
