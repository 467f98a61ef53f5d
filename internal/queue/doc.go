// Package queue implements the in-memory candidate FIFO with per-process
// path deduplication. State is deliberately not persisted; restarting the
// daemon forgets which files were already offered.
package queue
