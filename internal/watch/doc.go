// Package watch adapts fsnotify into the pipeline's event source: a single
// non-recursive directory watch emitting PathEvents for file creations and
// writes.
package watch
