// Package daemon composes the event source and workflow manager into a
// single lifecycle with flock-based locking to prevent multiple concurrent
// instances from racing on the same monitor directory.
package daemon
