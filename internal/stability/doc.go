// Package stability implements the quiet-period heuristic that decides when
// an incoming audio file has finished arriving.
package stability
