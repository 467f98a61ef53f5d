// Package logging centralizes slog construction and the structured field
// conventions shared by every murmur component. The console handler renders
// compact operator-facing lines; the json handler is for log shipping.
package logging
