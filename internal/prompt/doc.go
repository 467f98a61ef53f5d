// Package prompt implements the operator confirmation gate: a terminal
// question with optional audio replay, asked once per candidate file before
// any transcription work starts.
package prompt
