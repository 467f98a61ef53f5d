// Package notes renders transcription results into Markdown and writes them
// atomically into the configured notes directory.
package notes
