// Package deepgram implements the transcriber client: one call that posts
// audio bytes to the pre-recorded listen endpoint and extracts the first
// channel's first alternative transcript.
package deepgram
