// Package llm implements the summarizer client against an OpenAI-compatible
// chat completion endpoint, requesting JSON-only output and decoding it
// leniently.
package llm
