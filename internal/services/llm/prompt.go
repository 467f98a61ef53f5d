package llm

// SummaryPrompt is the system prompt sent when summarizing a transcript.
const SummaryPrompt = `Generate concise summary and TL;DR. Respond with JSON: {"summary": string, "tldr": string}`
