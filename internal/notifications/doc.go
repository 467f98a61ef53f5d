// Package notifications delivers pipeline events via ntfy.
//
// The default implementation publishes to the topic configured in config.toml
// and gracefully degrades to a no-op when notifications are disabled. Pipeline
// code depends only on the Service interface; delivery failures are the
// caller's to log and never abort a job.
package notifications
