// Package observability provides event logging and usage metrics for
// Lumen. It uses structured JSON Lines (JSONL) for event persistence and
// derives metrics on-demand from the event log.
package observability
