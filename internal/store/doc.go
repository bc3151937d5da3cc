// Package store persists download history in SQLite. Every fetch is recorded
// when it starts and resolved to a terminal status when it finishes, so the
// CLI can answer "what did I already grab for this video" without network
// access.
package store
