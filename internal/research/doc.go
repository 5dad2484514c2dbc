// Package research resolves annual event series occurrences by querying a
// local Ollama model for structured, JSON-constrained answers.
package research
