// Package utils provides shared low-level helpers for the livesearch
// internals: a single-shot JSON POST used by the request executor, rune-safe
// string truncation, a generic pointer helper and an elapsed-time timer.
package utils
