// Package source loads the single file handed to the review command and
// reports whether it is too large to send comfortably.
//
// Load performs the existence, extension, encoding and emptiness checks and
// returns a *ValidationError describing the first one that fails. Callers
// decide how to surface it; nothing here exits the process.
package source
