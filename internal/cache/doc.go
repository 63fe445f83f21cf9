// Package cache stores completed reviews on disk so an unchanged file is not
// sent to the provider twice.
//
// Entries are keyed by a SHA-256 hash over the provider, model, sampling
// settings and the full prompt, and expire after a TTL. The default directory
// is $XDG_CACHE_HOME/critique (or the OS-appropriate equivalent). Caching is
// off unless the configuration enables it.
package cache
