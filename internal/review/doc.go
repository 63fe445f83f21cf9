// Package review turns one source file into a review prompt, sends it through
// a providers.Completer and packages the completion as a Result.
//
// The system prompt is fixed per language and lists the review dimensions,
// the per-issue output format and the severity vocabulary (CRITICAL, WARNING,
// SUGGESTION). The user prompt embeds the file verbatim in a fenced block.
// Both are deterministic for a given file name and content.
//
// Client holds an immutable Settings value and makes exactly one completion
// request per Review call unless a cache entry answers it first.
package review
