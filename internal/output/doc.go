// Package output renders a review.Result.
//
// Three formats are supported:
//   - text     - the bordered terminal block (default)
//   - json     - the full Result as JSON
//   - markdown - a heading, the severity counts and the review body
//
// Use [GetWriter] to obtain a [Writer] for a format string, or [WriteResult]
// to render straight to an io.Writer. [WriteFile] writes to a path instead.
package output
