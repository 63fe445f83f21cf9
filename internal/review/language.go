package review

import (
	"path/filepath"
	"strings"
)

// Language carries the per-language wording of the system prompt.
type Language struct {
	Name  string
	Fence string
	// Errors and Style fill the error handling and style dimensions.
	Errors string
	Style  string
}

const genericErrors = "Missing error checks, unhandled edge cases, silent failures, division by zero, missing file checks, type errors at runtime"

var languages = map[string]Language{
	".py": {
		Name:   "Python",
		Fence:  "python",
		Errors: "Missing try/except, unhandled edge cases, silent failures, division by zero, missing file checks, type errors at runtime",
		Style: "PYTHONIC STYLE - PEP 8 violations, use of anti-patterns, missed use of context managers (with statements), " +
			"list/dict comprehensions where appropriate, type hints missing on public functions",
	},
	".go": {
		Name:   "Go",
		Fence:  "go",
		Errors: "Ignored or unwrapped errors, unhandled edge cases, nil dereferences, division by zero, leaked resources, panics on bad input",
		Style: "IDIOMATIC GO - gofmt and go vet issues, missing defer for cleanup, context not propagated, " +
			"non-idiomatic naming, exported identifiers without doc comments",
	},
	".js": {
		Name:   "JavaScript",
		Fence:  "javascript",
		Errors: "Unhandled promise rejections, missing try/catch, unchecked null/undefined, silent failures, type coercion surprises",
		Style:  "IDIOMATIC JAVASCRIPT - var instead of let/const, loose equality, callback nesting where async/await fits, inconsistent module style",
	},
	".ts": {
		Name:   "TypeScript",
		Fence:  "typescript",
		Errors: "Unhandled promise rejections, missing try/catch, unchecked null/undefined, unsafe casts, silent failures",
		Style:  "IDIOMATIC TYPESCRIPT - any types, non-null assertions, missing return types on exported functions, loose equality",
	},
	".rs": {
		Name:   "Rust",
		Fence:  "rust",
		Errors: "unwrap/expect on fallible values, ignored Results, integer overflow, panics on bad input",
		Style:  "IDIOMATIC RUST - clippy warnings, needless clones, manual loops where iterators fit, missing doc comments on public items",
	},
	".java": {
		Name:   "Java",
		Fence:  "java",
		Errors: "Swallowed exceptions, unclosed resources (missing try-with-resources), null dereferences, unchecked casts",
		Style:  "IDIOMATIC JAVA - naming conventions, mutable public fields, raw types, missing Javadoc on public API",
	},
	".rb": {
		Name:   "Ruby",
		Fence:  "ruby",
		Errors: "Rescuing Exception, silent failures, nil errors, missing file checks",
		Style:  "IDIOMATIC RUBY - RuboCop violations, unidiomatic loops, missing frozen string literals",
	},
	".sh": {
		Name:   "Shell",
		Fence:  "bash",
		Errors: "Missing set -euo pipefail, unchecked exit codes, unquoted variables, missing file checks",
		Style:  "IDIOMATIC SHELL - ShellCheck warnings, backticks instead of $(...), non-portable constructs",
	},
}

// LanguageFor picks the Language for a file name by extension. Unknown
// extensions get a generic description named after the extension.
func LanguageFor(filename string) Language {
	ext := strings.ToLower(filepath.Ext(filename))
	if l, ok := languages[ext]; ok {
		return l
	}
	name := "source"
	if ext != "" {
		name = strings.TrimPrefix(ext, ".")
	}
	return Language{
		Name:   name,
		Fence:  strings.TrimPrefix(ext, "."),
		Errors: genericErrors,
		Style:  "IDIOMATIC STYLE - violations of the language's conventional style guide and common anti-patterns",
	}
}
