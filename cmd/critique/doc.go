// Critique reviews a single source file with an LLM provider and prints a
// structured review covering correctness, error handling, security, style
// and maintainability.
//
// Usage:
//
//	critique <path_to_file>                 # review a .py file (default)
//	critique main.go --ext .go              # review another language
//	critique calc.py --format json --out r.json
//	critique records people.csv --value Kenya
//
// Credentials come from OPENAI_API_KEY, ANTHROPIC_API_KEY or GEMINI_API_KEY,
// optionally loaded from a .env file in the working directory.
package main
