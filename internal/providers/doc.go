// Package providers implements the Completer capability for each supported
// LLM service: OpenAI (the default), Anthropic, Google Gemini and Ollama /
// LM Studio for local models.
//
// Every implementation issues a single blocking HTTP request per Complete
// call. Failures are reported as *ServiceError values classified by Kind so
// callers can tell authentication, rate-limit and server failures apart.
// Retries are opt-in through RetryPolicy; the zero policy fails immediately.
//
// Credentials are read from the environment when a provider is constructed.
// A missing key is not checked up front: it surfaces from Complete as an
// authentication error.
//
// Use [New] to obtain a Completer by provider name and model string.
package providers
