// Package redact scrubs likely secrets from source text before it is embedded
// in a review prompt.
//
// Detection is heuristic: assignments to key/secret/token/password names,
// bearer tokens, JWTs, PEM private key headers and provider-specific token
// shapes (AWS, GitHub, Slack, Anthropic, OpenAI).
package redact
