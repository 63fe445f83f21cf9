// Package cli wires together the Cobra command tree for the critique binary.
//
// The root command reviews one source file: critique <path_to_file>. The
// subcommands cover the tabular record pipeline (records), configuration
// (config), the completion cache (cache), providers (models) and version.
// Exit codes are 0 on success and 1 on any failure.
package cli
