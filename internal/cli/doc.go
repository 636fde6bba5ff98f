// Package cli wires the cobra command tree: the root command generates the
// add-on index from a directory, with subcommands for version info and
// single-file metadata inspection.
package cli
