// Package index builds, merges, reads, and writes the add-on index document
// consumed by the package-manager client. The document is a JSON object with
// an integer schema-version and a mapping from add-on ID to augmented
// metadata entry; it is written deterministically (sorted keys, stable
// indentation) so regenerated indexes diff cleanly.
package index
