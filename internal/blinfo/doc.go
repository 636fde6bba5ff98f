// Package blinfo extracts and validates the bl_info metadata declaration
// embedded in an add-on's Python source. Extraction is purely static: the
// source is parsed into a syntax tree and the declaration is folded from
// literal syntax only, so scanned add-on code is never executed, no matter
// how broken or hostile it is.
package blinfo
