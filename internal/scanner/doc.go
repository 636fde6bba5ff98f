// Package scanner enumerates candidate add-on units in a directory. It
// distinguishes single-file add-ons from directory packages (identified by
// their __init__.py entry point) and assigns each unit the packaging
// extension a package-manager client would download it under.
package scanner
