package blinfo

import (
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/go-python/gpython/ast"
	"github.com/go-python/gpython/parser"
	"github.com/go-python/gpython/py"
)

// VariableName is the module-level variable holding the metadata declaration.
const VariableName = "bl_info"

// Parse reads a Python source file and returns its bl_info declaration as a
// plain map, or nil if the file has no usable declaration. Every failure mode
// (unreadable file, non-text content, syntax error, non-literal or non-dict
// value, missing declaration) is logged and downgraded to nil; the source is
// parsed, never executed.
func Parse(path string, log *slog.Logger) map[string]interface{} {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("skipping add-on: unreadable source", "path", path, "error", err)
		return nil
	}
	if !utf8.Valid(data) {
		log.Warn("skipping add-on: source is not valid text", "path", path)
		return nil
	}

	tree, err := parser.ParseString(string(data), py.ExecMode)
	if err != nil {
		log.Warn("skipping add-on: syntax error", "path", path, "error", err)
		return nil
	}
	module, ok := tree.(*ast.Module)
	if !ok {
		log.Warn("skipping add-on: unexpected parse result", "path", path)
		return nil
	}

	// Only module-level statements count; a bl_info buried in a function or
	// class body is not a declaration.
	for _, stmt := range module.Body {
		assign, ok := stmt.(*ast.Assign)
		if !ok || len(assign.Targets) != 1 {
			continue
		}
		target, ok := assign.Targets[0].(*ast.Name)
		if !ok || string(target.Id) != VariableName {
			continue
		}

		value, err := literalEval(assign.Value)
		if err != nil {
			log.Warn("skipping add-on: bl_info is not a literal expression",
				"path", path, "error", err)
			return nil
		}
		info, ok := value.(map[string]interface{})
		if !ok {
			log.Warn("skipping add-on: bl_info is not a dict", "path", path)
			return nil
		}
		return info
	}

	log.Warn("unable to find bl_info dict", "path", path)
	return nil
}
