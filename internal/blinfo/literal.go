package blinfo

import (
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/go-python/gpython/ast"
	"github.com/go-python/gpython/py"
)

// literalEval folds a parsed expression into a plain Go value. Only literal
// syntax is accepted: strings, bytes, numbers, booleans, None, tuples, lists,
// sets, dicts, and unary plus/minus on numbers. Anything that would need name
// resolution or execution (identifiers, calls, comprehensions, operators) is
// rejected with an error.
func literalEval(expr ast.Expr) (interface{}, error) {
	switch node := expr.(type) {
	case *ast.Str:
		return string(node.S), nil
	case *ast.Bytes:
		// Bytes values only make sense in the index as text; anything else
		// would corrupt the JSON output.
		if !utf8.Valid(node.S) {
			return nil, fmt.Errorf("bytes value is not valid text")
		}
		return string(node.S), nil
	case *ast.Num:
		return numValue(node.N)
	case *ast.NameConstant:
		switch node.Value {
		case py.None:
			return nil, nil
		case py.True:
			return true, nil
		case py.False:
			return false, nil
		}
		return nil, fmt.Errorf("unsupported constant %v", node.Value)
	case *ast.Tuple:
		return evalSequence(node.Elts)
	case *ast.List:
		return evalSequence(node.Elts)
	case *ast.Set:
		return evalSequence(node.Elts)
	case *ast.Dict:
		result := make(map[string]interface{}, len(node.Keys))
		for i, keyExpr := range node.Keys {
			keyValue, err := literalEval(keyExpr)
			if err != nil {
				return nil, err
			}
			key, ok := keyValue.(string)
			if !ok {
				return nil, fmt.Errorf("dict key %v is not a string", keyValue)
			}
			value, err := literalEval(node.Values[i])
			if err != nil {
				return nil, err
			}
			result[key] = value
		}
		return result, nil
	case *ast.UnaryOp:
		return evalUnary(node)
	}
	return nil, fmt.Errorf("%T requires execution to evaluate", expr)
}

func evalSequence(elts []ast.Expr) ([]interface{}, error) {
	result := make([]interface{}, 0, len(elts))
	for _, elt := range elts {
		value, err := literalEval(elt)
		if err != nil {
			return nil, err
		}
		result = append(result, value)
	}
	return result, nil
}

func evalUnary(node *ast.UnaryOp) (interface{}, error) {
	operand, err := literalEval(node.Operand)
	if err != nil {
		return nil, err
	}
	switch node.Op {
	case ast.UAdd:
		switch operand.(type) {
		case int64, float64:
			return operand, nil
		}
	case ast.USub:
		switch value := operand.(type) {
		case int64:
			return -value, nil
		case float64:
			return -value, nil
		}
	}
	return nil, fmt.Errorf("unsupported unary operation on %T", operand)
}

func numValue(n py.Object) (interface{}, error) {
	switch num := n.(type) {
	case py.Int:
		return int64(num), nil
	case *py.BigInt:
		value := (*big.Int)(num)
		if value.IsInt64() {
			return value.Int64(), nil
		}
		return nil, fmt.Errorf("integer %s is too large for the index", value)
	case py.Float:
		return float64(num), nil
	}
	return nil, fmt.Errorf("unsupported number type %T", n)
}
