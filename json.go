package algebra

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// ToJSON encodes an expression tree as JSON. Call targets are encoded by
// name and must be registered built-ins to round-trip.
func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(jsonTree(e))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func jsonTree(e Expr) map[string]interface{} {
	switch v := e.(type) {
	case *Num:
		return map[string]interface{}{"type": "num", "value": v.Value().String()}
	case *Sym:
		return map[string]interface{}{"type": "sym", "name": v.Name()}
	case *Add:
		return map[string]interface{}{"type": "add", "terms": jsonTrees(v.Terms())}
	case *Mul:
		return map[string]interface{}{"type": "mul", "factors": jsonTrees(v.Factors())}
	case *Pow:
		return map[string]interface{}{"type": "pow", "base": jsonTree(v.Base()), "exp": jsonTree(v.Exp())}
	case *Binary:
		return map[string]interface{}{
			"type": "binary", "op": v.Op().String(),
			"left": jsonTree(v.Left()), "right": jsonTree(v.Right()),
		}
	case *Unary:
		return map[string]interface{}{
			"type": "unary", "op": v.Op().String(), "operand": jsonTree(v.Operand()),
		}
	case *Call:
		return map[string]interface{}{"type": "call", "name": v.Target().Name(), "args": jsonTrees(v.Args())}
	case *Set:
		return map[string]interface{}{"type": "set", "members": jsonTrees(v.Members())}
	case *Arrow:
		return map[string]interface{}{"type": "arrow", "left": jsonTree(v.Left()), "right": jsonTree(v.Right())}
	}
	return map[string]interface{}{"type": "unknown"}
}

func jsonTrees(in []Expr) []map[string]interface{} {
	out := make([]map[string]interface{}, len(in))
	for i, e := range in {
		out[i] = jsonTree(e)
	}
	return out
}

var binaryOpsByToken = func() map[string]BinaryOp {
	out := map[string]BinaryOp{}
	for op, tok := range binaryNames {
		out[tok] = op
	}
	return out
}()

// FromJSON rebuilds an expression from its decoded JSON form.
func FromJSON(data map[string]interface{}) (Expr, error) {
	typ, _ := data["type"].(string)
	switch typ {
	case "num":
		s, _ := data["value"].(string)
		rat, ok := new(big.Rat).SetString(s)
		if !ok {
			return nil, fmt.Errorf("algebra: invalid num value %q", s)
		}
		return Const(Real{rat: rat}), nil
	case "sym":
		name, ok := data["name"].(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("algebra: sym missing name")
		}
		return S(name), nil
	case "add":
		terms, err := fromJSONList(data, "terms")
		if err != nil {
			return nil, err
		}
		return AddOf(terms...), nil
	case "mul":
		factors, err := fromJSONList(data, "factors")
		if err != nil {
			return nil, err
		}
		return MulOf(factors...), nil
	case "pow":
		base, err := fromJSONChild(data, "base")
		if err != nil {
			return nil, err
		}
		exp, err := fromJSONChild(data, "exp")
		if err != nil {
			return nil, err
		}
		return PowOf(base, exp), nil
	case "binary":
		tok, _ := data["op"].(string)
		op, ok := binaryOpsByToken[tok]
		if !ok {
			return nil, fmt.Errorf("algebra: unknown binary op %q", tok)
		}
		left, err := fromJSONChild(data, "left")
		if err != nil {
			return nil, err
		}
		right, err := fromJSONChild(data, "right")
		if err != nil {
			return nil, err
		}
		return BinaryOf(op, left, right), nil
	case "unary":
		if tok, _ := data["op"].(string); tok != "not" {
			return nil, fmt.Errorf("algebra: unknown unary op %q", tok)
		}
		operand, err := fromJSONChild(data, "operand")
		if err != nil {
			return nil, err
		}
		return UnaryOf(OpNot, operand), nil
	case "call":
		name, _ := data["name"].(string)
		target, ok := Builtin(name)
		if !ok {
			return nil, fmt.Errorf("algebra: unknown callable %q", name)
		}
		args, err := fromJSONList(data, "args")
		if err != nil {
			return nil, err
		}
		return CallOf(target, args...), nil
	case "set":
		members, err := fromJSONList(data, "members")
		if err != nil {
			return nil, err
		}
		return SetOf(members...), nil
	case "arrow":
		left, err := fromJSONChild(data, "left")
		if err != nil {
			return nil, err
		}
		right, err := fromJSONChild(data, "right")
		if err != nil {
			return nil, err
		}
		return ArrowOf(left, right), nil
	}
	return nil, fmt.Errorf("algebra: unknown expression type %q", typ)
}

func fromJSONChild(data map[string]interface{}, key string) (Expr, error) {
	child, ok := data[key].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("algebra: missing %s", key)
	}
	return FromJSON(child)
}

func fromJSONList(data map[string]interface{}, key string) ([]Expr, error) {
	raw, ok := data[key].([]interface{})
	if !ok {
		return nil, fmt.Errorf("algebra: missing %s", key)
	}
	out := make([]Expr, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("algebra: %s[%d] is not an object", key, i)
		}
		e, err := FromJSON(m)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}
