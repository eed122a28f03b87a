package algebra

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ============================================================
// Tool surface — JSON-level entry points for agent frameworks
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	String string      `json:"string,omitempty"`
	Faults []string    `json:"faults,omitempty"`
	Error  string      `json:"error,omitempty"`
}

func errResponse(format string, args ...interface{}) ToolResponse {
	return ToolResponse{Error: fmt.Sprintf(format, args...)}
}

// HandleToolCall dispatches one tool request. Evaluation faults are reported
// alongside the (best-effort) result, never as the response error.
func HandleToolCall(req ToolRequest) ToolResponse {
	switch req.Tool {
	case "evaluate":
		expr, err := paramExpr(req.Params, "expr")
		if err != nil {
			return errResponse("%v", err)
		}
		ev := NewEvaluator()
		out := ev.Evaluate(expr)
		return exprResponse(out, ev)

	case "evaluate_at":
		expr, err := paramExpr(req.Params, "expr")
		if err != nil {
			return errResponse("%v", err)
		}
		bindings, err := paramBindings(req.Params)
		if err != nil {
			return errResponse("%v", err)
		}
		ev := NewEvaluator()
		out := ev.EvaluateAt(expr, bindings)
		return exprResponse(out, ev)

	case "vars":
		expr, err := paramExpr(req.Params, "expr")
		if err != nil {
			return errResponse("%v", err)
		}
		names := make([]string, 0)
		for name := range Vars(expr) {
			names = append(names, name)
		}
		sort.Strings(names)
		return ToolResponse{Result: names}

	case "matrix_inverse":
		m, err := paramMatrix(req.Params, "matrix")
		if err != nil {
			return errResponse("%v", err)
		}
		inv, err := m.Inverse()
		if err != nil {
			return errResponse("%v", err)
		}
		return matrixResponse(inv)

	case "matrix_mul":
		a, err := paramMatrix(req.Params, "a")
		if err != nil {
			return errResponse("%v", err)
		}
		b, err := paramMatrix(req.Params, "b")
		if err != nil {
			return errResponse("%v", err)
		}
		out, err := a.Mul(b)
		if err != nil {
			return errResponse("%v", err)
		}
		return matrixResponse(out)
	}
	return errResponse("unknown tool %q", req.Tool)
}

func exprResponse(e Expr, ev *Evaluator) ToolResponse {
	resp := ToolResponse{Result: jsonTree(e), String: e.String()}
	for _, f := range ev.Faults() {
		resp.Faults = append(resp.Faults, f.Error())
	}
	return resp
}

func matrixResponse(m *Matrix) ToolResponse {
	rows := make([][]map[string]interface{}, m.Rows())
	for i := 0; i < m.Rows(); i++ {
		rows[i] = make([]map[string]interface{}, m.Cols())
		for j := 0; j < m.Cols(); j++ {
			rows[i][j] = jsonTree(m.Get(i, j))
		}
	}
	return ToolResponse{Result: rows, String: m.String()}
}

func paramExpr(params map[string]interface{}, key string) (Expr, error) {
	raw, ok := params[key].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("missing %q parameter", key)
	}
	return FromJSON(raw)
}

// paramBindings reads [{"var": "x", "value": <expr>}, ...].
func paramBindings(params map[string]interface{}) ([]Binding, error) {
	raw, ok := params["bindings"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("missing \"bindings\" parameter")
	}
	out := make([]Binding, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("bindings[%d] is not an object", i)
		}
		name, _ := m["var"].(string)
		if name == "" {
			return nil, fmt.Errorf("bindings[%d] missing var", i)
		}
		valRaw, ok := m["value"].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("bindings[%d] missing value", i)
		}
		val, err := FromJSON(valRaw)
		if err != nil {
			return nil, err
		}
		out = append(out, BindVar(name, val))
	}
	return out, nil
}

func paramMatrix(params map[string]interface{}, key string) (*Matrix, error) {
	raw, ok := params[key].([]interface{})
	if !ok || len(raw) == 0 {
		return nil, fmt.Errorf("missing %q parameter", key)
	}
	var entries []Expr
	cols := -1
	for i, rowRaw := range raw {
		row, ok := rowRaw.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s[%d] is not a row", key, i)
		}
		if cols < 0 {
			cols = len(row)
		} else if len(row) != cols {
			return nil, fmt.Errorf("%s has ragged rows", key)
		}
		for j, cell := range row {
			m, ok := cell.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s[%d][%d] is not an object", key, i, j)
			}
			e, err := FromJSON(m)
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}
	}
	return MatrixFromSlice(len(raw), cols, entries), nil
}

// ToolSpec returns the JSON schema advertising the available tools.
func ToolSpec() string {
	spec := map[string]interface{}{
		"tools": []map[string]interface{}{
			ts("evaluate", "Canonicalize an expression: fold constants, combine like terms and factors.",
				[]string{"expr"}, map[string]string{"expr": "expression tree"}),
			ts("evaluate_at", "Substitute bindings into an expression, then canonicalize.",
				[]string{"expr", "bindings"}, map[string]string{
					"expr":     "expression tree",
					"bindings": "list of {var, value} pairs",
				}),
			ts("vars", "List the free variables of an expression.",
				[]string{"expr"}, map[string]string{"expr": "expression tree"}),
			ts("matrix_inverse", "Exact symbolic inverse of a square matrix.",
				[]string{"matrix"}, map[string]string{"matrix": "2D array of expression trees"}),
			ts("matrix_mul", "Matrix product with canonicalized entries.",
				[]string{"a", "b"}, map[string]string{
					"a": "2D array of expression trees",
					"b": "2D array of expression trees",
				}),
		},
	}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, v := range props {
		properties[k] = map[string]string{"description": v}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"input_schema": map[string]interface{}{
			"type":       "object",
			"required":   required,
			"properties": properties,
		},
	}
}
