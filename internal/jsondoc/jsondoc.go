// Package jsondoc navigates upstream JSON payloads with JSONPath expressions
// and reports every shape problem as an ExtractionError.
package jsondoc

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/shopspring/decimal"
)

// ExtractionError means the payload does not have the shape we need.
type ExtractionError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("extract %s: %s", e.Path, e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

type Doc struct {
	root any
}

func Parse(data []byte) (*Doc, error) {
	root, err := oj.Parse(data)
	if err != nil {
		return nil, &ExtractionError{Path: "$", Reason: "invalid json", Err: err}
	}
	if _, ok := root.(map[string]any); !ok {
		return nil, &ExtractionError{Path: "$", Reason: fmt.Sprintf("want object, got %s", kind(root))}
	}
	return &Doc{root: root}, nil
}

func (d *Doc) lookup(path string) (any, error) {
	x, err := jp.ParseString(path)
	if err != nil {
		return nil, &ExtractionError{Path: path, Reason: "bad path", Err: err}
	}
	return x.First(d.root), nil
}

func (d *Doc) required(path string) (any, error) {
	v, err := d.lookup(path)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, &ExtractionError{Path: path, Reason: "missing"}
	}
	return v, nil
}

// Has reports whether path resolves to a non-null value.
func (d *Doc) Has(path string) bool {
	v, err := d.lookup(path)
	return err == nil && v != nil
}

func (d *Doc) String(path string) (string, error) {
	v, err := d.required(path)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &ExtractionError{Path: path, Reason: fmt.Sprintf("want string, got %s", kind(v))}
	}
	return s, nil
}

// Text renders a scalar (string or integral number) as text. Identifiers
// come as either depending on the API version.
func (d *Doc) Text(path string) (string, error) {
	v, err := d.required(path)
	if err != nil {
		return "", err
	}
	return scalarText(path, v)
}

// OptText is Text for fields that may be absent or null.
func (d *Doc) OptText(path string) (string, bool, error) {
	v, err := d.lookup(path)
	if err != nil || v == nil {
		return "", false, err
	}
	s, err := scalarText(path, v)
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

// Count reads a non-negative integer.
func (d *Doc) Count(path string) (int, error) {
	v, err := d.required(path)
	if err != nil {
		return 0, err
	}
	var n int64
	switch t := v.(type) {
	case int64:
		n = t
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) {
			return 0, &ExtractionError{Path: path, Reason: fmt.Sprintf("want integer, got %v", t)}
		}
		n = int64(t)
	default:
		return 0, &ExtractionError{Path: path, Reason: fmt.Sprintf("want integer, got %s", kind(v))}
	}
	if n < 0 {
		return 0, &ExtractionError{Path: path, Reason: fmt.Sprintf("negative count %d", n)}
	}
	return int(n), nil
}

// OptDecimal reads a currency amount given as a number or a numeric string.
func (d *Doc) OptDecimal(path string) (decimal.Decimal, bool, error) {
	v, err := d.lookup(path)
	if err != nil || v == nil {
		return decimal.Zero, false, err
	}
	switch t := v.(type) {
	case int64:
		return decimal.NewFromInt(t), true, nil
	case float64:
		return decimal.NewFromFloat(t), true, nil
	case string:
		a, err := decimal.NewFromString(t)
		if err != nil {
			return decimal.Zero, false, &ExtractionError{Path: path, Reason: "want amount", Err: err}
		}
		return a, true, nil
	}
	return decimal.Zero, false, &ExtractionError{Path: path, Reason: fmt.Sprintf("want amount, got %s", kind(v))}
}

// Len returns the length of the array at path.
func (d *Doc) Len(path string) (int, error) {
	v, err := d.required(path)
	if err != nil {
		return 0, err
	}
	a, ok := v.([]any)
	if !ok {
		return 0, &ExtractionError{Path: path, Reason: fmt.Sprintf("want array, got %s", kind(v))}
	}
	return len(a), nil
}

func scalarText(path string, v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return strconv.FormatFloat(t, 'f', 0, 64), nil
		}
	}
	return "", &ExtractionError{Path: path, Reason: fmt.Sprintf("want scalar, got %s", kind(v))}
}

func kind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int64, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
