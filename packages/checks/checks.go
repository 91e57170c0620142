package checks

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/groupcheck/packages/errtree"
	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

// JSONPath returns a check that parses the error's rendered text as JSON
// and compares the value at path with expected. Numbers compare by value,
// everything else falls back to string equality.
func JSONPath(path string, expected any) func(error) bool {
	return func(err error) bool {
		body := errtree.Render(err)
		if !gjson.Valid(body) {
			return false
		}
		result := gjson.Get(body, path)
		if !result.Exists() {
			return false
		}
		return looseEqual(result.Value(), expected)
	}
}

// JSONSchema returns a check that validates the error's rendered text as
// a JSON document against the given schema.
func JSONSchema(schema []byte) func(error) bool {
	return func(err error) bool {
		body := errtree.Render(err)
		if !gjson.Valid(body) {
			return false
		}
		result, verr := gojsonschema.Validate(
			gojsonschema.NewBytesLoader(schema),
			gojsonschema.NewStringLoader(body),
		)
		return verr == nil && result.Valid()
	}
}

// MessageContains returns a check for a substring of the rendered text.
func MessageContains(sub string) func(error) bool {
	return func(err error) bool {
		return strings.Contains(errtree.Render(err), sub)
	}
}

// GroupLen returns a check that the error is a group with exactly n
// children.
func GroupLen(n int) func(error) bool {
	return func(err error) bool {
		return errtree.IsGroup(err) && len(errtree.Children(err)) == n
	}
}

func looseEqual(actual, expected any) bool {
	if reflect.DeepEqual(actual, expected) {
		return true
	}
	actualNum, aOk := toFloat64(actual)
	expectedNum, eOk := toFloat64(expected)
	if aOk && eOk && actualNum == expectedNum {
		return true
	}
	return fmt.Sprintf("%v", actual) == fmt.Sprintf("%v", expected)
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
