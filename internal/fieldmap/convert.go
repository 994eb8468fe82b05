package fieldmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/datatypes"
)

// Convert coerces a raw value (operator input or a source-table column as
// the driver returns it) into the canonical representation for a field
// type: bool, float64, string, or datatypes.JSON. A nil result means "no
// value" and is never written. The same conversion backs both the
// promotion engine and the manual edit path.
func Convert(ft FieldType, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
		return nil, nil
	}

	switch ft {
	case TypeBoolean:
		return convertBool(raw)
	case TypeNumber:
		return convertNumber(raw)
	case TypeJSON:
		return convertJSON(raw, false)
	case TypeArray:
		return convertJSON(raw, true)
	case TypeText, TypeTextarea, TypeUnknown:
		return convertText(raw)
	default:
		return convertText(raw)
	}
}

func convertBool(raw any) (any, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		switch s {
		case "true", "t", "yes", "y", "1":
			return true, nil
		case "false", "f", "no", "n", "0":
			return false, nil
		}
		return nil, fmt.Errorf("cannot interpret %q as boolean", v)
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		n, _ := convertNumber(v)
		return n.(float64) != 0, nil
	default:
		return nil, fmt.Errorf("cannot interpret %T as boolean", raw)
	}
}

func convertNumber(raw any) (any, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("cannot interpret %q as number", v.String())
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot interpret %q as number", v)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("cannot interpret %T as number", raw)
	}
}

func convertText(raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32:
		return fmt.Sprintf("%v", v), nil
	default:
		return nil, fmt.Errorf("cannot interpret %T as text", raw)
	}
}

func convertJSON(raw any, wantArray bool) (any, error) {
	var b []byte
	switch v := raw.(type) {
	case datatypes.JSON:
		b = []byte(v)
	case json.RawMessage:
		b = []byte(v)
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		// Structured input from a decoded request body.
		marshaled, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("cannot marshal %T as json: %w", raw, err)
		}
		b = marshaled
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	if !json.Valid(b) {
		return nil, fmt.Errorf("value is not valid json")
	}
	if wantArray {
		var arr []any
		if err := json.Unmarshal(b, &arr); err != nil {
			return nil, fmt.Errorf("value is not a json array")
		}
	}
	return datatypes.JSON(b), nil
}

// Equal reports whether two raw values convert to the same canonical value
// for the field type. Values that fail conversion are never equal; JSON is
// compared structurally.
func Equal(ft FieldType, a, b any) bool {
	ca, errA := Convert(ft, a)
	cb, errB := Convert(ft, b)
	if errA != nil || errB != nil {
		return false
	}
	if ca == nil || cb == nil {
		return ca == nil && cb == nil
	}

	switch ft {
	case TypeJSON, TypeArray:
		return jsonEqual(ca.(datatypes.JSON), cb.(datatypes.JSON))
	default:
		return ca == cb
	}
}

func jsonEqual(a, b datatypes.JSON) bool {
	var va, vb any
	if err := json.Unmarshal([]byte(a), &va); err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(b), &vb); err != nil {
		return false
	}
	na, err := json.Marshal(va)
	if err != nil {
		return false
	}
	nb, err := json.Marshal(vb)
	if err != nil {
		return false
	}
	return bytes.Equal(na, nb)
}
