package deparse

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/zoobzio/deparse/internal/types"
)

// Escape escapes s for use inside a single-quoted SQL string literal.
// NUL, quotes, backspace, newline, carriage return, tab, the EOF byte (0x1A)
// and backslash are replaced by their backslash sequences; every other byte
// is copied unchanged.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case 0:
			b.WriteString(`\0`)
		case '\'':
			b.WriteString(`\'`)
		case '"':
			b.WriteString(`\"`)
		case '\b':
			b.WriteString(`\b`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0x1a:
			b.WriteString(`\Z`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// literalToSQL renders an atomic value. Kinds other than the five literal
// kinds (lenient decoding of unknown nodes) render their value verbatim.
func literalToSQL(lit *types.Literal) string {
	var value string
	switch lit.Kind {
	case types.NodeString:
		value = "'" + Escape(formatValue(lit.Value)) + "'"
	case types.NodeBool:
		if truthy(lit.Value) {
			value = "TRUE"
		} else {
			value = "FALSE"
		}
	case types.NodeNull:
		value = "NULL"
	case types.NodeStar:
		value = "*"
	default:
		value = formatValue(lit.Value)
	}
	return parenthesize(value, lit.Parentheses)
}

// formatValue converts a decoded value to its verbatim SQL token.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	default:
		return fmt.Sprint(val)
	}
}

func truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return strings.EqualFold(val, "true")
	case json.Number:
		f, err := val.Float64()
		return err == nil && f != 0
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	default:
		return false
	}
}
