package placeholder

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// tokenPattern matches {{KEY}} tokens. Keys are upper-case identifiers.
var tokenPattern = regexp.MustCompile(`\{\{([A-Z][A-Z0-9_]*)\}\}`)

// Values maps placeholder names (without braces) to their substitution.
type Values map[string]any

// Token returns the placeholder token for key, e.g. "{{CORE_RPC_PORT}}".
func Token(key string) string {
	return "{{" + key + "}}"
}

// Resolve substitutes every occurrence of each known token in template.
// Keys missing from values are left unresolved.
func Resolve(template string, values Values) string {
	if template == "" || len(values) == 0 {
		return template
	}

	// Sorted keys keep the replacer construction deterministic.
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, Token(k), Format(values[k]))
	}

	return strings.NewReplacer(pairs...).Replace(template)
}

// Unresolved returns the distinct keys of tokens still present in text,
// in order of first appearance.
func Unresolved(text string) []string {
	return Keys(text)
}

// Keys returns the distinct placeholder keys referenced by template, in order
// of first appearance.
func Keys(template string) []string {
	matches := tokenPattern.FindAllStringSubmatch(template, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			keys = append(keys, m[1])
		}
	}
	return keys
}

// Format renders a value the way it should appear inside a TOML document.
// Floats always keep a fractional part so the consumer reads them as floats.
func Format(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint16:
		return strconv.FormatUint(uint64(val), 10)
	case float32:
		return formatFloat(float64(val))
	case float64:
		return formatFloat(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}
