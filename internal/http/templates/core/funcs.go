// Package core provides the template helpers shared by every page.
package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"
	"time"
)

// Deps holds optional dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
}

// Funcs returns a template.FuncMap containing helpers that are broadly useful across templates.
func Funcs(deps Deps) template.FuncMap {
	funcs := template.FuncMap{
		"sectionTmpl":  deps.ContentTemplateFor,
		"friendlyDate": FriendlyDate,
		"timeTag":      timeTag,
		"add":          func(a, b int) int { return a + b },
		"sub":          func(a, b int) int { return a - b },
		"contains":     strings.Contains,
		"lower":        strings.ToLower,
		"formatNumber": FormatNumber,
		"formatPrice":  FormatPrice,
		"initials":     Initials,
		"truncateText": TruncateText,
		"dict":         Dict,
	}

	addRenderFuncs(funcs, deps)
	return funcs
}

func addRenderFuncs(funcs template.FuncMap, deps Deps) {
	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - output of our own html/template execution, already escaped.
		return template.HTML(buf.String()), nil
	}

	funcs["toJSON"] = func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

// parseTimestamp accepts the backend's ISO strings, date-only strings and time values.
func parseTimestamp(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, !x.IsZero()
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return *x, !x.IsZero()
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, time.DateOnly} {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// FriendlyDate renders "2 Jan 2006". Unparseable strings are returned as-is.
func FriendlyDate(v any) string {
	t, ok := parseTimestamp(v)
	if !ok {
		if s, isString := v.(string); isString {
			return s
		}
		return ""
	}
	return t.UTC().Format("2 Jan 2006")
}

func timeTag(v any) template.HTML {
	t, ok := parseTimestamp(v)
	if !ok {
		return ""
	}
	// #nosec G203 - constructed from escaped values only
	return template.HTML(fmt.Sprintf(
		`<time datetime="%s" title="%s">%s</time>`,
		t.UTC().Format(time.RFC3339),
		template.HTMLEscapeString(t.UTC().Format(time.RFC1123)),
		template.HTMLEscapeString(t.UTC().Format("2 Jan 2006")),
	))
}

// FormatNumber groups thousands with commas. Integral values print without
// decimals; fractional values keep up to three.
func FormatNumber(v any) string {
	var f float64
	switch x := v.(type) {
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case float64:
		f = x
	case float32:
		f = float64(x)
	default:
		return fmt.Sprint(v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0"
	}
	neg := f < 0
	f = math.Abs(f)
	whole, frac := math.Modf(f)
	s := groupThousands(strconv.FormatFloat(whole, 'f', 0, 64))
	if frac > 0 {
		dec := strings.TrimRight(strconv.FormatFloat(frac, 'f', 3, 64), "0")
		if strings.HasPrefix(dec, "0.") && dec != "0." {
			s += strings.TrimPrefix(dec, "0")
		}
	}
	if neg {
		return "-" + s
	}
	return s
}

// FormatPrice renders a price with two decimals and thousands separators.
func FormatPrice(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.00"
	}
	s := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)
	whole, dec, _ := strings.Cut(s, ".")
	out := groupThousands(whole) + "." + dec
	if v < 0 {
		return "-" + out
	}
	return out
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + (len(s)-1)/3)
	prefix := len(s) % 3
	if prefix == 0 {
		prefix = 3
	}
	b.WriteString(s[:prefix])
	for i := prefix; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Initials returns up to two upper-case initials for an avatar.
func Initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		r := []rune(part)
		out = append(out, []rune(strings.ToUpper(string(r[0])))...)
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}

// TruncateText truncates a string to a maximum number of runes, adding an ellipsis.
func TruncateText(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen <= 0 || len(runes) <= maxLen {
		return s
	}
	if maxLen > 1 {
		return string(runes[:maxLen-1]) + "…"
	}
	return string(runes[:1])
}

// Dict builds a map from alternating key/value arguments so partials can take
// more than one value.
func Dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict requires an even number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}
