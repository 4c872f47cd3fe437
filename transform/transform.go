// ABOUTME: Named formatting transforms applied to resolved field values
// ABOUTME: Provides a string-keyed registry open to runtime registration
package transform

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Func turns a raw resolved value into a display string.
// Funcs never receive nil; Apply short-circuits nil to "".
type Func func(value any) string

var (
	mu       sync.RWMutex
	registry = map[string]Func{
		"currency":          Currency,
		"currency_no_cents": CurrencyNoCents,
		"percent":           Percent,
		"date":              DateLong,
		"date_short":        DateShort,
		"phone":             Phone,
		"checkbox":          Checkbox,
		"uppercase":         func(v any) string { return strings.ToUpper(Stringify(v)) },
		"lowercase":         func(v any) string { return strings.ToLower(Stringify(v)) },
		"titlecase":         Titlecase,
		"trim":              func(v any) string { return strings.TrimSpace(Stringify(v)) },
		"none":              Stringify,
	}
)

// Register adds or replaces a named transform at runtime.
func Register(name string, fn Func) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = fn
}

// Apply runs the named transform against a value. A nil value always yields
// the empty string. An empty or unknown name falls back to plain string
// conversion; unknown names log a warning but never fail.
func Apply(name string, value any) string {
	if value == nil {
		return ""
	}
	if name == "" {
		return Stringify(value)
	}

	mu.RLock()
	fn, ok := registry[name]
	mu.RUnlock()

	if !ok {
		log.Printf("warning: unknown transform %q, using plain string conversion", name)
		return Stringify(value)
	}
	return fn(value)
}

// Stringify converts a raw value to its plain string form.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", value)
	}
}

// Currency formats a numeric value as $X,XXX.XX. String input is cleaned of
// existing $ and , first; non-numeric input falls back to the original string.
func Currency(value any) string {
	f, ok := toFloat(value)
	if !ok {
		return Stringify(value)
	}
	return "$" + humanize.FormatFloat("#,###.##", f)
}

// CurrencyNoCents formats a numeric value as $X,XXX, rounded to the nearest dollar.
func CurrencyNoCents(value any) string {
	f, ok := toFloat(value)
	if !ok {
		return Stringify(value)
	}
	return "$" + humanize.FormatFloat("#,###.", math.Round(f))
}

// Percent renders a number with a % suffix, dropping a trailing .0 on whole
// values (6 not 6.0) and keeping decimals otherwise.
func Percent(value any) string {
	f, ok := toFloat(value)
	if !ok {
		return Stringify(value)
	}
	return strconv.FormatFloat(f, 'f', -1, 64) + "%"
}

// Date layouts accepted for string input, tried in order.
var dateLayouts = []string{"2006-01-02", "01/02/2006", "01-02-2006"}

// DateLong renders a date as "January 2, 2006". Unparsable strings pass
// through unchanged with a warning.
func DateLong(value any) string {
	return formatDate(value, "January 2, 2006")
}

// DateShort renders a date as MM/DD/YYYY.
func DateShort(value any) string {
	return formatDate(value, "01/02/2006")
}

func formatDate(value any, layout string) string {
	if t, ok := value.(time.Time); ok {
		return t.Format(layout)
	}
	s := strings.TrimSpace(Stringify(value))
	if s == "" {
		return ""
	}
	for _, in := range dateLayouts {
		if t, err := time.Parse(in, s); err == nil {
			return t.Format(layout)
		}
	}
	log.Printf("warning: unparsable date %q, passing through", s)
	return s
}

// Phone formats 10-digit (and leading-1 11-digit) numbers as (XXX) XXX-XXXX.
// Anything else is returned unchanged.
func Phone(value any) string {
	original := Stringify(value)
	var digits strings.Builder
	for _, r := range original {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) == 11 && d[0] == '1' {
		d = d[1:]
	}
	if len(d) != 10 {
		return original
	}
	return fmt.Sprintf("(%s) %s-%s", d[0:3], d[3:6], d[6:10])
}

// Checkbox maps truthy values to "true" for checkbox template fields.
func Checkbox(value any) string {
	switch v := value.(type) {
	case bool:
		if v {
			return "true"
		}
		return ""
	}
	switch strings.ToLower(strings.TrimSpace(Stringify(value))) {
	case "true", "yes", "on", "1", "x", "checked":
		return "true"
	}
	return ""
}

var titleCaser = cases.Title(language.AmericanEnglish)

// Titlecase renders a string in title case.
func Titlecase(value any) string {
	return titleCaser.String(Stringify(value))
}

// toFloat coerces numeric types and numeric-looking strings. Strings are
// cleaned of $, commas, and whitespace before parsing.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		cleaned := strings.TrimSpace(v)
		cleaned = strings.ReplaceAll(cleaned, "$", "")
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		if cleaned == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
