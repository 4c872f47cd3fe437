// ABOUTME: Unit tests for the transform registry
// ABOUTME: Covers currency, date, phone formatting and registry fallback behavior
package transform

import (
	"testing"
	"time"
)

func TestApplyNilValue(t *testing.T) {
	for _, name := range []string{"", "currency", "date", "phone", "no_such_transform"} {
		if got := Apply(name, nil); got != "" {
			t.Errorf("Apply(%q, nil) = %q, want empty string", name, got)
		}
	}
}

func TestApplyUnknownName(t *testing.T) {
	if got := Apply("definitely_not_registered", 42); got != "42" {
		t.Errorf("Apply(unknown, 42) = %q, want %q", got, "42")
	}
}

func TestRegister(t *testing.T) {
	Register("shout", func(v any) string { return Stringify(v) + "!" })
	if got := Apply("shout", "hello"); got != "hello!" {
		t.Errorf("Apply(shout) = %q, want %q", got, "hello!")
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"int", 500000, "$500,000.00"},
		{"float", 1234.5, "$1,234.50"},
		{"string", "450000", "$450,000.00"},
		{"already formatted", "$500,000.00", "$500,000.00"},
		{"small", 7, "$7.00"},
		{"non-numeric falls through", "TBD", "TBD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Apply("currency", tt.value); got != tt.want {
				t.Errorf("currency(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestCurrencyNoCents(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{500000, "$500,000"},
		{1234.6, "$1,235"},
		{"$12,500.49", "$12,500"},
		{"n/a", "n/a"},
	}

	for _, tt := range tests {
		if got := Apply("currency_no_cents", tt.value); got != tt.want {
			t.Errorf("currency_no_cents(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{6.0, "6%"},
		{6, "6%"},
		{6.5, "6.5%"},
		{"3.25", "3.25%"},
		{"unknown", "unknown"},
	}

	for _, tt := range tests {
		if got := Apply("percent", tt.value); got != tt.want {
			t.Errorf("percent(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestDateLong(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"iso", "2024-03-15", "March 15, 2024"},
		{"us slashes", "03/15/2024", "March 15, 2024"},
		{"us dashes", "03-15-2024", "March 15, 2024"},
		{"time value", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), "March 15, 2024"},
		{"unparsable passes through", "next Tuesday", "next Tuesday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Apply("date", tt.value); got != tt.want {
				t.Errorf("date(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestDateShort(t *testing.T) {
	if got := Apply("date_short", "2024-03-15"); got != "03/15/2024" {
		t.Errorf("date_short = %q, want 03/15/2024", got)
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"ten digits", "7135551234", "(713) 555-1234"},
		{"eleven with country code", "17135551234", "(713) 555-1234"},
		{"formatted input", "713.555.1234", "(713) 555-1234"},
		{"seven digits unchanged", "5551234", "5551234"},
		{"garbage unchanged", "call me", "call me"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Apply("phone", tt.value); got != tt.want {
				t.Errorf("phone(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestCaseTransforms(t *testing.T) {
	tests := []struct {
		transform string
		value     any
		want      string
	}{
		{"uppercase", "main st", "MAIN ST"},
		{"lowercase", "Main St", "main st"},
		{"titlecase", "100 main street", "100 Main Street"},
		{"trim", "  padded  ", "padded"},
		{"none", 42, "42"},
	}

	for _, tt := range tests {
		if got := Apply(tt.transform, tt.value); got != tt.want {
			t.Errorf("%s(%v) = %q, want %q", tt.transform, tt.value, got, tt.want)
		}
	}
}

func TestCheckbox(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{true, "true"},
		{false, ""},
		{"yes", "true"},
		{"on", "true"},
		{"no", ""},
	}

	for _, tt := range tests {
		if got := Apply("checkbox", tt.value); got != tt.want {
			t.Errorf("checkbox(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
