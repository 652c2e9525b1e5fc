package http

import (
	"html/template"
	"strings"

	"github.com/shopspring/decimal"

	"hisab/internal/core"
)

var templateFuncs = template.FuncMap{
	"taka": core.FormatTaka,
	// num renders a decimal for an input value; zero becomes empty.
	"num": func(d decimal.Decimal) string {
		if d.IsZero() {
			return ""
		}
		return d.String()
	},
	"negative": func(d decimal.Decimal) bool {
		return d.IsNegative()
	},
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}
