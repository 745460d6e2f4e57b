package currency

import (
	"math"
	"strconv"
	"strings"
)

// ParseBRL converts a locale-formatted currency string into its numeric
// value. Catalog data is authored as Brazilian-locale text with inconsistent
// separator conventions, so both "R$ 74.350,00" and "1,234.56" must resolve
// to the intended amount.
//
// When both a comma and a period are present, the separator occurring last in
// the string is taken as the decimal separator and the other is removed as a
// thousands separator. This is a heuristic tied to the fixed catalog format
// and is kept intentionally; do not "correct" it for other locales.
//
// ParseBRL is total: any input, including empty or garbled text, yields a
// finite number. Unparseable input yields 0, never NaN.
func ParseBRL(raw string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			return r
		}
		return -1
	}, raw)

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// European format: 74.350,00 -> dot groups thousands.
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			// US format: 1,234.56 -> comma groups thousands.
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0 && strings.Count(cleaned, ",") == 1:
		// Single comma with no dot is a decimal separator: 1500,50.
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatBRL renders a numeric amount as Brazilian-locale currency text,
// e.g. 74350 -> "R$ 74.350,00". The amount is rounded to whole centavos.
func FormatBRL(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	cents := int64(math.Round(v * 100))
	reais := strconv.FormatInt(cents/100, 10)

	var b strings.Builder
	b.Grow(len(reais) + len(reais)/3 + 8)
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("R$ ")

	// Insert thousands separators from the left.
	rem := len(reais) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(reais[:rem])
	for i := rem; i < len(reais); i += 3 {
		b.WriteByte('.')
		b.WriteString(reais[i : i+3])
	}

	b.WriteByte(',')
	centavos := cents % 100
	if centavos < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(centavos, 10))

	return b.String()
}
