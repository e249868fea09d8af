package normaliser

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/spectrail-labs/spectrail-cli/internal/core/domain"
)

// Canonical serialises a normalised value into the canonical string
// used as hash input. Object keys are emitted in lexicographic order,
// array order is preserved, strings are NFC-normalised before escaping,
// and numbers use the shortest round-trippable decimal form. Equal
// trees always produce byte-identical output.
func Canonical(v domain.Value) string {
	var b strings.Builder
	writeCanonical(&b, v)
	return b.String()
}

func writeCanonical(b *strings.Builder, v domain.Value) {
	switch val := v.(type) {
	case domain.Null:
		b.WriteString("null")
	case domain.Bool:
		b.WriteString(strconv.FormatBool(bool(val)))
	case domain.Number:
		b.WriteString(formatNumber(float64(val)))
	case domain.String:
		b.WriteString(canonicalString(string(val)))
	case domain.Array:
		b.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonical(b, elem)
		}
		b.WriteByte(']')
	case domain.Object:
		b.WriteByte('{')
		for i, key := range val.SortedKeys() {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(canonicalString(key))
			b.WriteByte(':')
			writeCanonical(b, val[key])
		}
		b.WriteByte('}')
	default:
		// Absent values never reach serialisation; a normalised tree
		// holds explicit Null for JSON null.
		b.WriteString("null")
	}
}

// canonicalString escapes s as a JSON string without HTML escaping,
// applying Unicode NFC first so that composed and decomposed forms of
// the same text serialise identically.
func canonicalString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		// Strings are always encodable; keep the fallback total anyway.
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// formatNumber renders a float in its shortest form that parses back
// to the same value, so 1.0 and 1 canonicalise identically.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
