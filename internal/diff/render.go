package diff

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/spectrail-labs/spectrail-cli/internal/core/domain"
)

// undefinedMarker renders the side of a change where the property does
// not exist.
const undefinedMarker = "undefined"

// maxRenderLength bounds rendered JSON so a replaced subtree stays
// readable in output.
const maxRenderLength = 60

// renderValue renders a tree value for display in a change record.
func renderValue(v domain.Value) string {
	switch val := v.(type) {
	case nil, domain.Null:
		return undefinedMarker
	case domain.String:
		return string(val)
	case domain.Number:
		return strconv.FormatFloat(float64(val), 'g', -1, 64)
	case domain.Bool:
		return strconv.FormatBool(bool(val))
	case domain.Object:
		if isColor(val) {
			return renderColor(val)
		}
		return renderJSON(val)
	case domain.Array:
		return renderJSON(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// isColor reports whether an object looks like a color: numeric r, g
// and b channels.
func isColor(obj domain.Object) bool {
	for _, key := range []string{"r", "g", "b"} {
		if _, ok := obj[key].(domain.Number); !ok {
			return false
		}
	}
	return true
}

// renderColor renders a color as uppercase hex, appending the alpha
// percentage when the color is partially transparent.
func renderColor(obj domain.Object) string {
	hex := fmt.Sprintf("#%02X%02X%02X", channel(obj["r"]), channel(obj["g"]), channel(obj["b"]))
	if a, ok := obj["a"].(domain.Number); ok && float64(a) < 1 {
		return fmt.Sprintf("%s (%d%%)", hex, int(math.Round(float64(a)*100)))
	}
	return hex
}

// channel converts a 0..1 float channel to its 0..255 value.
func channel(v domain.Value) int {
	f, _ := v.(domain.Number)
	n := int(math.Round(float64(f) * 255))
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

// renderJSON marshals v compactly, truncating with an ellipsis beyond
// maxRenderLength.
func renderJSON(v domain.Value) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	runes := []rune(string(data))
	if len(runes) <= maxRenderLength {
		return string(data)
	}
	return string(runes[:maxRenderLength]) + "..."
}
