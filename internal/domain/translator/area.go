package translator

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const UnknownArea = "Unknown"

var leadingTwoWords = regexp.MustCompile(`^(\w+\s+\w+)`)

// ResolveArea picks an area for an entity. An explicit area_id wins; otherwise
// the first two words of the display name are used as a best-effort guess,
// which is often wrong for names like "Kitchen Light". Falls back to "Unknown".
func ResolveArea(attrs map[string]interface{}) string {
	if id, _ := attrs["area_id"].(string); id != "" {
		return FormatAreaName(id)
	}
	name, _ := attrs["friendly_name"].(string)
	if m := leadingTwoWords.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return UnknownArea
}

// FormatAreaName turns "living_room" into "Living Room".
func FormatAreaName(areaID string) string {
	words := strings.Split(areaID, "_")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
