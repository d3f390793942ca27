package editorial

import (
	"regexp"
	"strings"
)

var bracketTagRe = regexp.MustCompile(`\[(.*?)\]`)

// ExtractTags parses bracketed category tags out of an item title.
// It returns the display labels for every recognized tag and the title with
// the matched tags removed (case-insensitively) and trimmed. Unrecognized
// bracket content is left in place.
//
//	ExtractTags("[Pitch] My idea") -> ["Type: Pitch"], "My idea"
func ExtractTags(title string) (labels []string, clean string) {
	clean = title

	seen := map[Command]bool{}
	for _, m := range bracketTagRe.FindAllStringSubmatch(title, -1) {
		cmd, ok := CommandForTag(m[1])
		if !ok || seen[cmd] {
			continue
		}
		seen[cmd] = true
		labels = append(labels, cmd.Display())

		tagRe := regexp.MustCompile(`(?i)\[` + regexp.QuoteMeta(string(cmd)) + `\]`)
		clean = tagRe.ReplaceAllString(clean, "")
	}

	return labels, strings.TrimSpace(clean)
}
