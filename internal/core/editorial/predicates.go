package editorial

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	markdownImageRe = regexp.MustCompile(`!\[.*\]\(.*\)`)
	// A link mention must be preceded by a space so plain anchors like
	// "#heading" at the start of a line don't count.
	issueLinkRe = regexp.MustCompile(` #(\d+)`)
	issueRefRe  = regexp.MustCompile(`#(\d+)`)
)

// HasChecklist reports whether the body contains at least one markdown
// checkbox marker.
func HasChecklist(body string) bool {
	for _, marker := range []string{"[ ]", "[x]", "[X]"} {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return false
}

// HasImage reports whether the body contains a markdown image reference.
func HasImage(body string) bool {
	return markdownImageRe.MatchString(body)
}

// HasIssueLink reports whether the body mentions another item as " #N".
func HasIssueLink(body string) bool {
	return issueLinkRe.MatchString(body)
}

// LinkedNumbers returns every item number referenced as "#N" in the body,
// in order of appearance.
func LinkedNumbers(body string) []int {
	var numbers []int
	for _, m := range issueRefRe.FindAllStringSubmatch(body, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}
	return numbers
}
