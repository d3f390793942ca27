package editorial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasChecklist(t *testing.T) {
	assert.True(t, HasChecklist("- [ ] write draft"))
	assert.True(t, HasChecklist("- [x] done"))
	assert.True(t, HasChecklist("- [X] DONE"))
	assert.False(t, HasChecklist("no boxes here"))
	assert.False(t, HasChecklist(""))
}

func TestHasImage(t *testing.T) {
	assert.True(t, HasImage("here ![chart](https://example.com/a.png) done"))
	assert.True(t, HasImage("![](https://example.com/a.png)"))
	assert.False(t, HasImage("[a link](https://example.com)"))
	assert.False(t, HasImage("plain text"))
}

func TestHasIssueLink(t *testing.T) {
	assert.True(t, HasIssueLink("see #42 for the pitch"))
	assert.False(t, HasIssueLink("#42 with no leading space"))
	assert.False(t, HasIssueLink("issue number 42"))
}

func TestLinkedNumbers(t *testing.T) {
	t.Run("finds every reference in order", func(t *testing.T) {
		got := LinkedNumbers("pitch is #12, see also #7 and #12")
		assert.Equal(t, []int{12, 7, 12}, got)
	})

	t.Run("finds references at line start", func(t *testing.T) {
		got := LinkedNumbers("#3 is related")
		assert.Equal(t, []int{3}, got)
	})

	t.Run("no references", func(t *testing.T) {
		assert.Empty(t, LinkedNumbers("nothing to see"))
	})
}
