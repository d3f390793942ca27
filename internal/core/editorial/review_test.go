package editorial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testRoles = Roles{
	Editors: []string{"editor1", "editor2"},
	Bot:     "deskbot",
}

func TestRolesClassify(t *testing.T) {
	cases := []struct {
		name       string
		author     string
		itemAuthor string
		want       Role
	}{
		{"item author is owner", "alice", "alice", RoleOwner},
		{"bot is automation", "deskbot", "alice", RoleAutomation},
		{"roster member is editor", "editor1", "alice", RoleEditor},
		{"anyone else is a peer", "bob", "alice", RolePeer},
		{"owner wins over editor roster", "editor1", "editor1", RoleOwner},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, testRoles.Classify(tc.author, tc.itemAuthor))
		})
	}
}

func TestRolesIsUpdate(t *testing.T) {
	image := "new draft ![v2](https://example.com/v2.png)"

	t.Run("owner image comment is an update", func(t *testing.T) {
		c := Comment{Author: "alice", Body: image}
		assert.True(t, testRoles.IsUpdate(c, "alice"))
	})

	t.Run("peer image comment is not", func(t *testing.T) {
		c := Comment{Author: "bob", Body: image}
		assert.False(t, testRoles.IsUpdate(c, "alice"))
	})

	t.Run("owner comment without image is not", func(t *testing.T) {
		c := Comment{Author: "alice", Body: "working on it"}
		assert.False(t, testRoles.IsUpdate(c, "alice"))
	})
}

func TestThreadCounts(t *testing.T) {
	thread := Thread{
		Author: "alice",
		Roles:  testRoles,
		Comments: []Comment{
			{Author: "bob", Body: "nice"},                // 0 peer
			{Author: "editor1", Body: "tighten the lede"}, // 1 editor
			{Author: "deskbot", Body: "beep"},            // 2 automation
			{Author: "alice", Body: "![v2](x.png)"},      // 3 owner update
			{Author: "carol", Body: "better"},            // 4 peer
		},
	}

	t.Run("full-thread counts", func(t *testing.T) {
		assert.Equal(t, 2, thread.PeerCount(0))
		assert.Equal(t, 1, thread.EditorCount(0))
	})

	t.Run("counts from the revision cut point", func(t *testing.T) {
		idx := thread.UpdateIndex()
		assert.Equal(t, 3, idx)
		assert.Equal(t, 1, thread.PeerCount(idx))
		assert.Equal(t, 0, thread.EditorCount(idx))
	})

	t.Run("negative from counts the whole thread", func(t *testing.T) {
		assert.Equal(t, 2, thread.PeerCount(-1))
	})
}

func TestThreadUpdateIndex(t *testing.T) {
	t.Run("no update comment", func(t *testing.T) {
		thread := Thread{
			Author:   "alice",
			Roles:    testRoles,
			Comments: []Comment{{Author: "bob", Body: "hi"}},
		}
		assert.Equal(t, -1, thread.UpdateIndex())
		assert.False(t, thread.HasUpdate())
		assert.False(t, thread.RevisionCutUsable())
	})

	t.Run("first update wins over later ones", func(t *testing.T) {
		thread := Thread{
			Author: "alice",
			Roles:  testRoles,
			Comments: []Comment{
				{Author: "alice", Body: "![v1](a.png)"},
				{Author: "bob", Body: "looks good"},
				{Author: "alice", Body: "![v2](b.png)"},
			},
		}
		assert.Equal(t, 0, thread.UpdateIndex())
	})

	t.Run("update as last comment is not a usable cut", func(t *testing.T) {
		thread := Thread{
			Author: "alice",
			Roles:  testRoles,
			Comments: []Comment{
				{Author: "bob", Body: "hi"},
				{Author: "alice", Body: "![v2](b.png)"},
			},
		}
		assert.True(t, thread.HasUpdate())
		assert.False(t, thread.RevisionCutUsable())
	})
}
