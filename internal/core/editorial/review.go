package editorial

// Thread pairs an item's comment history with the role roster needed to
// count reviews. Comment order is chronological; revision cut points depend
// on it.
type Thread struct {
	Author   string
	Comments []Comment
	Roles    Roles
}

// PeerCount returns the number of peer comments at or after index from.
func (t Thread) PeerCount(from int) int {
	return t.countRole(from, RolePeer)
}

// EditorCount returns the number of editor comments at or after index from.
func (t Thread) EditorCount(from int) int {
	return t.countRole(from, RoleEditor)
}

func (t Thread) countRole(from int, role Role) int {
	if from < 0 {
		from = 0
	}
	count := 0
	for i := from; i < len(t.Comments); i++ {
		if t.Roles.Classify(t.Comments[i].Author, t.Author) == role {
			count++
		}
	}
	return count
}

// UpdateIndex returns the position of the first update comment, or -1 when
// none exists. Later update comments never move the cut point.
func (t Thread) UpdateIndex() int {
	for i, c := range t.Comments {
		if t.Roles.IsUpdate(c, t.Author) {
			return i
		}
	}
	return -1
}

// HasUpdate reports whether any update comment exists.
func (t Thread) HasUpdate() bool {
	return t.UpdateIndex() >= 0
}

// RevisionCutUsable reports whether post-update review counts can be judged
// at all: an update comment must exist and must not be the final comment.
// Until then, after-update review requirements are unconditionally unmet.
func (t Thread) RevisionCutUsable() bool {
	idx := t.UpdateIndex()
	return idx >= 0 && idx < len(t.Comments)-1
}
