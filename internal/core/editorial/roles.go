package editorial

import "slices"

// Role classifies a comment author relative to the item under review.
type Role string

// Comment author roles. Exactly one role applies per comment.
const (
	RoleOwner      Role = "owner"
	RoleAutomation Role = "automation"
	RoleEditor     Role = "editor"
	RolePeer       Role = "peer"
)

// Roles classifies comment authors. Editors come from configuration, Bot is
// the bot's own tracker login.
type Roles struct {
	Editors []string
	Bot     string
}

// Classify returns the author's role on an item owned by itemAuthor. The
// checks are ordered so the roles stay mutually exclusive: the item author
// is always the owner, even if they also appear on the editor roster.
func (r Roles) Classify(author, itemAuthor string) Role {
	switch {
	case author == itemAuthor:
		return RoleOwner
	case author == r.Bot:
		return RoleAutomation
	case slices.Contains(r.Editors, author):
		return RoleEditor
	default:
		return RolePeer
	}
}

// IsUpdate reports whether the comment is a content update: an owner
// comment re-posting an embedded image. Update comments mark revision cut
// points for the review workflow.
func (r Roles) IsUpdate(c Comment, itemAuthor string) bool {
	return r.Classify(c.Author, itemAuthor) == RoleOwner && HasImage(c.Body)
}
