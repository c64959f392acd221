package domain

import "strings"

// ModerationStatus is the review state of user-submitted content.
type ModerationStatus string

const (
	StatusPending  ModerationStatus = "pending"
	StatusApproved ModerationStatus = "approved"
	StatusRejected ModerationStatus = "rejected"
)

// Valid reports whether s is one of the known moderation states.
func (s ModerationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Moderation carries the review state shared by all moderatable content.
// It is embedded in Listing and Blog.
//
// Lifecycle: owner submission always starts at pending; an admin decides
// approved or rejected; an owner edit of anything not yet approved resubmits
// it as pending. Approved content is frozen for its owner; the only way
// forward is delete and resubmit.
type Moderation struct {
	Status           ModerationStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	ModeratorComment string           `gorm:"size:1000" json:"moderator_comment,omitempty"`
	ModeratorID      *uint            `json:"moderator_id,omitempty"`
}

// Submit resets the state for a fresh owner submission. Whatever status the
// incoming payload claimed is discarded: created content is always pending.
func (m *Moderation) Submit() {
	m.Status = StatusPending
	m.ModeratorComment = ""
	m.ModeratorID = nil
}

// Decide applies a moderator decision. Only approved and rejected are
// decisions; a rejection must carry a non-blank comment explaining why.
// Re-applying the same decision is allowed and refreshes the comment.
func (m *Moderation) Decide(decision ModerationStatus, moderatorID uint, comment string) error {
	switch decision {
	case StatusApproved:
		m.Status = StatusApproved
		m.ModeratorComment = ""
	case StatusRejected:
		if strings.TrimSpace(comment) == "" {
			return NewAppError(CodeValidation, "comment required for rejection", nil)
		}
		m.Status = StatusRejected
		m.ModeratorComment = comment
	default:
		return NewAppError(CodeValidation, "decision must be approved or rejected", nil)
	}
	m.ModeratorID = &moderatorID
	return nil
}

// ResetForEdit moves content back to pending after an owner edit, clearing
// any previous rejection comment. Approved content cannot be edited: the
// caller gets a conflict and the state is left untouched.
func (m *Moderation) ResetForEdit() error {
	if m.Status == StatusApproved {
		return NewAppError(CodeConflict, "approved content cannot be edited, delete and resubmit", nil)
	}
	m.Status = StatusPending
	m.ModeratorComment = ""
	m.ModeratorID = nil
	return nil
}

// Actor is the authenticated principal performing an operation.
type Actor struct {
	ID   uint
	Role string
}

// IsAdmin reports whether the actor has the admin role, which doubles as the
// moderator capability.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanManage reports whether the actor may mutate content owned by ownerID.
func (a Actor) CanManage(ownerID uint) bool {
	return a.ID == ownerID || a.IsAdmin()
}
