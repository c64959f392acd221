package domain

import "testing"

func TestModerationStatus_Valid(t *testing.T) {
	for _, s := range []ModerationStatus{StatusPending, StatusApproved, StatusRejected} {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}
	for _, s := range []ModerationStatus{"", "draft", "Approved", "PENDING"} {
		if s.Valid() {
			t.Errorf("status %q should be invalid", s)
		}
	}
}

func TestModeration_SubmitAlwaysStartsPending(t *testing.T) {
	modID := uint(3)
	m := Moderation{
		Status:           StatusRejected,
		ModeratorComment: "blurry photos",
		ModeratorID:      &modID,
	}

	m.Submit()

	if m.Status != StatusPending {
		t.Errorf("status = %q; want pending", m.Status)
	}
	if m.ModeratorComment != "" {
		t.Errorf("comment = %q; want cleared", m.ModeratorComment)
	}
	if m.ModeratorID != nil {
		t.Error("moderator id should be cleared on submit")
	}
}

func TestModeration_DecideApprove(t *testing.T) {
	m := Moderation{Status: StatusPending, ModeratorComment: "stale note"}

	if err := m.Decide(StatusApproved, 7, "looks fine"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if m.Status != StatusApproved {
		t.Errorf("status = %q; want approved", m.Status)
	}
	if m.ModeratorComment != "" {
		t.Errorf("comment = %q; approval must not carry a comment", m.ModeratorComment)
	}
	if m.ModeratorID == nil || *m.ModeratorID != 7 {
		t.Errorf("moderator id = %v; want 7", m.ModeratorID)
	}
}

func TestModeration_DecideRejectRequiresComment(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		wantErr bool
	}{
		{"empty comment", "", true},
		{"whitespace only", "   ", true},
		{"real comment", "price looks fabricated", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Moderation{Status: StatusPending}
			err := m.Decide(StatusRejected, 2, tt.comment)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !IsValidation(err) {
					t.Errorf("error = %v; want validation error", err)
				}
				if m.Status != StatusPending {
					t.Errorf("status changed to %q on failed decision", m.Status)
				}
				return
			}

			if err != nil {
				t.Fatalf("reject: %v", err)
			}
			if m.Status != StatusRejected {
				t.Errorf("status = %q; want rejected", m.Status)
			}
			if m.ModeratorComment != tt.comment {
				t.Errorf("comment = %q; want %q", m.ModeratorComment, tt.comment)
			}
		})
	}
}

func TestModeration_DecideRejectsBadDecision(t *testing.T) {
	m := Moderation{Status: StatusPending}
	for _, d := range []ModerationStatus{StatusPending, "", "published"} {
		if err := m.Decide(d, 1, "whatever"); err == nil {
			t.Errorf("decision %q should be rejected", d)
		}
	}
	if m.Status != StatusPending {
		t.Errorf("status = %q after failed decisions; want pending", m.Status)
	}
}

func TestModeration_DecideIsIdempotent(t *testing.T) {
	m := Moderation{Status: StatusPending}

	if err := m.Decide(StatusRejected, 4, "first pass"); err != nil {
		t.Fatalf("first reject: %v", err)
	}
	if err := m.Decide(StatusRejected, 9, "second pass"); err != nil {
		t.Fatalf("repeat reject: %v", err)
	}

	if m.Status != StatusRejected {
		t.Errorf("status = %q; want rejected", m.Status)
	}
	if m.ModeratorComment != "second pass" {
		t.Errorf("comment = %q; repeat decision should refresh it", m.ModeratorComment)
	}
	if m.ModeratorID == nil || *m.ModeratorID != 9 {
		t.Errorf("moderator id = %v; want 9", m.ModeratorID)
	}
}

func TestModeration_ResetForEdit(t *testing.T) {
	t.Run("rejected goes back to pending", func(t *testing.T) {
		modID := uint(5)
		m := Moderation{Status: StatusRejected, ModeratorComment: "fix the photos", ModeratorID: &modID}

		if err := m.ResetForEdit(); err != nil {
			t.Fatalf("reset: %v", err)
		}
		if m.Status != StatusPending {
			t.Errorf("status = %q; want pending", m.Status)
		}
		if m.ModeratorComment != "" || m.ModeratorID != nil {
			t.Error("moderator fields should be cleared on reset")
		}
	})

	t.Run("pending stays pending", func(t *testing.T) {
		m := Moderation{Status: StatusPending}
		if err := m.ResetForEdit(); err != nil {
			t.Fatalf("reset: %v", err)
		}
		if m.Status != StatusPending {
			t.Errorf("status = %q; want pending", m.Status)
		}
	})

	t.Run("approved is locked", func(t *testing.T) {
		m := Moderation{Status: StatusApproved}
		err := m.ResetForEdit()
		if err == nil {
			t.Fatal("expected conflict error, got nil")
		}
		if !IsConflict(err) {
			t.Errorf("error = %v; want conflict", err)
		}
		if m.Status != StatusApproved {
			t.Errorf("status = %q; failed reset must not mutate", m.Status)
		}
	})
}

func TestActor_CanManage(t *testing.T) {
	tests := []struct {
		name  string
		actor Actor
		owner uint
		want  bool
	}{
		{"owner", Actor{ID: 1, Role: RoleUser}, 1, true},
		{"other user", Actor{ID: 1, Role: RoleUser}, 2, false},
		{"admin over anyone", Actor{ID: 9, Role: RoleAdmin}, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.actor.CanManage(tt.owner); got != tt.want {
				t.Errorf("CanManage(%d) = %v; want %v", tt.owner, got, tt.want)
			}
		})
	}
}
