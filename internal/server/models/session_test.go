package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTagList_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want TagList
	}{
		{"array", `["yoga"," breathing ","calm"]`, TagList{"yoga", "breathing", "calm"}},
		{"comma string", `"yoga, breathing ,calm"`, TagList{"yoga", "breathing", "calm"}},
		{"empty string", `""`, TagList{}},
		{"blank entries dropped", `[" ","yoga",""]`, TagList{"yoga"}},
		{"empty array", `[]`, TagList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TagList
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("unmarshal error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tags mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTagList_UnmarshalJSON_Invalid(t *testing.T) {
	t.Parallel()

	var got TagList
	if err := json.Unmarshal([]byte(`42`), &got); err == nil {
		t.Fatal("expected error for non-string, non-array tags")
	}
}

func TestStatus_Valid(t *testing.T) {
	t.Parallel()

	if !StatusDraft.Valid() || !StatusPublished.Valid() {
		t.Fatal("draft and published must be valid")
	}
	if Status("archived").Valid() {
		t.Fatal("unknown status must be invalid")
	}
}

func TestUser_PasswordHashNeverSerialized(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(User{ID: "u1", Email: "a@b.c", PasswordHash: "$2a$10$hash"})
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	for k := range m {
		if k == "passwordHash" || k == "PasswordHash" {
			t.Fatalf("password hash leaked into JSON: %s", b)
		}
	}
}
