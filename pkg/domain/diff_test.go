package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name     string
		old      *State
		new      *State
		wantDiff *StateDiff // nil means we expect no diff
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  nil,
			new:  &State{SessionID: "sess-1", History: []string{"start"}},
			wantDiff: &StateDiff{
				SessionID:     "sess-1",
				CurrentNodeID: &[]string{"start"}[0],
				History:       &HistoryDelta{Appended: []string{"start"}},
			},
		},
		{
			name:     "No Changes",
			old:      &State{SessionID: "sess-1", History: []string{"start", "a"}},
			new:      &State{SessionID: "sess-1", History: []string{"start", "a"}},
			wantDiff: nil,
		},
		{
			name: "Select Appends",
			old:  &State{SessionID: "sess-1", History: []string{"start"}},
			new:  &State{SessionID: "sess-1", History: []string{"start", "agent-memory"}},
			wantDiff: &StateDiff{
				SessionID:     "sess-1",
				CurrentNodeID: &[]string{"agent-memory"}[0],
				History:       &HistoryDelta{Appended: []string{"agent-memory"}},
			},
		},
		{
			name: "Back Truncates",
			old:  &State{SessionID: "sess-1", History: []string{"start", "a", "b"}},
			new:  &State{SessionID: "sess-1", History: []string{"start", "a"}},
			wantDiff: &StateDiff{
				SessionID:     "sess-1",
				CurrentNodeID: &[]string{"a"}[0],
				History:       &HistoryDelta{Truncated: 1},
			},
		},
		{
			name: "Reset Then Diverge",
			old:  &State{SessionID: "sess-1", History: []string{"start", "a", "b"}},
			new:  &State{SessionID: "sess-1", History: []string{"start", "c"}},
			wantDiff: &StateDiff{
				SessionID:     "sess-1",
				CurrentNodeID: &[]string{"c"}[0],
				History:       &HistoryDelta{Truncated: 2, Appended: []string{"c"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.old, tt.new)
			if tt.wantDiff == nil {
				if got != nil {
					t.Errorf("Diff() = %v, want nil", got)
				}
				return
			}

			if got == nil {
				t.Fatalf("Diff() = nil, want %v", tt.wantDiff)
			}

			if got.SessionID != tt.wantDiff.SessionID {
				t.Errorf("Diff().SessionID = %v, want %v", got.SessionID, tt.wantDiff.SessionID)
			}
			if !reflect.DeepEqual(got.History, tt.wantDiff.History) {
				t.Errorf("Diff().History = %+v, want %+v", got.History, tt.wantDiff.History)
			}
			if !equalPtr(got.CurrentNodeID, tt.wantDiff.CurrentNodeID) {
				t.Errorf("Diff().CurrentNodeID = %v, want %v", got.CurrentNodeID, tt.wantDiff.CurrentNodeID)
			}

			// Replaying the diff must reproduce the new history.
			var base []string
			if tt.old != nil {
				base = tt.old.History
			}
			if replay := got.Apply(base); !reflect.DeepEqual(replay, tt.new.History) {
				t.Errorf("Apply() = %v, want %v", replay, tt.new.History)
			}
		})
	}
}

func TestDiffJSONSerialization(t *testing.T) {
	t.Run("Truncation Omitted When Zero", func(t *testing.T) {
		diff := Diff(&State{History: []string{"start"}}, &State{History: []string{"start", "a"}})
		if diff == nil {
			t.Fatal("Expected diff, got nil")
		}

		bytes, _ := json.Marshal(diff)
		if strings.Contains(string(bytes), `"truncated"`) {
			t.Errorf("JSON should not contain 'truncated' when zero, got: %s", string(bytes))
		}
	})
}

func equalPtr(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
