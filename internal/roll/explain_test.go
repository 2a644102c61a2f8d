package roll

import "testing"

func TestSelectExplanations(t *testing.T) {
	frames := []FrameClassification{
		{Frame: "f1.jpg", Role: RoleA, Description: "speaker talking"},
		{Frame: "f2.jpg", Role: RoleA},
		{Frame: "f3.jpg", Role: RoleB, Description: "phone screen"},
		{Frame: "f4.jpg", Role: RoleC, Description: "meme insert"},
	}
	segments, err := BuildSegments(frames, 1)
	if err != nil {
		t.Fatalf("BuildSegments() error = %v", err)
	}
	if len(segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(segments))
	}

	tests := []struct {
		max  int
		want map[int]string
	}{
		{0, nil},
		{1, map[int]string{0: "speaker talking"}},
		{2, map[int]string{0: "speaker talking", 1: "phone screen"}},
		{3, map[int]string{0: "speaker talking", 1: "phone screen", 2: "meme insert"}},
		{10, map[int]string{0: "speaker talking", 1: "phone screen", 2: "meme insert"}},
	}
	for _, tt := range tests {
		got := SelectExplanations(frames, segments, tt.max)
		if len(got) != len(tt.want) {
			t.Errorf("max=%d: got %d entries, want %d", tt.max, len(got), len(tt.want))
			continue
		}
		for idx, text := range tt.want {
			if got[idx] != text {
				t.Errorf("max=%d: entry %d = %q, want %q", tt.max, idx, got[idx], text)
			}
		}
	}
}

func TestSelectExplanationsDeterministic(t *testing.T) {
	frames := framesWithRoles(RoleA, RoleB, RoleC)
	segments, err := BuildSegments(frames, 1)
	if err != nil {
		t.Fatalf("BuildSegments() error = %v", err)
	}
	first := SelectExplanations(frames, segments, 2)
	second := SelectExplanations(frames, segments, 2)
	if len(first) != len(second) {
		t.Fatalf("runs differ in size: %d vs %d", len(first), len(second))
	}
	for k, v := range first {
		if second[k] != v {
			t.Errorf("entry %d differs: %q vs %q", k, v, second[k])
		}
	}
}
