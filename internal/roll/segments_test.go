package roll

import (
	"errors"
	"reflect"
	"testing"
)

func framesWithRoles(roles ...Role) []FrameClassification {
	frames := make([]FrameClassification, len(roles))
	for i, r := range roles {
		frames[i] = FrameClassification{
			Frame:      "frame_" + string(rune('a'+i)) + ".jpg",
			Role:       r,
			Confidence: 0.9,
			ARollRatio: 0.5,
			BRollRatio: 0.5,
		}
	}
	return frames
}

func TestBuildSegmentsScenario(t *testing.T) {
	frames := framesWithRoles(RoleA, RoleA, RoleA, RoleB, RoleB, RoleC)

	segments, err := BuildSegments(frames, 1)
	if err != nil {
		t.Fatalf("BuildSegments() error = %v", err)
	}

	want := []struct {
		start, end int
		role       Role
		tcStart    string
		tcEnd      string
	}{
		{0, 3, RoleA, "00:00", "00:03"},
		{3, 5, RoleB, "00:03", "00:05"},
		{5, 6, RoleC, "00:05", "00:06"},
	}
	if len(segments) != len(want) {
		t.Fatalf("got %d segments, want %d", len(segments), len(want))
	}
	for i, w := range want {
		s := segments[i]
		if s.StartIndex != w.start || s.EndIndex != w.end || s.Role != w.role {
			t.Errorf("segment %d = {%d,%d,%s}, want {%d,%d,%s}", i, s.StartIndex, s.EndIndex, s.Role, w.start, w.end, w.role)
		}
		if s.Start != w.tcStart || s.End != w.tcEnd {
			t.Errorf("segment %d timecodes = %s-%s, want %s-%s", i, s.Start, s.End, w.tcStart, w.tcEnd)
		}
	}
}

func TestBuildSegmentsPartition(t *testing.T) {
	cases := [][]Role{
		{RoleA},
		{RoleA, RoleB},
		{RoleB, RoleB, RoleA, RoleC, RoleC, RoleC, RoleA},
		{RoleC, RoleA, RoleC, RoleA, RoleC},
	}
	for _, roles := range cases {
		frames := framesWithRoles(roles...)
		segments, err := BuildSegments(frames, 25)
		if err != nil {
			t.Fatalf("BuildSegments() error = %v", err)
		}
		if segments[0].StartIndex != 0 {
			t.Errorf("first segment starts at %d, want 0", segments[0].StartIndex)
		}
		if last := segments[len(segments)-1]; last.EndIndex != len(frames) {
			t.Errorf("last segment ends at %d, want %d", last.EndIndex, len(frames))
		}
		for i := 1; i < len(segments); i++ {
			if segments[i].StartIndex != segments[i-1].EndIndex {
				t.Errorf("segment %d starts at %d, previous ends at %d", i, segments[i].StartIndex, segments[i-1].EndIndex)
			}
			if segments[i].Start != segments[i-1].End {
				t.Errorf("segment %d start %q != previous end %q", i, segments[i].Start, segments[i-1].End)
			}
		}
		if len(segments) > len(frames) {
			t.Errorf("%d segments exceed %d frames", len(segments), len(frames))
		}
	}
}

func TestBuildSegmentsConstantRole(t *testing.T) {
	frames := framesWithRoles(RoleB, RoleB, RoleB, RoleB)
	segments, err := BuildSegments(frames, 2)
	if err != nil {
		t.Fatalf("BuildSegments() error = %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	if segments[0].Start != "00:00" || segments[0].End != "00:02" {
		t.Errorf("timecodes = %s-%s, want 00:00-00:02", segments[0].Start, segments[0].End)
	}
}

func TestBuildSegmentsIdempotent(t *testing.T) {
	frames := framesWithRoles(RoleA, RoleB, RoleB, RoleC)
	first, err := BuildSegments(frames, 10)
	if err != nil {
		t.Fatalf("BuildSegments() error = %v", err)
	}
	second, err := BuildSegments(frames, 10)
	if err != nil {
		t.Fatalf("BuildSegments() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs differ:\n%v\n%v", first, second)
	}
}

func TestBuildSegmentsMeanRatios(t *testing.T) {
	frames := []FrameClassification{
		{Frame: "1.jpg", Role: RoleA, ARollRatio: 0.8, BRollRatio: 0.2},
		{Frame: "2.jpg", Role: RoleA, ARollRatio: 0.6, BRollRatio: 0.4},
		{Frame: "3.jpg", Role: RoleA, ARollRatio: 0.7, BRollRatio: 0.3},
	}
	segments, err := BuildSegments(frames, 1)
	if err != nil {
		t.Fatalf("BuildSegments() error = %v", err)
	}
	if got := segments[0].ARollRatio; got != 0.7 {
		t.Errorf("ARollRatio = %v, want 0.7", got)
	}
	if got := segments[0].BRollRatio; got != 0.3 {
		t.Errorf("BRollRatio = %v, want 0.3", got)
	}
}

func TestBuildSegmentsInvalidFPS(t *testing.T) {
	for _, fps := range []float64{0, -1, -30} {
		_, err := BuildSegments(framesWithRoles(RoleA), fps)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("fps=%v: err = %v, want ErrInvalidInput", fps, err)
		}
	}
}

func TestBuildSegmentsEmpty(t *testing.T) {
	segments, err := BuildSegments(nil, 30)
	if err != nil {
		t.Fatalf("BuildSegments() error = %v", err)
	}
	if len(segments) != 0 {
		t.Errorf("got %d segments, want 0", len(segments))
	}
}

func TestTimecodeTruncates(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{0.9, "00:00"},
		{59.999, "00:59"},
		{60, "01:00"},
		{61.5, "01:01"},
		{125, "02:05"},
		{-3, "00:00"},
	}
	for _, tt := range tests {
		if got := Timecode(tt.seconds); got != tt.want {
			t.Errorf("Timecode(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
