package types

import "testing"

func TestParseProgramType(t *testing.T) {
	tests := []struct {
		raw    string
		want   ProgramType
		wantOK bool
	}{
		{"substance_abuse", ProgramSubstanceAbuse, true},
		{"  Mental_Health ", ProgramMentalHealth, true},
		{"VOCATIONAL", ProgramVocational, true},
		{"education", ProgramEducation, true},
		{"anger_management", ProgramAngerManagement, true},
		{"cognitive_behavioral", ProgramCognitiveBehavioral, true},
		{"basket_weaving", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseProgramType(tt.raw)
		if ok != tt.wantOK {
			t.Errorf("ParseProgramType(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseProgramType(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestParseProgressStatus(t *testing.T) {
	tests := []struct {
		raw    string
		want   ProgressStatus
		wantOK bool
	}{
		{"on_track", ProgressOnTrack, true},
		{"IN_PROGRESS", ProgressInProgress, true},
		{" completed ", ProgressCompleted, true},
		{"paused", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseProgressStatus(tt.raw)
		if ok != tt.wantOK {
			t.Errorf("ParseProgressStatus(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseProgressStatus(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestRecommendationStatusTerminal(t *testing.T) {
	if RecommendationPending.Terminal() || RecommendationInProgress.Terminal() {
		t.Error("open statuses must not be terminal")
	}
	if !RecommendationCompleted.Terminal() || !RecommendationCancelled.Terminal() {
		t.Error("COMPLETED and CANCELLED must be terminal")
	}
}

func TestDecodeStringListBadPayload(t *testing.T) {
	if got := DecodeStringList([]byte("{broken")); len(got) != 0 {
		t.Errorf("DecodeStringList(broken) = %v, want empty", got)
	}
	if got := DecodeStringList(nil); len(got) != 0 {
		t.Errorf("DecodeStringList(nil) = %v, want empty", got)
	}
	if got := DecodeStringList(StringList([]string{"a", "b"})); len(got) != 2 || got[0] != "a" {
		t.Errorf("round trip = %v", got)
	}
}

func TestDecodeFeatureMapBadPayload(t *testing.T) {
	if got := DecodeFeatureMap([]byte("[1,2]")); len(got) != 0 {
		t.Errorf("DecodeFeatureMap(array) = %v, want empty", got)
	}
	features := DecodeFeatureMap(FeatureMap(map[string]interface{}{"zone": "north"}))
	if features["zone"] != "north" {
		t.Errorf("round trip = %v", features)
	}
}
