package reanim

import (
	"encoding/xml"
	"reflect"
	"testing"
)

// TestFrame_PointerFields tests that omitted frame fields stay nil.
func TestFrame_PointerFields(t *testing.T) {
	var frame Frame
	if err := xml.Unmarshal([]byte(`<t><x>50.5</x><a>0.25</a><f>-1</f></t>`), &frame); err != nil {
		t.Fatalf("Failed to unmarshal XML: %v", err)
	}

	if frame.X == nil || *frame.X != 50.5 {
		t.Errorf("Expected X=50.5, got %v", frame.X)
	}
	if frame.Alpha == nil || *frame.Alpha != 0.25 {
		t.Errorf("Expected Alpha=0.25, got %v", frame.Alpha)
	}
	if frame.FrameNum == nil || *frame.FrameNum != -1 {
		t.Errorf("Expected FrameNum=-1, got %v", frame.FrameNum)
	}
	if frame.Y != nil || frame.ScaleX != nil || frame.ScaleY != nil || frame.SkewX != nil || frame.SkewY != nil {
		t.Errorf("Expected omitted fields to be nil, got %+v", frame)
	}
}

// TestReanimXML_FindTrack tests track lookup and part track listing.
func TestReanimXML_FindTrack(t *testing.T) {
	r := &ReanimXML{
		FPS: 12,
		Tracks: []Track{
			{Name: "anim_idle"},
			{Name: "head"},
			{Name: "body"},
		},
	}

	track, ok := r.FindTrack("head")
	if !ok || track.Name != "head" {
		t.Fatalf("FindTrack(head) = %v, %v", track, ok)
	}
	if _, ok := r.FindTrack("missing"); ok {
		t.Error("FindTrack(missing) should fail")
	}

	if got := r.PartTracks(); !reflect.DeepEqual(got, []string{"head", "body"}) {
		t.Errorf("PartTracks() = %v", got)
	}
}
