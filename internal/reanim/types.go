// Package reanim reads PvZ-style Reanim animation files and converts their
// part tracks into keyframe streams.
//
// A Reanim track is a sequence of frames sampled at a fixed FPS. Every frame
// field is optional; an omitted field keeps the value of the previous frame
// (cumulative inheritance).
package reanim

// ReanimXML is the root structure of a Reanim animation file.
type ReanimXML struct {
	// FPS is the frame rate of the animation, typically 12
	FPS int `xml:"fps"`

	// Tracks holds animation definition tracks ("anim_*") and part tracks ("head", "body").
	Tracks []Track `xml:"track"`
}

// Track represents a single animation track.
type Track struct {
	// Name is the track name, e.g. "anim_idle", "head"
	Name string `xml:"name"`

	// Frames is the sequence of animation frames in this track
	Frames []Frame `xml:"t"`
}

// Frame represents a single animation frame. All fields are optional and use
// pointer types to support null values.
type Frame struct {
	// FrameNum controls frame visibility:
	// - nil: inherit from previous frame
	// - -1: hide this part in current frame
	// - 0 or positive: show this part
	FrameNum *int `xml:"f,omitempty"`

	// X is the X position offset in pixels
	X *float64 `xml:"x,omitempty"`

	// Y is the Y position offset in pixels
	Y *float64 `xml:"y,omitempty"`

	// ScaleX is the X-axis scale factor (1.0 = normal size)
	ScaleX *float64 `xml:"sx,omitempty"`

	// ScaleY is the Y-axis scale factor (1.0 = normal size)
	ScaleY *float64 `xml:"sy,omitempty"`

	// SkewX is the X-axis skew angle in degrees (NOT radians).
	SkewX *float64 `xml:"kx,omitempty"`

	// SkewY is the Y-axis skew angle in degrees. Not used for keyframes:
	// a node has a single rotation, which is taken from SkewX.
	SkewY *float64 `xml:"ky,omitempty"`

	// Alpha is the part opacity in [0, 1]
	Alpha *float64 `xml:"a,omitempty"`

	// ImagePath is the sprite part image reference, e.g. "IMAGE_REANIM_PEASHOOTER_HEAD"
	ImagePath string `xml:"i,omitempty"`
}

// FindTrack returns the track with the given name.
func (r *ReanimXML) FindTrack(name string) (*Track, bool) {
	for i := range r.Tracks {
		if r.Tracks[i].Name == name {
			return &r.Tracks[i], true
		}
	}
	return nil, false
}

// PartTracks returns the names of all non-definition tracks, in file order.
func (r *ReanimXML) PartTracks() []string {
	names := make([]string, 0, len(r.Tracks))
	for _, t := range r.Tracks {
		if len(t.Name) >= 5 && t.Name[:5] == "anim_" {
			continue
		}
		names = append(names, t.Name)
	}
	return names
}
