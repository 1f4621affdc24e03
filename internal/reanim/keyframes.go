package reanim

import (
	"math"
	"time"

	"github.com/gonewx/spritebuddy/pkg/keyframe"
)

// FrameDuration returns the time between two consecutive frames.
func FrameDuration(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// TrackKeyframes converts a part track into one keyframe per frame.
//
// Field mapping (with cumulative inheritance of omitted fields):
//   - x, y → Position
//   - kx (degrees) → Rotation (radians)
//   - sx, sy → Scale
//   - a → Alpha; f = -1 forces Alpha to 0 for that frame
//
// Size, color and tint are not part of the format and keep keyframe.New defaults.
// All keyframes use linear timing, matching per-frame sampling.
func TrackKeyframes(track *Track) []keyframe.Keyframe {
	if track == nil || len(track.Frames) == 0 {
		return nil
	}

	state := keyframe.New()
	alpha := 1.0
	visible := true
	result := make([]keyframe.Keyframe, 0, len(track.Frames))

	for _, f := range track.Frames {
		if f.X != nil {
			state.Position.X = *f.X
		}
		if f.Y != nil {
			state.Position.Y = *f.Y
		}
		if f.ScaleX != nil {
			state.Scale.X = *f.ScaleX
		}
		if f.ScaleY != nil {
			state.Scale.Y = *f.ScaleY
		}
		if f.SkewX != nil {
			state.Rotation = *f.SkewX * math.Pi / 180
		}
		if f.Alpha != nil {
			alpha = *f.Alpha
		}
		if f.FrameNum != nil {
			visible = *f.FrameNum != -1
		}

		kf := state
		kf.Alpha = alpha
		if !visible {
			kf.Alpha = 0
		}
		result = append(result, kf)
	}

	return result
}
