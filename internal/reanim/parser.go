package reanim

import (
	"encoding/xml"
	"fmt"
	"os"
)

// DefaultFPS is used when a file does not declare a positive frame rate.
const DefaultFPS = 12

// ParseReanimFile parses a Reanim XML file and returns the animation data.
//
// Example:
//
//	data, err := reanim.ParseReanimFile("assets/reanim/PeaShooter.reanim")
//	if err != nil {
//	    log.Fatalf("Failed to parse reanim: %v", err)
//	}
//	track, ok := data.FindTrack("head")
func ParseReanimFile(path string) (*ReanimXML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reanim file '%s': %w", path, err)
	}

	r, err := ParseReanim(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML from '%s': %w", path, err)
	}
	return r, nil
}

// ParseReanim parses Reanim XML content.
// Reanim files have no root element, so the content is wrapped in <reanim> first.
func ParseReanim(data []byte) (*ReanimXML, error) {
	wrapped := make([]byte, 0, len(data)+len("<reanim></reanim>"))
	wrapped = append(wrapped, "<reanim>"...)
	wrapped = append(wrapped, data...)
	wrapped = append(wrapped, "</reanim>"...)

	var r ReanimXML
	if err := xml.Unmarshal(wrapped, &r); err != nil {
		return nil, err
	}
	if r.FPS <= 0 {
		r.FPS = DefaultFPS
	}
	return &r, nil
}
