// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import "github.com/pdiddy/docoutline/pkg/types"

// Classify returns the heading level for a run of the given font size,
// checking the most important level first. A size equal to a threshold
// gets that threshold's level. Classify does not round size.
func Classify(size float64, t Thresholds) types.HeadingLevel {
	switch {
	case size >= t.H1:
		return types.LevelH1
	case size >= t.H2:
		return types.LevelH2
	case size >= t.H3:
		return types.LevelH3
	default:
		return types.LevelNone
	}
}
