package testdata

import "embed"

// ParseCases holds the front end acceptance cases: NAME.src with either
// NAME.out (expected XML) or NAME.rc (expected non-zero exit code).
//
//go:embed parse/*.src parse/*.out parse/*.rc
var ParseCases embed.FS

// ParseDir is the directory of ParseCases inside the embedded filesystem
const ParseDir = "parse"

// GetFS returns the embedded filesystem
func GetFS() embed.FS {
	return ParseCases
}
