package lexer

import "fmt"

// Level is a per-line fold level: a number plus flag bits.
type Level uint32

// Fold level constants.
const (
	// LevelBase is the level of top-level lines.
	LevelBase Level = 0x400

	// LevelWhiteFlag marks a line with no visible characters.
	LevelWhiteFlag Level = 0x1000

	// LevelHeaderFlag marks a line that opens a fold.
	LevelHeaderFlag Level = 0x2000

	// LevelNumberMask extracts the numeric part of a level.
	LevelNumberMask Level = 0x0FFF
)

// Number returns the numeric fold level without flags.
func (l Level) Number() int {
	return int(l & LevelNumberMask)
}

// IsHeader reports whether the line opens a fold.
func (l Level) IsHeader() bool {
	return l&LevelHeaderFlag != 0
}

// IsWhite reports whether the line holds only whitespace.
func (l Level) IsWhite() bool {
	return l&LevelWhiteFlag != 0
}

// String renders the level as "<number>[ header][ white]".
func (l Level) String() string {
	out := fmt.Sprintf("%d", l.Number()-int(LevelBase))
	if l.IsHeader() {
		out += " header"
	}
	if l.IsWhite() {
		out += " white"
	}
	return out
}
