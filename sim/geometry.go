package sim

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Position is a cell coordinate. X grows eastwards, Y grows southwards.
type Position struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Orientation is one of the four compass headings. The zero value is not a
// valid heading; use North, East, South or West.
type Orientation int

const (
	North Orientation = iota + 1
	East
	South
	West
)

// orientationLetters maps each heading to its single-letter map notation.
// West is written "O" (ouest) in map files; "W" is accepted on input.
var orientationLetters = map[Orientation]string{
	North: "N",
	East:  "E",
	South: "S",
	West:  "O",
}

var orientationByToken = map[string]Orientation{
	"N": North, "NORTH": North,
	"E": East, "EAST": East,
	"S": South, "SOUTH": South,
	"O": West, "W": West, "WEST": West,
}

// ParseOrientation accepts a map letter (N, E, S, O/W) or a full heading name,
// case-insensitively.
func ParseOrientation(s string) (Orientation, error) {
	o, ok := orientationByToken[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown orientation %q; valid: N, E, S, O (or W)", s)
	}
	return o, nil
}

// Valid reports whether o is one of the four headings.
func (o Orientation) Valid() bool {
	return o >= North && o <= West
}

// Right returns the heading a quarter turn clockwise: N→E→S→W→N.
func (o Orientation) Right() Orientation {
	return o%4 + 1
}

// Left returns the heading a quarter turn counter-clockwise: N→W→S→E→N.
func (o Orientation) Left() Orientation {
	return (o+2)%4 + 1
}

// Delta returns the unit step taken when moving forward with this heading.
func (o Orientation) Delta() (dx, dy int) {
	switch o {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Letter returns the map-file letter for o, or "?" for an invalid heading.
func (o Orientation) Letter() string {
	if l, ok := orientationLetters[o]; ok {
		return l
	}
	return "?"
}

func (o Orientation) String() string {
	switch o {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// MarshalYAML writes the heading as its map letter.
func (o Orientation) MarshalYAML() (any, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid orientation %d", int(o))
	}
	return o.Letter(), nil
}

// UnmarshalYAML reads a heading written as a letter or a full name.
func (o *Orientation) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseOrientation(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*o = parsed
	return nil
}
