package sim

import "strings"

// Directive is one step of an agent's instruction sequence.
type Directive int

const (
	// DirectiveNoop is any unrecognized instruction letter; executing it
	// proposes no change and still consumes the instruction.
	DirectiveNoop Directive = iota
	DirectiveForward
	DirectiveTurnRight
	DirectiveTurnLeft
)

// Letters used in the instruction string of map files:
// A (avancer), D (droite), G (gauche).
const (
	LetterForward   = 'A'
	LetterTurnRight = 'D'
	LetterTurnLeft  = 'G'
)

// ParseDirective maps an instruction letter to its directive. Unknown
// letters map to DirectiveNoop rather than failing.
func ParseDirective(r rune) Directive {
	switch r {
	case LetterForward:
		return DirectiveForward
	case LetterTurnRight:
		return DirectiveTurnRight
	case LetterTurnLeft:
		return DirectiveTurnLeft
	default:
		return DirectiveNoop
	}
}

// ParseInstructions converts an instruction string into directives, one per
// character, preserving order.
func ParseInstructions(s string) []Directive {
	out := make([]Directive, 0, len(s))
	for _, r := range s {
		out = append(out, ParseDirective(r))
	}
	return out
}

// FormatInstructions is the inverse of ParseInstructions for known directives.
// No-op directives are written as '?'.
func FormatInstructions(ds []Directive) string {
	var b strings.Builder
	b.Grow(len(ds))
	for _, d := range ds {
		switch d {
		case DirectiveForward:
			b.WriteRune(LetterForward)
		case DirectiveTurnRight:
			b.WriteRune(LetterTurnRight)
		case DirectiveTurnLeft:
			b.WriteRune(LetterTurnLeft)
		default:
			b.WriteRune('?')
		}
	}
	return b.String()
}

func (d Directive) String() string {
	switch d {
	case DirectiveForward:
		return "forward"
	case DirectiveTurnRight:
		return "turn-right"
	case DirectiveTurnLeft:
		return "turn-left"
	default:
		return "noop"
	}
}
