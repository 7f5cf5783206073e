package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOrientation_RightCycle(t *testing.T) {
	assert.Equal(t, East, North.Right())
	assert.Equal(t, South, East.Right())
	assert.Equal(t, West, South.Right())
	assert.Equal(t, North, West.Right())
}

func TestOrientation_LeftCycle(t *testing.T) {
	assert.Equal(t, West, North.Left())
	assert.Equal(t, South, West.Left())
	assert.Equal(t, East, South.Left())
	assert.Equal(t, North, East.Left())
}

func TestOrientation_LeftUndoesRight(t *testing.T) {
	for _, o := range []Orientation{North, East, South, West} {
		assert.Equal(t, o, o.Right().Left(), "%s", o)
		assert.Equal(t, o, o.Right().Right().Right().Right(), "%s", o)
	}
}

func TestOrientation_Delta(t *testing.T) {
	cases := map[Orientation][2]int{North: {0, -1}, East: {1, 0}, South: {0, 1}, West: {-1, 0}, 0: {0, 0}}
	for o, want := range cases {
		dx, dy := o.Delta()
		assert.Equal(t, want, [2]int{dx, dy}, "%s", o)
	}
}

func TestParseOrientation(t *testing.T) {
	cases := map[string]Orientation{"N": North, "e": East, "S": South, "O": West, "W": West, "west": West, " north ": North}
	for in, want := range cases {
		got, err := ParseOrientation(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseOrientation("X")
	assert.Error(t, err)
}

func TestOrientation_LetterAndString(t *testing.T) {
	assert.Equal(t, "O", West.Letter())
	assert.Equal(t, "?", Orientation(9).Letter())
	assert.Equal(t, "South", South.String())
	assert.Contains(t, Orientation(0).String(), "Orientation(")
}

func TestOrientation_YAML(t *testing.T) {
	out, err := yaml.Marshal(struct {
		O Orientation `yaml:"o"`
	}{West})
	require.NoError(t, err)
	assert.Equal(t, "o: O\n", string(out))

	var in struct {
		O Orientation `yaml:"o"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("o: east\n"), &in))
	assert.Equal(t, East, in.O)

	assert.Error(t, yaml.Unmarshal([]byte("o: up\n"), &in))
}

func TestParseInstructions_UnknownLettersAreNoops(t *testing.T) {
	got := ParseInstructions("ADGX")
	assert.Equal(t, []Directive{DirectiveForward, DirectiveTurnRight, DirectiveTurnLeft, DirectiveNoop}, got)
	assert.Equal(t, "ADG?", FormatInstructions(got))
	assert.Empty(t, ParseInstructions(""))
}
