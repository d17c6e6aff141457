package colors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type colorDoc struct {
	Color Spec `yaml:"color"`
}

func decodeColor(t *testing.T, src string) (Spec, error) {
	t.Helper()
	var doc colorDoc
	dec := yaml.NewDecoder(strings.NewReader(src))
	dec.KnownFields(true)
	err := dec.Decode(&doc)
	return doc.Color, err
}

func TestSpecYAML_Scalar(t *testing.T) {
	spec, err := decodeColor(t, "color: \"#ff0000\"\n")
	require.NoError(t, err)
	assert.Equal(t, SolidSpec("#ff0000"), spec)
	assert.NoError(t, spec.Validate())
}

func TestSpecYAML_GradientAngle(t *testing.T) {
	spec, err := decodeColor(t, "color:\n  colors: [accent, \"#000\"]\n  direction: 45deg\n")
	require.NoError(t, err)
	require.NotNil(t, spec.Gradient)
	assert.Equal(t, []string{"accent", "#000"}, spec.Gradient.Colors)
	assert.Equal(t, AngleDirection("45deg"), spec.Gradient.Direction)
	assert.NoError(t, spec.Validate())
}

func TestSpecYAML_GradientCoordinates(t *testing.T) {
	src := "color:\n  colors: [\"#fff\", \"#000\"]\n  direction:\n    start: [0, 0]\n    end: [1, 1]\n"
	spec, err := decodeColor(t, src)
	require.NoError(t, err)
	require.NotNil(t, spec.Gradient.Direction.Coordinates)
	assert.Equal(t, [2]float32{1, 1}, spec.Gradient.Direction.Coordinates.End)
}

func TestSpecYAML_UnknownKeysRejected(t *testing.T) {
	_, err := decodeColor(t, "color:\n  colours: [\"#fff\"]\n  direction: 0deg\n")
	require.Error(t, err)

	_, err = decodeColor(t, "color:\n  colors: [\"#fff\"]\n  direction: {from: [0, 0]}\n")
	require.Error(t, err)

	_, err = decodeColor(t, "color: [\"#fff\"]\n")
	require.Error(t, err)
}

func TestSpecValidate(t *testing.T) {
	assert.Error(t, Spec{}.Validate())
	assert.Error(t, GradientOf(AngleDirection("0deg")).Validate())
	assert.Error(t, GradientOf(Direction{}, "#fff").Validate())
}

func TestSpecYAML_RoundTrip(t *testing.T) {
	in := colorDoc{Color: GradientOf(AngleDirection("90deg"), "#fff", "accent")}
	out, err := yaml.Marshal(in)
	require.NoError(t, err)

	spec, err := decodeColor(t, string(out))
	require.NoError(t, err)
	assert.Equal(t, in.Color, spec)
}

func TestParseSpec(t *testing.T) {
	spec, err := ParseSpec(" #89b4fa ")
	require.NoError(t, err)
	assert.Equal(t, SolidSpec("#89b4fa"), spec)

	spec, err = ParseSpec("accent")
	require.NoError(t, err)
	assert.Equal(t, SolidSpec("accent"), spec)

	spec, err = ParseSpec(`{colors: ["#f00", "#00f"], direction: 90deg}`)
	require.NoError(t, err)
	assert.Equal(t, GradientOf(AngleDirection("90deg"), "#f00", "#00f"), spec)

	_, err = ParseSpec("")
	assert.Error(t, err)

	_, err = ParseSpec("{colors: [red]}")
	assert.Error(t, err, "a gradient without a direction is rejected")
}
