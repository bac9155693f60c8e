package surveydef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyTable(t *testing.T) {
	textarea, ok := PolicyFor(TypeTextarea)
	require.True(t, ok)
	assert.False(t, textarea.MinMaxRequired)
	assert.Equal(t, 0, textarea.MinOptions)
	assert.Equal(t, 0, textarea.MaxOptions)
	assert.False(t, textarea.AllowsOptions())

	radio, ok := PolicyFor(TypeRadio)
	require.True(t, ok)
	assert.Equal(t, 1, radio.MinOptions)
	assert.Equal(t, 10, radio.MaxOptions)
	assert.True(t, radio.ShortQuestionRequired)

	rng, ok := PolicyFor(TypeRange)
	require.True(t, ok)
	assert.True(t, rng.MinMaxRequired)
	assert.Equal(t, 10, rng.MaxOptions)
	assert.Equal(t, 0, *rng.DefaultMin)
	assert.Equal(t, 100, *rng.DefaultMax)

	_, ok = PolicyFor("CHECKBOX")
	assert.False(t, ok)
}

func TestPointFormat(t *testing.T) {
	tests := []struct {
		name  string
		typ   QuestionType
		point string
		valid bool
	}{
		{name: "radio single", typ: TypeRadio, point: "5", valid: true},
		{name: "radio seven digits", typ: TypeRadio, point: "1234567", valid: true},
		{name: "radio eight digits", typ: TypeRadio, point: "12345678", valid: false},
		{name: "radio range syntax", typ: TypeRadio, point: "12-50", valid: false},
		{name: "radio negative", typ: TypeRadio, point: "-1", valid: false},
		{name: "radio empty", typ: TypeRadio, point: "", valid: false},
		{name: "range single", typ: TypeRange, point: "40", valid: true},
		{name: "range pair", typ: TypeRange, point: "12-50", valid: true},
		{name: "range pair with spaces", typ: TypeRange, point: " 0 - 100 ", valid: true},
		{name: "range equal ends", typ: TypeRange, point: "7-7", valid: true},
		{name: "range out of bounds", typ: TypeRange, point: "150-200", valid: false},
		{name: "range reversed", typ: TypeRange, point: "50-10", valid: false},
		{name: "range four digits", typ: TypeRange, point: "1000", valid: false},
		{name: "range decimal", typ: TypeRange, point: "1.5", valid: false},
		{name: "textarea never", typ: TypeTextarea, point: "1", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := PolicyFor(tt.typ)
			require.True(t, ok)
			assert.Equal(t, tt.valid, p.ValidPoint(tt.point))
		})
	}
}

func TestParsePoint(t *testing.T) {
	p, err := ParsePoint(TypeRange, " 12 - 50")
	require.NoError(t, err)
	assert.Equal(t, Point{From: 12, To: 50, IsRange: true}, p)
	assert.Equal(t, "12-50", p.String())

	p, err = ParsePoint(TypeRadio, "007")
	require.NoError(t, err)
	assert.Equal(t, Point{From: 7, To: 7}, p)
	assert.Equal(t, "7", p.String())

	_, err = ParsePoint(TypeRange, "50-10")
	assert.ErrorIs(t, err, ErrPointFormat)
}
