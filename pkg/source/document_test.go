package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"a\n",
		"a\nb\n",
		"a\n\nb",
		"a\r\nb\r\n",
		"a\r\nb\nc",
		"a\r",
		"\n\n",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, in, Parse(in).String())
		})
	}
}

func TestDocument_InsertAt(t *testing.T) {
	d := Parse("a\nc\n")

	ids, err := d.InsertAt(1, "b")
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, "a\nb\nc\n", d.String())

	_, err = d.InsertAt(0, "//@version=6")
	require.NoError(t, err)
	assert.Equal(t, "//@version=6\na\nb\nc\n", d.String())

	_, err = d.InsertAt(d.Len(), "z")
	require.NoError(t, err)
	assert.Equal(t, "z", d.Text(d.Len()-1))

	_, err = d.InsertAt(99, "x")
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = d.InsertAt(-1, "x")
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestDocument_InsertKeepsCRLF(t *testing.T) {
	d := Parse("a\r\nb\r\n")
	_, err := d.InsertAt(1, "x")
	require.NoError(t, err)
	assert.Equal(t, "a\r\nx\r\nb\r\n", d.String())
}

func TestDocument_StableIDs(t *testing.T) {
	d := Parse("one\ntwo\nthree\n")
	two := d.Line(1).ID

	_, err := d.InsertAt(0, "zero")
	require.NoError(t, err)

	idx, err := d.IndexOf(two)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	_, err = d.InsertAfter(two, "two-and-a-half")
	require.NoError(t, err)
	assert.Equal(t, "zero\none\ntwo\ntwo-and-a-half\nthree\n", d.String())
}

func TestDocument_Remove(t *testing.T) {
	d := Parse("a\nb\nc\nd\n")
	b, c := d.Line(1).ID, d.Line(2).ID

	removed, err := d.Remove(c, b)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, removed)
	assert.Equal(t, "a\nd\n", d.String())

	_, err = d.IndexOf(b)
	assert.ErrorIs(t, err, ErrUnknownLine)

	_, err = d.Remove(b)
	assert.ErrorIs(t, err, ErrUnknownLine)
	assert.Equal(t, "a\nd\n", d.String(), "failed remove leaves the document untouched")
}

func TestDocument_SetText(t *testing.T) {
	d := Parse("a\nb\n")
	id := d.Line(1).ID

	require.NoError(t, d.SetText(1, "    b"))
	assert.Equal(t, "a\n    b\n", d.String())
	assert.Equal(t, id, d.Line(1).ID)

	assert.ErrorIs(t, d.SetText(2, "x"), ErrOutOfRange)
}
