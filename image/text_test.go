package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromText(t *testing.T) {
	tables := []struct {
		name   string
		input  string
		header Header
		data   []byte
	}{
		{
			"all white",
			"XXX\nXXX\nXXX",
			Header{3, 3, BlackAndWhite},
			[]byte{0xff, 0x80},
		},
		{
			"uneven lines",
			"X\nXX\nXXX",
			Header{3, 3, BlackAndWhite},
			[]byte{0x9b, 0x80},
		},
		{
			"trailing newline",
			"X X\n",
			Header{3, 1, BlackAndWhite},
			[]byte{0xa0},
		},
		{
			"crlf",
			"XX\r\n X\r\n",
			Header{2, 2, BlackAndWhite},
			[]byte{0xd0},
		},
		{
			"blank lines",
			"\n\n",
			Header{0, 2, BlackAndWhite},
			[]byte{},
		},
		{
			"empty",
			"",
			Header{0, 0, BlackAndWhite},
			[]byte{},
		},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			m, err := FromText(table.input)
			require.NoError(t, err)
			assert.Equal(t, table.header, m.Header)
			assert.Equal(t, table.data, m.Data)
			assert.Nil(t, m.Palette)
			assert.Empty(t, m.Comments)
		})
	}
}

func TestFromTextIllegalCharacter(t *testing.T) {
	tables := []struct {
		input string
		char  rune
	}{
		{"X X\n#X \nX X", '#'},
		{"x", 'x'},
		{"X\tX", '\t'},
		{"XX\nXé", 'é'},
	}

	for _, table := range tables {
		m, err := FromText(table.input)
		assert.Nil(t, m)
		assert.Equal(t, IllegalCharacterError(table.char), err)
	}
}

func TestFromTextRoundTrip(t *testing.T) {
	m, err := FromText(" X \nX X\n X ")
	require.NoError(t, err)

	n, err := Decode(Encode(m))
	require.NoError(t, err)
	assert.Equal(t, m, n)
}
