package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pettycash-dev/pettycash/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	// Valid UTF-8 with Thai characters should pass through unchanged.
	input := "Description,Amount\nค่ากาแฟ,120.50\nค่าเดินทาง,300\n"
	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Windows874(t *testing.T) {
	// "ค่ากาแฟ" in the windows-874 codepage.
	legacyBytes := []byte{0xA4, 0xE8, 0xD2, 0xA1, 0xD2, 0xE1, 0xBF, '\n'}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(legacyBytes))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "ค่ากาแฟ\n", string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	// UTF-8 BOM (0xEF 0xBB 0xBF) should be stripped.
	bom := []byte{0xEF, 0xBB, 0xBF}
	content := []byte("Description,Amount\n")
	input := append(bom, content...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Description,Amount\n", string(got))
}

func TestNewUTF8Reader_UTF16LEBOM(t *testing.T) {
	// UTF-16 LE with BOM decodes to plain UTF-8.
	input := []byte{0xFF, 0xFE, 'I', 0x00, 'D', 0x00, '\n', 0x00}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "ID\n", string(got))
}
