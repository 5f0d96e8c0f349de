package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/voucherdesk/internal/encoding"
)

func TestDetect(t *testing.T) {
	type testCase struct {
		name        string
		input       []byte
		want        string
		wantCharset encoding.Charset
	}

	tests := []testCase{
		{
			name:        "UTF8Passthrough",
			input:       []byte("Date,Description\n\"2024-03-01\",\"Café\"\n"),
			want:        "Date,Description\n\"2024-03-01\",\"Café\"\n",
			wantCharset: encoding.UTF8,
		},
		{
			name:        "UTF8BOMStripped",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, []byte("Descrição\n")...),
			want:        "Descrição\n",
			wantCharset: encoding.UTF8,
		},
		{
			name:        "UTF16LE",
			input:       []byte{0xFF, 0xFE, 'D', 0, 'a', 0, 't', 0, 'e', 0},
			want:        "Date",
			wantCharset: encoding.UTF16LE,
		},
		{
			name:        "UTF16BE",
			input:       []byte{0xFE, 0xFF, 0, 'D', 0, 'a', 0, 't', 0, 'e'},
			want:        "Date",
			wantCharset: encoding.UTF16BE,
		},
		{
			name:  "Windows1252",
			input: []byte{'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', '\n'},
			want:  "Descrição\n",
		},
		{
			name:        "Empty",
			input:       nil,
			want:        "",
			wantCharset: encoding.UTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, charset, err := encoding.Detect(bytes.NewReader(tt.input))
			require.NoError(t, err)

			got, err := io.ReadAll(r)
			require.NoError(t, err)

			assert.Equal(t, tt.want, string(got))

			// Short legacy samples may be classified as any compatible Latin code page.
			if tt.wantCharset != "" {
				assert.Equal(t, tt.wantCharset, charset)
			}
		})
	}
}

func TestDetect_MultiByteRuneAcrossSniffWindow(t *testing.T) {
	// "ç" is two bytes; place it so the sniff window splits it.
	input := strings.Repeat("a", 4095) + "ç\n"

	r, charset, err := encoding.Detect(strings.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	assert.Equal(t, encoding.UTF8, charset)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader(t *testing.T) {
	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte{'C', 'a', 'f', 0xE9}))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Café", string(got))
}
