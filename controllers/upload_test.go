package controllers

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSniff(t *testing.T) {
	ole := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 512)...)

	tests := []struct {
		name     string
		body     []byte
		declared string
		want     string
	}{
		{"pdf", []byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n"), "application/octet-stream", "application/pdf"},
		{"unknown binary keeps octet-stream", []byte{0x13, 0x37, 0xbe, 0xef, 0x00, 0xff, 0x10, 0x20}, "application/pdf", "application/octet-stream"},
		{"ole container declared as word", ole, "application/msword", "application/msword"},
		{"ole container declared as pdf", ole, "application/pdf", "application/x-ole-storage"},
		{"text declared as pdf", []byte("just some plain words"), "application/pdf", "text/plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bytes.NewReader(tt.body)
			got, err := sniff(r, tt.declared)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			pos, err := r.Seek(0, io.SeekCurrent)
			require.NoError(t, err)
			assert.Zero(t, pos, "reader is rewound")
		})
	}
}
