package domain

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChecksumAddress(t *testing.T) {
	want := common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "checksummed", input: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"},
		{name: "lowercase", input: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"},
		{name: "uppercase body", input: "0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED"},
		{name: "no prefix", input: "5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"},
		{name: "bad checksum", input: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAeD", wantErr: true},
		{name: "too short", input: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeA", wantErr: true},
		{name: "not hex", input: "0xZZAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", wantErr: true},
		{name: "zero address", input: "0x0000000000000000000000000000000000000000", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChecksumAddress(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAddress)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}
