package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEther(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1", want: "1000000000000000000"},
		{in: "0.03", want: "30000000000000000"},
		{in: ".5", want: "500000000000000000"},
		{in: "12.000000000000000001", want: "12000000000000000001"},
		{in: "0", want: "0"},
		{in: "", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "1.2.3", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "0.0000000000000000001", wantErr: true},
		{in: "1.", want: "1000000000000000000"},
		{in: ".", wantErr: true},
		{in: "+.5", wantErr: true},
		{in: "1e3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEther(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFormatEther(t *testing.T) {
	wei, _ := new(big.Int).SetString("30000000000000000", 10)
	assert.Equal(t, "0.03", FormatEther(wei))
	assert.Equal(t, "2", FormatEther(new(big.Int).Mul(big.NewInt(2), weiPerEther)))
	assert.Equal(t, "0", FormatEther(nil))
}

func TestParseUint256(t *testing.T) {
	v, err := ParseUint256("6660010005000001")
	require.NoError(t, err)
	assert.Equal(t, "6660010005000001", v.String())

	_, err = ParseUint256("-1")
	assert.Error(t, err)
	_, err = ParseUint256("0x10")
	assert.Error(t, err)
}
