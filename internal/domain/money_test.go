package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Cents
		wantErr bool
	}{
		{name: "dollars and cents", input: "10.99", want: 1099},
		{name: "whole dollars", input: "12", want: 1200},
		{name: "single decimal digit", input: "3.5", want: 350},
		{name: "zero", input: "0.00", want: 0},
		{name: "three decimal digits", input: "1.999", wantErr: true},
		{name: "negative", input: "-1.00", wantErr: true},
		{name: "not a number", input: "ten", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCentsString(t *testing.T) {
	assert.Equal(t, "34.97", Cents(3497).String())
	assert.Equal(t, "0.05", Cents(5).String())
	assert.Equal(t, "10.00", Cents(1000).String())
	assert.Equal(t, "-1.50", Cents(-150).String())
}

func TestCentsMul(t *testing.T) {
	// Burger 10.99 x 2 + Pizza 12.99 x 1 = 34.97 exactly.
	burger := Cents(1099)
	pizza := Cents(1299)
	assert.Equal(t, Cents(3497), burger.Mul(2)+pizza.Mul(1))
}
