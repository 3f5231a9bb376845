package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "0 COP"},
		{10000, "10.000 COP"},
		{25000, "25.000 COP"},
		{1250000, "1.250.000 COP"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.amount))
	}
}
