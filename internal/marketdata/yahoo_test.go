package marketdata

import (
	"testing"

	"github.com/piquette/finance-go/datetime"
	"github.com/stretchr/testify/assert"
)

func TestToInterval(t *testing.T) {
	tests := []struct {
		in   string
		want datetime.Interval
	}{
		{"", datetime.OneDay},
		{"1d", datetime.OneDay},
		{"5d", datetime.FiveDay},
		{"1mo", datetime.OneMonth},
		// Anything else passes through for the API to validate.
		{"1h", datetime.Interval("1h")},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, toInterval(tt.in), "toInterval(%q)", tt.in)
	}
}
