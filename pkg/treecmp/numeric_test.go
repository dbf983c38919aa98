package treecmp

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsClose(t *testing.T) {
	t.Parallel()
	inf := math.Inf(1)
	nan := math.NaN()

	tests := []struct {
		name     string
		a, b     complex128
		rel, abs float64
		nanEqual bool
		want     bool
	}{
		{"identical", 1, 1, 0, 0, false, true},
		{"within relative", 100, 100.5, 0.01, 0, false, true},
		{"relative uses the larger side", 100, 101, 0.00995, 0, false, true},
		{"relative below both sides", 100, 101, 0.0099, 0, false, false},
		{"outside relative", 100, 102, 0.01, 0, false, false},
		{"within absolute", 0, 1e-10, 0, 1e-9, false, true},
		{"zero against tiny without abs", 0, 1e-300, 0.5, 0, false, false},
		{"complex modulus", complex(1, 1), complex(0.999, 0.999), 0.01, 0, false, true},
		{"complex outside", complex(1, 1), complex(1, -1), 0.5, 0, false, false},
		{"same infinity", complex(inf, 0), complex(inf, 0), 0, 0, false, true},
		{"infinity vs finite", complex(inf, 0), 1e308, 1, 1e308, false, false},
		{"opposite infinities", complex(inf, 0), complex(-inf, 0), 1, 0, false, false},
		{"NaN never close", complex(nan, 0), complex(nan, 0), 1, 1, false, false},
		{"NaN equal", complex(nan, 0), complex(nan, 0), 0, 0, true, true},
		{"NaN vs number", complex(nan, 0), 1, 1, 1, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsClose(tt.a, tt.b, tt.rel, tt.abs, tt.nanEqual))
			assert.Equal(t, tt.want, IsClose(tt.b, tt.a, tt.rel, tt.abs, tt.nanEqual), "symmetric")
		})
	}
}

func TestRelativeDifference(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.5, RelativeDifference(2, 1), 1e-15)
	assert.InDelta(t, 0.5, RelativeDifference(1, 2), 1e-15)
	assert.InDelta(t, 0.1, RelativeDifference(10, 9), 1e-15)
	assert.InDelta(t, 0.0, RelativeDifference(3, 3), 0)
	assert.InDelta(t, 2.0, RelativeDifference(-1, 1), 1e-15)

	d := cmplx.Abs(complex(0.001, 0.001))
	assert.InDelta(t, d/cmplx.Abs(complex(1, 1)), RelativeDifference(complex(1, 1), complex(0.999, 0.999)), 1e-6)

	assert.True(t, math.IsNaN(RelativeDifference(0, 1)))
	assert.True(t, math.IsNaN(RelativeDifference(1, 0)))
	assert.True(t, math.IsNaN(RelativeDifference(0, 0)))
}
