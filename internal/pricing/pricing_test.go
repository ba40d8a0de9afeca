package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestFor_Boundaries(t *testing.T) {
	tests := []struct {
		adult     int
		level     Level
		remaining int
		has       bool
	}{
		{0, Low, 300, true},
		{299, Low, 1, true},
		{300, Low, 0, true},
		{301, Mid, 499, true},
		{800, Mid, 0, true},
		{801, Max, 0, false},
		{5000, Max, 0, false},
	}
	for _, tt := range tests {
		got := For(tt.adult)
		assert.Equal(t, tt.level, got.Level, "adult=%d", tt.adult)
		assert.Equal(t, tt.has, got.HasRemaining, "adult=%d", tt.adult)
		if tt.has {
			assert.Equal(t, tt.remaining, got.Remaining, "adult=%d", tt.adult)
		}
	}
}

func TestFor_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := rapid.IntRange(0, 100000).Draw(rt, "adult")
		got := For(c)
		switch {
		case c <= 300:
			if got.Level != Low || !got.HasRemaining || got.Remaining != 300-c {
				rt.Fatalf("For(%d) = %+v, want low/%d", c, got, 300-c)
			}
		case c <= 800:
			if got.Level != Mid || !got.HasRemaining || got.Remaining != 800-c {
				rt.Fatalf("For(%d) = %+v, want mid/%d", c, got, 800-c)
			}
		default:
			if got.Level != Max || got.HasRemaining {
				rt.Fatalf("For(%d) = %+v, want max", c, got)
			}
		}
	})
}

func TestTier_Describe(t *testing.T) {
	assert.Equal(t, "до повышения цены осталось 12 слотов", For(288).Describe())
	assert.Equal(t, "слоты продаются по максимальной цене", For(900).Describe())
	assert.Equal(t, 1500, For(10).StaticPrice())
	assert.Equal(t, 2500, For(301).StaticPrice())
	assert.Equal(t, 3500, For(801).StaticPrice())
}
