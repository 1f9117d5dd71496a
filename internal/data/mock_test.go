package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorDeterministic(t *testing.T) {
	a := NewGenerator(7).Series(50)
	b := NewGenerator(7).Series(50)
	assert.Equal(t, a, b)

	c := NewGenerator(8).Series(50)
	assert.NotEqual(t, a, c)
}

func TestGeneratorSeriesShape(t *testing.T) {
	series := NewGenerator(1).Series(100)
	require.Len(t, series, 100)

	for i, bar := range series {
		assert.NotEqual(t, time.Saturday, bar.Date.Weekday(), "bar %d on a weekend", i)
		assert.NotEqual(t, time.Sunday, bar.Date.Weekday(), "bar %d on a weekend", i)
		assert.Greater(t, bar.Close, 0.0, "bar %d", i)
		assert.GreaterOrEqual(t, bar.High, bar.Low, "bar %d", i)
		assert.Positive(t, bar.Volume, "bar %d", i)
		if i > 0 {
			assert.True(t, bar.Date.After(series[i-1].Date), "bar %d not ascending", i)
		}
	}
}

func TestGeneratorZeroBars(t *testing.T) {
	assert.Empty(t, NewGenerator(1).Series(0))
}
