package numfmt

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_CurrencyToInteger(t *testing.T) {
	f := NewFormatter(DefaultConfig())

	got, ok := f.CurrencyToInteger("1,234.56")
	assert.True(t, ok)
	assert.Equal(t, int64(123456), got)

	f.SetNumberFormat(Config{Format: "dot-comma"})
	got, ok = f.CurrencyToInteger("1.234,56")
	assert.True(t, ok)
	assert.Equal(t, int64(123456), got)

	f.SetNumberFormat(Config{Format: "space-comma"})
	got, ok = f.CurrencyToInteger("-1\u00a0234,5")
	assert.True(t, ok)
	assert.Equal(t, int64(-123450), got)
}

func TestFormatter_CurrencyToIntegerOutOfRange(t *testing.T) {
	f := NewFormatter(DefaultConfig())

	for _, in := range []string{"100000000000000000000", "-100000000000000000000", "22517998136852.5"} {
		got, ok := f.CurrencyToInteger(in)
		assert.False(t, ok, in)
		assert.Zero(t, got, in)
	}

	got, ok := f.CurrencyToInteger("22,517,998,136,852.47")
	assert.True(t, ok)
	assert.Equal(t, int64(MaxSafeNumber), got)
}

func TestFormatter_CurrencyToAmount(t *testing.T) {
	f := NewFormatter(DefaultConfig())

	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1,234.56", 1234.56, true},
		{"$ 12", 12, true},
		{"-0.5", -0.5, true},
		{"12.34.56", 12.34, true},
		{"not a number", 0, false},
		{"", 0, false},
		{"-", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := f.CurrencyToAmount(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatter_AmountToCurrency(t *testing.T) {
	f := NewFormatter(DefaultConfig())
	assert.Equal(t, "1,234.50", f.AmountToCurrency(1234.5))

	f.SetNumberFormat(Config{Format: "comma-dot", HideFraction: true})
	assert.Equal(t, "1,235", f.AmountToCurrency(1234.5))
}

func TestFormatter_IntegerToCurrencyUnsafe(t *testing.T) {
	f := NewFormatter(DefaultConfig())

	_, err := f.IntegerToCurrency(MaxSafeNumber + 1)
	assert.ErrorIs(t, err, ErrUnsafeNumber)

	s, err := f.IntegerToCurrency(MaxSafeNumber)
	require.NoError(t, err)
	assert.Equal(t, "22,517,998,136,852.47", s)
}

func TestFormatter_ToRelaxedNumber(t *testing.T) {
	f := NewFormatter(DefaultConfig())

	v, err := f.ToRelaxedNumber("1,000.25")
	require.NoError(t, err)
	assert.Equal(t, 1000.25, v)

	v, err = f.ToRelaxedNumber("garbage")
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestFormatter_ConcurrentReconfigure(t *testing.T) {
	f := NewFormatter(DefaultConfig())
	valid := map[string]bool{"1,234.56": true, "1.234,56": true}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if i%2 == 0 {
					f.SetNumberFormat(Config{Format: "dot-comma"})
				} else {
					f.SetNumberFormat(Config{Format: "comma-dot"})
				}
				s, err := f.IntegerToCurrency(123456)
				assert.NoError(t, err)
				assert.True(t, valid[s], s)
			}
		}(i)
	}
	wg.Wait()
}

func TestDefaultFormatter(t *testing.T) {
	t.Cleanup(func() { SetNumberFormat(DefaultConfig()) })

	assert.Equal(t, CommaDot, GetNumberFormat().Value)
	s, err := IntegerToCurrency(250)
	require.NoError(t, err)
	assert.Equal(t, "2.50", s)

	SetNumberFormat(Config{Format: "dot-comma"})
	assert.Equal(t, DotComma, GetNumberFormat().Value)

	n, ok := CurrencyToInteger("1.234,56")
	assert.True(t, ok)
	assert.Equal(t, int64(123456), n)
	assert.Equal(t, "2,50", AmountToCurrency(2.5))

	amount, ok := CurrencyToAmount("nope")
	assert.False(t, ok)
	assert.Zero(t, amount)
}
