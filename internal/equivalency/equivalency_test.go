package equivalency

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	s, err := Compute(808)
	require.NoError(t, err)
	require.False(t, s.Empty)
	require.Len(t, s.Equivalents, len(Kinds()))

	want := map[Kind]string{
		KindTreeSeedlings: "13",
		KindHomeDays:      "44",
		KindMilesDriven:   "4,208",
		KindSmartphones:   "98,297",
	}
	for _, e := range s.Equivalents {
		assert.Equal(t, want[e.Kind], e.Formatted, e.Kind.String())
		assert.InDelta(t, 808/e.Kind.Factor(), e.Value, 1e-9)
		assert.Equal(t, e.Kind.Label(), e.Label)
	}
	assert.Equal(t, "Equivalent to ~13 tree seedlings grown for 10 years or driving ~4,208 miles", s.Text)
}

func TestCompute_Edges(t *testing.T) {
	tests := []struct {
		name      string
		kg        float64
		wantEmpty bool
		wantErr   error
	}{
		{"zero", 0, true, nil},
		{"below threshold", 0.5, true, nil},
		{"at threshold", MinThresholdKg, false, nil},
		{"negative", -1, true, ErrNegativeValue},
		{"nan", math.NaN(), true, ErrOverflow},
		{"inf", math.Inf(1), true, ErrOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Compute(tt.kg)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantEmpty, s.Empty)
			if tt.wantEmpty {
				assert.Empty(t, s.Text)
			}
		})
	}
}

func TestToKg(t *testing.T) {
	tests := []struct {
		value float64
		unit  string
		want  float64
	}{
		{1500, "g", 1.5},
		{2, "kg", 2},
		{2, "kgCO2e", 2},
		{0.25, "t", 250},
		{3, "Tons", 3000},
		{10, "lb", 4.53592},
	}
	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			got, err := ToKg(tt.value, tt.unit)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	_, err := ToKg(1, "furlongs")
	require.ErrorIs(t, err, ErrInvalidUnit)
	_, err = ToKg(-1, "kg")
	require.ErrorIs(t, err, ErrNegativeValue)
	_, err = ToKg(math.MaxFloat64, "t")
	require.ErrorIs(t, err, ErrOverflow)
}

func TestFromQuantity(t *testing.T) {
	s, err := FromQuantity(0.808, "t")
	require.NoError(t, err)
	assert.InDelta(t, 808.0, s.InputKg, 1e-9)

	s, err = FromQuantity(1, "bogus")
	require.Error(t, err)
	assert.True(t, s.Empty)
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0.2))
	assert.Equal(t, "1,235", FormatCount(1234.6))
	assert.Equal(t, "2.5 million", FormatCount(2_500_000))
	assert.Equal(t, "1.2 billion", FormatCount(1_200_000_000))
}

func TestKindJSON(t *testing.T) {
	b, err := json.Marshal(Equivalent{Kind: KindHomeDays})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"kind":"home_days"`)
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestKindJSON_RoundTrip(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			b, err := json.Marshal(Equivalent{Kind: kind, Value: 3})
			require.NoError(t, err)

			var got Equivalent
			require.NoError(t, json.Unmarshal(b, &got))
			assert.Equal(t, kind, got.Kind)
		})
	}
}

func TestKindUnmarshalText_Unknown(t *testing.T) {
	var k Kind
	err := k.UnmarshalText([]byte("Kind(9)"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown equivalency kind")

	err = json.Unmarshal([]byte(`{"kind":"bicycles"}`), &Equivalent{})
	require.Error(t, err)
}
