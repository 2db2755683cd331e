package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJarsAreCopies(t *testing.T) {
	a := Jars()
	a[0].Code = "XXX"

	b := Jars()
	assert.Equal(t, "NEC", b[0].Code)
}

func TestJarCodesInOrder(t *testing.T) {
	var codes []string
	for _, j := range Jars() {
		codes = append(codes, j.Code)
	}
	assert.Equal(t, []string{"NEC", "FFA", "LTSS", "EDU", "PLAY", "GIVE"}, codes)
}

func TestEmphasisTagsLongTermSavings(t *testing.T) {
	for _, j := range Jars() {
		want := j.Code == "FFA" || j.Code == "LTSS"
		assert.Equal(t, want, j.Emphasized(), j.Code)
	}
	assert.Equal(t, "emphasis", LabelEmphasis.String())
	assert.Equal(t, "normal", LabelNormal.String())
}

func TestDefaultsSumToWhole(t *testing.T) {
	sum := 0
	for _, p := range DefaultPercents {
		sum += p
	}
	assert.Equal(t, 100, sum)

	total := decimal.Zero
	for _, f := range FixedFractions {
		total = total.Add(f)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(1)), "fixed fractions sum to %s", total)
}

func TestJarByCode(t *testing.T) {
	j, ok := JarByCode("LTSS")
	require.True(t, ok)
	assert.Equal(t, "Long-Term Savings (LTSS)", j.DisplayName())

	_, ok = JarByCode("RENT")
	assert.False(t, ok)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Fixed")
	require.NoError(t, err)
	assert.Equal(t, ModeFixed, m)
	assert.False(t, m.Editable())
	assert.Equal(t, 5000.0, DefaultIncome(m))

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeEditable, m)
	assert.Equal(t, 4666.0, DefaultIncome(m))

	_, err = ParseMode("random")
	assert.ErrorIs(t, err, ErrInvalidMode)
}
