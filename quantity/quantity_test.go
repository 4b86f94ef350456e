package quantity

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantityAlgebra(t *testing.T) {
	m := Unit("meter")
	s := Unit("second")

	speed := m.Div(s)
	assert.Equal(t, "1 meter * second ** -1", speed.String())
	assert.Equal(t, -1, speed.Exponent("second"))
	assert.Equal(t, 0, speed.Exponent("gram"))

	acc := m.Mul(s.Pow(-2))
	assert.Equal(t, "1 meter * second ** -2", acc.String())
	assert.True(t, acc.Equal(speed.Div(s)))

	assert.True(t, m.Div(m).Dimensionless())
	assert.True(t, m.Div(m).Equal(Quantity{}))
	assert.Equal(t, "1", Quantity{}.String())
	assert.Equal(t, "1 meter", m.Pow(1).String())
	assert.True(t, m.Pow(0).Equal(Quantity{}))
}

func TestQuantityMagnitude(t *testing.T) {
	ten := Scalar(big.NewRat(10, 1))
	assert.Equal(t, "10", ten.String())
	assert.Equal(t, "1000 meter ** 3", ten.Mul(Unit("meter")).Pow(3).String())
	assert.Equal(t, "1/100", ten.Pow(-2).String())
	assert.Equal(t, "1/10 second ** -1", Quantity{}.Div(ten.Mul(Unit("second"))).String())

	mag := ten.Magnitude()
	mag.SetInt64(5)
	assert.Equal(t, "10", ten.String())

	units := Unit("meter").Units()
	units["meter"] = 7
	assert.Equal(t, 1, Unit("meter").Exponent("meter"))

	assert.True(t, Scalar(big.NewRat(1, 1)).Equal(Quantity{}))
	assert.True(t, Make(nil, map[string]int{"meter": 0}).Dimensionless())
	assert.False(t, ten.Equal(Quantity{}))
	assert.False(t, Unit("meter").Equal(Unit("second")))
	assert.Equal(t, "0 meter ** -1", Scalar(new(big.Rat)).Mul(Unit("meter")).Pow(-1).String())
}

func TestQuantityLargePower(t *testing.T) {
	ten := Scalar(big.NewRat(10, 1))
	expected := new(big.Int).Exp(big.NewInt(10), big.NewInt(1000), nil)
	assert.Equal(t, 0, ten.Pow(1000).Magnitude().Cmp(new(big.Rat).SetInt(expected)))
	assert.Equal(t, 0, ten.Pow(-1000).Magnitude().Cmp(new(big.Rat).SetFrac(big.NewInt(1), expected)))
	assert.Equal(t, "4/9", Scalar(big.NewRat(3, 2)).Pow(-2).String())

	huge := Unit("second").Pow(math.MaxInt)
	assert.Equal(t, math.MaxInt, huge.Exponent("second"))
	assert.Equal(t, "1", Quantity{}.Pow(math.MinInt).String())

	assert.Panics(t, func() {
		huge.Pow(2)
	})
	assert.Panics(t, func() {
		Unit("second").Pow(-1).Pow(math.MinInt)
	})
	assert.NotPanics(t, func() {
		Unit("second").Pow(math.MinInt)
	})
}
