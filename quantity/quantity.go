// Package quantity implements a reference quantity registry: named units with SI and binary prefixes,
// exact rational magnitudes, and unit algebra limited to multiplication, division, and integer powers.
// No conversion between units is performed.
package quantity

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// Quantity is an immutable product of a magnitude and named units raised to integer powers.
// Zero value is dimensionless 1.
type Quantity struct {
	magnitude *big.Rat
	units     map[string]int
}

var one = big.NewRat(1, 1)

// Make creates quantity, nil magnitude means 1, units with zero exponents are dropped.
func Make(magnitude *big.Rat, units map[string]int) Quantity {
	q := Quantity{}
	if magnitude != nil && magnitude.Cmp(one) != 0 {
		q.magnitude = new(big.Rat).Set(magnitude)
	}
	for name, exp := range units {
		if exp == 0 {
			continue
		}
		if q.units == nil {
			q.units = make(map[string]int, len(units))
		}
		q.units[name] = exp
	}
	return q
}

// Unit creates quantity of magnitude 1 and a single unit.
func Unit(name string) Quantity {
	return Quantity{units: map[string]int{name: 1}}
}

// Scalar creates dimensionless quantity.
func Scalar(magnitude *big.Rat) Quantity {
	return Make(magnitude, nil)
}

func (q Quantity) mag() *big.Rat {
	if q.magnitude == nil {
		return one
	}
	return q.magnitude
}

// Magnitude returns a copy of quantity magnitude.
func (q Quantity) Magnitude() *big.Rat {
	return new(big.Rat).Set(q.mag())
}

// Units returns a copy of unit exponents.
func (q Quantity) Units() map[string]int {
	result := make(map[string]int, len(q.units))
	for name, exp := range q.units {
		result[name] = exp
	}
	return result
}

// Exponent returns exponent of named unit, 0 if absent.
func (q Quantity) Exponent(name string) int {
	return q.units[name]
}

func (q Quantity) Dimensionless() bool {
	return len(q.units) == 0
}

func (q Quantity) Equal(other Quantity) bool {
	if q.mag().Cmp(other.mag()) != 0 || len(q.units) != len(other.units) {
		return false
	}
	for name, exp := range q.units {
		if other.units[name] != exp {
			return false
		}
	}
	return true
}

func (q Quantity) combine(other Quantity, sign int, magnitude *big.Rat) Quantity {
	units := q.Units()
	for name, exp := range other.units {
		units[name] += sign * exp
	}
	return Make(magnitude, units)
}

func (q Quantity) Mul(other Quantity) Quantity {
	return q.combine(other, 1, new(big.Rat).Mul(q.mag(), other.mag()))
}

// Div returns q / other, other must have non-zero magnitude.
func (q Quantity) Div(other Quantity) Quantity {
	return q.combine(other, -1, new(big.Rat).Quo(q.mag(), other.mag()))
}

// Pow raises quantity to integer power, negative powers of zero magnitude keep zero magnitude.
// Panics if a resulting unit exponent overflows int.
func (q Quantity) Pow(n int) Quantity {
	units := make(map[string]int, len(q.units))
	for name, exp := range q.units {
		units[name] = mulExponent(exp, n)
	}
	return Make(powRat(q.mag(), n), units)
}

func mulExponent(exp, n int) int {
	result := exp * n
	if exp != 0 && (result/exp != n || (exp == -1 && n == math.MinInt)) {
		panic(fmt.Sprintf("quantity: exponent overflow in %d * %d", exp, n))
	}
	return result
}

func powRat(base *big.Rat, n int) *big.Rat {
	if n == 0 || base.Cmp(one) == 0 {
		return one
	}
	if base.Sign() == 0 {
		return base
	}

	e := new(big.Int).SetInt64(int64(n))
	e.Abs(e)
	num := new(big.Int).Exp(base.Num(), e, nil)
	den := new(big.Int).Exp(base.Denom(), e, nil)
	if n < 0 {
		num, den = den, num
	}
	return new(big.Rat).SetFrac(num, den)
}

// String returns quantity as "magnitude unit * unit ** exp", units sorted by name,
// e.g. "1 meter * second ** -2".
func (q Quantity) String() string {
	sb := &strings.Builder{}
	sb.WriteString(q.mag().RatString())

	names := make([]string, 0, len(q.units))
	for name := range q.units {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		if i == 0 {
			sb.WriteString(" ")
		} else {
			sb.WriteString(" * ")
		}
		sb.WriteString(name)
		if exp := q.units[name]; exp != 1 {
			sb.WriteString(" ** ")
			sb.WriteString(strconv.Itoa(exp))
		}
	}
	return sb.String()
}
