package qit

// Modular-arithmetic helpers used by the exponentiation circuits.

// ModPower returns a^exp mod m by binary exponentiation.
func ModPower(a, exp, m int) int {
	if exp == 0 {
		return 1
	}
	if exp == 1 {
		return a % m
	}
	if exp%2 == 1 {
		return (a * ModPower((a*a)%m, exp/2, m)) % m
	}
	return ModPower((a*a)%m, exp/2, m)
}

// extGCD returns integers (x, y) satisfying a·x + b·y = c, assuming c
// divides gcd(a, b).
func extGCD(a, b, c int) (int, int) {
	if b == 0 {
		return a / c, 0
	}
	s, t := extGCD(b, a%b, c)
	return t, s - (a/b)*t
}

// IsCoprime reports whether gcd(a, b) == 1.
func IsCoprime(a, b int) bool {
	if b == 1 {
		return true
	}
	if a%b == 0 {
		return false
	}
	return IsCoprime(b, a%b)
}

// ModInv returns the multiplicative inverse of a modulo m. a and m must
// be coprime.
func ModInv(a, m int) int {
	x, _ := extGCD(a, -m, 1)
	for x < 1 {
		x += m
	}
	return x
}
