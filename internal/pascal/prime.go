package pascal

// IsPrime reports whether m is prime by trial division up to sqrt(m).
func IsPrime(m int) bool {
	if m < 2 {
		return false
	}
	for i := 2; i*i <= m; i++ {
		if m%i == 0 {
			return false
		}
	}
	return true
}

// Primes returns the primes in [2, limit].
func Primes(limit int) []int {
	var out []int
	for m := 2; m <= limit; m++ {
		if IsPrime(m) {
			out = append(out, m)
		}
	}
	return out
}
