package services

// Test hooks for the external test package.

// SetApplicationDigitsGenerator swaps the application-ID digit source
// and returns a restore func, so tests can force ID collisions.
func SetApplicationDigitsGenerator(gen func(int) string) (restore func()) {
	prev := generateApplicationDigits
	generateApplicationDigits = gen
	return func() { generateApplicationDigits = prev }
}

var IsUniqueViolation = isUniqueViolation
