package domain

import "time"

// Clock supplies a non-decreasing instant per operation.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// SystemClock reads the wall clock in UTC.
func SystemClock() Clock {
	return systemClock{}
}

// FixedClock always returns the same instant. Handy in tests.
type FixedClock time.Time

func (f FixedClock) Now() time.Time {
	return time.Time(f)
}
