package geo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned by StrictBearing when the two points share a latitude.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAccuracyOutOfRange is returned when a window accuracy is outside (0, 180).
	ErrAccuracyOutOfRange = errors.New("accuracy out of range")
)

// ConfigurationError reports a geometry parameter that cannot be used.
type ConfigurationError struct {
	Field string
	Value float64
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s %v: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ValidateAccuracy checks that a tolerance half-width is inside (0, 180).
func ValidateAccuracy(accuracy float64) error {
	if !(accuracy > 0 && accuracy < 180) {
		return &ConfigurationError{Field: "accuracy", Value: accuracy, Err: ErrAccuracyOutOfRange}
	}
	return nil
}
