// Package validate provides the numeric guards shared by the pricing engine.
// Every required input is either a valid number in range or the guard fails
// with a typed *Error.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Kind classifies a validation failure.
type Kind int

const (
	InvalidArgumentType Kind = iota + 1
	OutOfRange
	MissingRate
	InvalidValue
)

func (k Kind) String() string {
	switch k {
	case InvalidArgumentType:
		return "invalid argument type"
	case OutOfRange:
		return "out of range"
	case MissingRate:
		return "missing rate"
	case InvalidValue:
		return "invalid value"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching against an *Error of the same Kind.
var (
	ErrInvalidArgumentType = errors.New(InvalidArgumentType.String())
	ErrOutOfRange          = errors.New(OutOfRange.String())
	ErrMissingRate         = errors.New(MissingRate.String())
	ErrInvalidValue        = errors.New(InvalidValue.String())
)

// Error is a validation failure raised by a pricing operation.
type Error struct {
	Kind Kind
	Op   string // operation that rejected the input
	Msg  string
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Msg
	}
	return e.Op + ": " + e.Msg
}

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidArgumentType:
		return e.Kind == InvalidArgumentType
	case ErrOutOfRange:
		return e.Kind == OutOfRange
	case ErrMissingRate:
		return e.Kind == MissingRate
	case ErrInvalidValue:
		return e.Kind == InvalidValue
	}
	return false
}

// Errorf builds an *Error.
func Errorf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ve *Error
	return errors.As(err, &ve) && ve.Kind == kind
}

// Coerce converts v to a float64 the way loosely typed records expect.
// Numeric strings (including scientific notation) parse; the empty string
// and false are 0 and true is 1. Anything that cannot be read as a number
// is NaN.
func Coerce(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case json.Number:
		return parseNumeric(string(n))
	case string:
		return parseNumeric(n)
	case *float64:
		if n == nil {
			return math.NaN()
		}
		return *n
	}
	return math.NaN()
}

// parseNumeric reads s as a decimal or scientific float, an unsigned
// 0x/0o/0b integer literal, or the spellings Infinity and -Infinity. Other
// forms ParseFloat would accept ("inf", "NaN", "1_000", hex floats) are NaN.
func parseNumeric(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.Contains(s, "_") {
		return math.NaN()
	}

	body := strings.TrimLeft(s, "+-")
	if len(s)-len(body) > 1 {
		return math.NaN()
	}
	switch lower := strings.ToLower(body); {
	case strings.HasPrefix(lower, "inf"), strings.HasPrefix(lower, "nan"):
		if body != "Infinity" {
			return math.NaN()
		}
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	case len(lower) > 2 && lower[0] == '0' && strings.ContainsRune("xob", rune(lower[1])):
		if body != s {
			return math.NaN()
		}
		return parseRadix(body[2:], lower[1])
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// ParseFloat reports range errors alongside a usable ±Inf.
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f
		}
		return math.NaN()
	}
	return f
}

// parseRadix reads digits in base 16, 8 or 2 selected by the literal's
// prefix letter.
func parseRadix(digits string, prefix byte) float64 {
	if strings.ContainsAny(digits, "+-") {
		return math.NaN()
	}
	base := map[byte]int{'x': 16, 'o': 8, 'b': 2}[prefix]
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return math.NaN()
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f
}

// Number coerces v and fails unless the result is a number. Infinities are
// allowed through and propagate into downstream arithmetic.
func Number(v any, name, op string) (float64, error) {
	if v == nil {
		return 0, Errorf(InvalidArgumentType, op, "%s must be a number", name)
	}
	f := Coerce(v)
	if math.IsNaN(f) {
		return 0, Errorf(InvalidArgumentType, op, "%s must be a number", name)
	}
	return f, nil
}

// Float rejects NaN.
func Float(f float64, name, op string) error {
	if math.IsNaN(f) {
		return Errorf(InvalidArgumentType, op, "%s must be a number", name)
	}
	return nil
}

// NonNegative rejects NaN and values below zero.
func NonNegative(f float64, name, op string) error {
	if err := Float(f, name, op); err != nil {
		return err
	}
	if f < 0 {
		return Errorf(InvalidValue, op, "%s cannot be negative", name)
	}
	return nil
}

// Positive rejects NaN and values at or below zero.
func Positive(f float64, name, op string) error {
	if err := Float(f, name, op); err != nil {
		return err
	}
	if f <= 0 {
		return Errorf(OutOfRange, op, "%s must be positive", name)
	}
	return nil
}

// IntInRange rejects n outside [lo, hi].
func IntInRange(n, lo, hi int, name, op string) error {
	if n < lo || n > hi {
		return Errorf(OutOfRange, op, "%s must be between %d-%d", name, lo, hi)
	}
	return nil
}
