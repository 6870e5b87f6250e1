package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidAmount    = errors.New("amount must be a JSON scalar")
	ErrAmountOutOfRange = errors.New("amount is out of the float64 range")
)

// Amount is the value carried by a transaction. Clients may send a JSON number, a JSON string
// (HTML forms post strings) or one of true, false and null. The value is kept verbatim so that it hashes and persists
// exactly as submitted. No currency semantics are enforced.
type Amount struct {
	// JSON number or true/false/null literal, or the string content when Quoted is set.
	Literal string
	// The amount was submitted as a JSON string.
	Quoted bool
}

// NewAmount creates a numeric amount from an integer.
func NewAmount(v int64) Amount {
	return Amount{Literal: strconv.FormatInt(v, 10)}
}

// NewFloatAmount creates a numeric amount from a float.
func NewFloatAmount(v float64) Amount {
	return Amount{Literal: strconv.FormatFloat(v, 'g', -1, 64)}
}

// NewStringAmount creates an amount that was submitted as a string.
func NewStringAmount(s string) Amount {
	return Amount{Literal: s, Quoted: true}
}

// ParseAmount reads an amount typed on the console. Anything that parses as a number is a number,
// everything else is kept as a string.
func ParseAmount(s string) Amount {
	if _, err := strconv.ParseFloat(s, 64); err == nil && json.Valid([]byte(s)) {
		return Amount{Literal: s}
	}
	return NewStringAmount(s)
}

// IsLiteral tells whether the amount is one of the JSON literals true, false or null.
func (a Amount) IsLiteral() bool {
	return !a.Quoted && isJSONLiteral(a.Literal)
}

func isJSONLiteral(s string) bool {
	return s == "true" || s == "false" || s == "null"
}

// Validate rejects numbers that have a fraction or an exponent and overflow a float64. Such a
// value has no finite canonical form, so a block holding it could not be hashed consistently.
func (a Amount) Validate() error {
	if a.Quoted || a.IsLiteral() || !strings.ContainsAny(a.Literal, ".eE") {
		return nil
	}
	if _, err := strconv.ParseFloat(a.Literal, 64); err != nil {
		return fmt.Errorf("%w: %s", ErrAmountOutOfRange, a.Literal)
	}
	return nil
}

func (a Amount) String() string {
	return a.Literal
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if a.Quoted {
		return json.Marshal(a.Literal)
	}
	if a.Literal == "" {
		return []byte("0"), nil
	}
	return []byte(a.Literal), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidAmount
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = NewStringAmount(s)
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*a = Amount{Literal: n.String()}
		return nil
	case 't', 'f', 'n':
		if !isJSONLiteral(string(data)) {
			return ErrInvalidAmount
		}
		*a = Amount{Literal: string(data)}
		return nil
	default:
		return ErrInvalidAmount
	}
}
