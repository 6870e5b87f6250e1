package utils

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/Luismorlan/ledger_in_go/model"
)

// Canonical encoding used as the pre-image of block hashes. Objects have their keys sorted,
// items are separated by ", " and keys by ": ", strings are ASCII only and floats always carry a
// fraction or an exponent. Existing chain files were hashed with exactly this form, so it must
// not change.

// CanonicalBlockBytes returns the canonical encoding of every field of the block.
func CanonicalBlockBytes(b *model.Block) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"index": `)
	buf.WriteString(strconv.FormatInt(b.Index, 10))
	buf.WriteString(`, "previous_hash": `)
	writeCanonicalString(&buf, b.PreviousHash)
	buf.WriteString(`, "proof": `)
	buf.WriteString(strconv.FormatInt(b.Proof, 10))
	buf.WriteString(`, "timestamp": `)
	ts, err := CanonicalFloat(b.Timestamp)
	if err != nil {
		return nil, err
	}
	buf.WriteString(ts)
	buf.WriteString(`, "transactions": [`)
	for i := range b.Transactions {
		if i > 0 {
			buf.WriteString(", ")
		}
		if err := writeCanonicalTransaction(&buf, &b.Transactions[i]); err != nil {
			return nil, err
		}
	}
	buf.WriteString("]}")
	return buf.Bytes(), nil
}

// CanonicalTransactionBytes returns the canonical encoding of a single transaction.
func CanonicalTransactionBytes(tx *model.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonicalTransaction(&buf, tx); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonicalTransaction(buf *bytes.Buffer, tx *model.Transaction) error {
	buf.WriteString(`{"amount": `)
	if err := writeCanonicalAmount(buf, tx.Amount); err != nil {
		return err
	}
	buf.WriteString(`, "recipient": `)
	writeCanonicalString(buf, tx.Recipient)
	buf.WriteString(`, "sender": `)
	writeCanonicalString(buf, tx.Sender)
	buf.WriteString("}")
	return nil
}

func writeCanonicalAmount(buf *bytes.Buffer, a model.Amount) error {
	if a.Quoted {
		writeCanonicalString(buf, a.Literal)
		return nil
	}
	if a.IsLiteral() {
		buf.WriteString(a.Literal)
		return nil
	}
	n, err := CanonicalNumber(a.Literal)
	if err != nil {
		return err
	}
	buf.WriteString(n)
	return nil
}

// CanonicalNumber normalizes a JSON number literal. Integers keep arbitrary precision, anything
// with a fraction or an exponent is treated as a float64, and one beyond its range becomes
// Infinity or -Infinity.
func CanonicalNumber(literal string) (string, error) {
	if literal == "" {
		return "0", nil
	}
	if !strings.ContainsAny(literal, ".eE") {
		neg := strings.HasPrefix(literal, "-")
		digits := strings.TrimLeft(strings.TrimPrefix(literal, "-"), "0")
		if digits == "" {
			return "0", nil
		}
		for _, c := range digits {
			if c < '0' || c > '9' {
				return "", fmt.Errorf("invalid number literal %q", literal)
			}
		}
		if neg {
			return "-" + digits, nil
		}
		return digits, nil
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil && !(errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0)) {
		return "", fmt.Errorf("invalid number literal %q: %w", literal, err)
	}
	return CanonicalFloat(f)
}

// CanonicalFloat renders f in its shortest round-trip form. Fixed notation is used when the
// decimal exponent is in [-4, 16), otherwise exponent notation with at least two exponent digits.
// Non-finite values are written as NaN, Infinity and -Infinity.
func CanonicalFloat(f float64) (string, error) {
	switch {
	case math.IsNaN(f):
		return "NaN", nil
	case math.IsInf(f, 1):
		return "Infinity", nil
	case math.IsInf(f, -1):
		return "-Infinity", nil
	}
	if f == 0 {
		if math.Signbit(f) {
			return "-0.0", nil
		}
		return "0.0", nil
	}
	exp := strconv.FormatFloat(f, 'e', -1, 64)
	e, err := strconv.Atoi(exp[strings.IndexByte(exp, 'e')+1:])
	if err != nil {
		return "", err
	}
	if e < -4 || e >= 16 {
		return exp, nil
	}
	fixed := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(fixed, ".") {
		fixed += ".0"
	}
	return fixed, nil
}

const hexDigits = "0123456789abcdef"

func writeCanonicalString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			switch {
			case r < 0x20 || r == 0x7f:
				writeUnicodeEscape(buf, r)
			case r < utf8.RuneSelf:
				buf.WriteByte(byte(r))
			case r > 0xffff:
				r1, r2 := utf16.EncodeRune(r)
				writeUnicodeEscape(buf, r1)
				writeUnicodeEscape(buf, r2)
			default:
				writeUnicodeEscape(buf, r)
			}
		}
	}
	buf.WriteByte('"')
}

func writeUnicodeEscape(buf *bytes.Buffer, r rune) {
	buf.WriteString(`\u`)
	buf.WriteByte(hexDigits[(r>>12)&0xf])
	buf.WriteByte(hexDigits[(r>>8)&0xf])
	buf.WriteByte(hexDigits[(r>>4)&0xf])
	buf.WriteByte(hexDigits[r&0xf])
}
