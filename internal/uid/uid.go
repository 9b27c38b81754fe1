// Package uid defines the canonical 16-byte identifier used as the
// primary key for every FinTrack entity, together with the textual
// encodings accepted at the API boundary.
package uid

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// UID is the canonical identifier: exactly 16 bytes, rendered as a
// lower-case hyphenated UUID for display.
type UID uuid.UUID

// Nil is the zero identifier.
var Nil UID

// DecodeError reports why a textual identifier could not be parsed.
type DecodeError struct {
	Reason   string
	InputLen int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode identifier: %s (input length %d)", e.Reason, e.InputLen)
}

// New generates a random identifier.
func New() UID {
	return UID(uuid.New())
}

// FromBytes builds a UID from a raw 16-byte value, as stored in a
// BINARY(16) column.
func FromBytes(b []byte) (UID, error) {
	if len(b) != 16 {
		return Nil, &DecodeError{Reason: "expected 16 bytes", InputLen: len(b)}
	}
	var id UID
	copy(id[:], b)
	return id, nil
}

// Parse decodes any of the accepted textual forms into a UID:
//
//  1. hyphenated 8-4-4-4-12 hex groups
//  2. raw hex, exactly 32 characters
//  3. the raw hex form with a 0x or 0X prefix
//
// The input is normalized by stripping the optional prefix, dropping
// hyphens and lower-casing; the remainder must be exactly 32 hex
// characters. Anything else returns a *DecodeError.
func Parse(text string) (UID, error) {
	inputLen := len(text)
	if inputLen == 0 {
		return Nil, &DecodeError{Reason: "empty input", InputLen: 0}
	}

	s := text
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	s = strings.ToLower(strings.ReplaceAll(s, "-", ""))

	if len(s) != 32 {
		return Nil, &DecodeError{Reason: "expected 32 hex characters", InputLen: inputLen}
	}

	var raw [16]byte
	if _, err := hex.Decode(raw[:], []byte(s)); err != nil {
		return Nil, &DecodeError{Reason: "non-hex character", InputLen: inputLen}
	}

	return UID(raw), nil
}

// String renders the canonical hyphenated lower-case form. Every
// accepted input form re-encodes to this same representation.
func (id UID) String() string {
	return uuid.UUID(id).String()
}

// Bytes returns the raw 16-byte value for storage.
func (id UID) Bytes() []byte {
	b := make([]byte, 16)
	copy(b, id[:])
	return b
}

// IsNil reports whether the identifier is all zero.
func (id UID) IsNil() bool {
	return id == Nil
}

// Value implements driver.Valuer, storing the raw 16 bytes.
func (id UID) Value() (driver.Value, error) {
	return id.Bytes(), nil
}

// Scan implements sql.Scanner, accepting the raw 16-byte form as well
// as any textual form Parse accepts.
func (id *UID) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		if len(v) == 16 {
			parsed, err := FromBytes(v)
			if err != nil {
				return err
			}
			*id = parsed
			return nil
		}
		parsed, err := Parse(string(v))
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into UID", src)
	}
}
