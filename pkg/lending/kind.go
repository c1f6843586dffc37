package lending

import (
	"fmt"
	"strings"
)

// Kind identifies a financial-safety precondition that blocked an operation.
// Names and codes are stable; new kinds are only ever appended.
type Kind uint32

// Codes start at the program's custom error offset.
const (
	KindInsufficientFunds    Kind = 6000
	KindOverBorrowableAmount Kind = 6001
	KindOverRepay            Kind = 6002
	KindHealthFactorAboveOne Kind = 6003
)

type kindDescriptor struct {
	name    string
	message string
}

var kindDescriptors = map[Kind]kindDescriptor{
	KindInsufficientFunds: {
		name:    "InsufficientFunds",
		message: "Insufficient funds for this operation.",
	},
	KindOverBorrowableAmount: {
		name:    "OverBorrowableAmount",
		message: "Request Exceeds Over borrowable amount.",
	},
	KindOverRepay: {
		name:    "OverRepay",
		message: "Over repay amount.",
	},
	KindHealthFactorAboveOne: {
		name:    "HealthFactorAboveOne",
		message: "Health factor is above 1.0, liquidation not required.",
	},
}

var kindOrder = []Kind{
	KindInsufficientFunds,
	KindOverBorrowableAmount,
	KindOverRepay,
	KindHealthFactorAboveOne,
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	return append([]Kind(nil), kindOrder...)
}

// Valid reports whether kind belongs to the taxonomy.
func (kind Kind) Valid() bool {
	_, ok := kindDescriptors[kind]
	return ok
}

// String returns the symbolic name, e.g. "OverRepay".
func (kind Kind) String() string {
	descriptor, ok := kindDescriptors[kind]
	if !ok {
		return fmt.Sprintf("Kind(%d)", uint32(kind))
	}
	return descriptor.name
}

// Code returns the numeric error code.
func (kind Kind) Code() uint32 {
	return uint32(kind)
}

// Message returns the user-facing explanation. It is display text only.
func (kind Kind) Message() string {
	return kindDescriptors[kind].message
}

// Err returns the error value carrying kind.
func (kind Kind) Err() error {
	return Error{kind: kind}
}

// MarshalText encodes the symbolic name.
func (kind Kind) MarshalText() ([]byte, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: code %d", ErrUnknownKind, uint32(kind))
	}
	return []byte(kind.String()), nil
}

// UnmarshalText decodes a symbolic name.
func (kind *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*kind = parsed
	return nil
}

// ParseKind resolves a symbolic name.
func ParseKind(raw string) (Kind, error) {
	trimmed := strings.TrimSpace(raw)
	for _, kind := range kindOrder {
		if kindDescriptors[kind].name == trimmed {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: name %q", ErrUnknownKind, raw)
}

// KindFromCode resolves a numeric code.
func KindFromCode(code uint32) (Kind, error) {
	kind := Kind(code)
	if !kind.Valid() {
		return 0, fmt.Errorf("%w: code %d", ErrUnknownKind, code)
	}
	return kind, nil
}
