package converter

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidArgument is returned when a bare value appears before any flag.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrArgConversion is returned when a flag has no wget substitution.
	ErrArgConversion = errors.New("argument conversion")
	// ErrUnrecognisedCommand is returned by the shell for unknown commands.
	// The converter itself never produces it.
	ErrUnrecognisedCommand = errors.New("unrecognised command")
)

// Kind identifies which stage rejected the input.
type Kind int32

const (
	KindInvalidArgument Kind = iota + 1
	KindArgConversion
	KindUnrecognisedCommand
)

var kindNames = map[Kind]string{
	KindInvalidArgument:     "InvalidArgument",
	KindArgConversion:       "ArgConversion",
	KindUnrecognisedCommand: "UnrecognisedCommand",
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("Kind(%d)", int32(k))
	}
	return name
}

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidArgument:
		return ErrInvalidArgument
	case KindArgConversion:
		return ErrArgConversion
	case KindUnrecognisedCommand:
		return ErrUnrecognisedCommand
	}
	return nil
}

// Error is the typed failure of a conversion. Input holds the offending
// word, argument or command text.
type Error struct {
	Kind  Kind
	Input string
}

// Error implements error.
func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidArgument:
		return fmt.Sprintf("Invalid Argument: %s", e.Input)
	case KindArgConversion:
		return fmt.Sprintf("Conversion: No valid substitution for argument: %s!", e.Input)
	case KindUnrecognisedCommand:
		return fmt.Sprintf("Unrecognized command: %s", e.Input)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Input)
	}
}

// Is reports whether target is the sentinel of this error's kind.
func (e *Error) Is(target error) bool {
	sentinel := e.Kind.sentinel()
	return sentinel != nil && target == sentinel
}

// InvalidArgument returns the error for a value with no flag to attach to.
func InvalidArgument(word string) error {
	return &Error{Kind: KindInvalidArgument, Input: word}
}

// ArgConversion returns the error for a flag missing from the table.
func ArgConversion(arg string) error {
	return &Error{Kind: KindArgConversion, Input: arg}
}

// UnrecognisedCommand returns the error for unknown shell commands.
func UnrecognisedCommand(cmd string) error {
	return &Error{Kind: KindUnrecognisedCommand, Input: cmd}
}

// KindOf extracts the Kind from err, or 0 when err is not a conversion error.
func KindOf(err error) Kind {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind
	}
	return 0
}
