package sms

import "errors"

// The closed set of fatal decode error kinds. Every error returned by a decode
// function wraps exactly one of these, so callers can classify failures with
// errors.Is without re-parsing the input.
var (
	// ErrUnexpectedEndOfData means the PDU ended before a required field could be read.
	ErrUnexpectedEndOfData = errors.New("unexpected end of data")
	// ErrInvalidDigit means a semi-octet nibble outside 0-9 where a decimal digit was required.
	ErrInvalidDigit = errors.New("invalid BCD digit")
	// ErrInvalidPadding means the trailing fill nibble of an odd digit count was not 0xF.
	ErrInvalidPadding = errors.New("invalid BCD padding")
	// ErrInvalidAddressLength means the declared address length exceeds the available bytes.
	ErrInvalidAddressLength = errors.New("invalid address length")
	// ErrTruncatedAlphabetData means there are fewer bits than the declared GSM 7-bit septet count requires.
	ErrTruncatedAlphabetData = errors.New("truncated 7-bit alphabet data")
	// ErrEmptyUserData means the user data is empty although at least one character was expected.
	ErrEmptyUserData = errors.New("empty user data")
	// ErrUnsupportedMessageType means the first octet's TP-MTI selects a message type
	// other than SMS-DELIVER or SMS-SUBMIT.
	ErrUnsupportedMessageType = errors.New("unsupported message type")
)
