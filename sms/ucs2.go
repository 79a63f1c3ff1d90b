package sms

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// ucs2Codec decodes the fixed-width big-endian 16-bit code units used for non-Latin
// text. The UTF-16 codec covers the UCS-2 range; surrogate pairs are passed through
// as-is since the wire format assumes fixed-width units.
var ucs2Codec = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// truncationMarker is appended to the text when a truncated UCS-2 payload is
// recovered.
const truncationMarker = "…"

// WarningTruncatedUserData is the warning attached to a message whose UCS-2 user
// data was shorter than the declared length. The partial text ends with the
// truncation marker.
const WarningTruncatedUserData = "truncated PDU: user data is shorter than the declared length"

// DecodeUCS2 decodes expected bytes of big-endian UCS-2 text from data. A payload
// shorter than expected, or ending in an orphan half of a code unit, is a truncated
// PDU: the decodable prefix is returned with the truncation marker appended and a
// non-empty warning. This is recovery, not failure, so the transport-level
// truncation of a long message still yields readable text. The only error is
// ErrEmptyUserData, when at least one character was expected but no byte is present.
func DecodeUCS2(data []byte, expected int) (text string, warning string, err error) {
	if expected > 0 && len(data) == 0 {
		return "", "", fmt.Errorf("expected %d bytes of UCS-2 user data: %w", expected, ErrEmptyUserData)
	}
	if expected <= 0 {
		return "", "", nil
	}

	n := expected
	if len(data) < n {
		n = len(data)
	}
	truncated := n < expected || n%2 != 0
	n -= n % 2

	decoded, err := ucs2Codec.NewDecoder().Bytes(data[:n])
	if err != nil {
		return "", "", fmt.Errorf("cannot decode UCS-2 user data: %w", err)
	}

	if truncated {
		return string(decoded) + truncationMarker, WarningTruncatedUserData, nil
	}
	return string(decoded), "", nil
}

// EncodeUCS2 encodes text into big-endian UCS-2 bytes.
func EncodeUCS2(text string) ([]byte, error) {
	return ucs2Codec.NewEncoder().Bytes([]byte(text))
}
