package gsm

import (
	"context"
	"encoding/hex"
	"regexp"
	"strings"
)

// Requester abstracts the AT command channel of a GSM modem. A request is a single
// AT command, the response is the set of payload lines received before the final OK.
type Requester interface {
	Request(context.Context, string) ([]string, error)
}

// RequesterFunc wraps a plain function into the Requester interface.
type RequesterFunc func(context.Context, string) ([]string, error)

func (f RequesterFunc) Request(ctx context.Context, request string) ([]string, error) {
	return f(ctx, request)
}

var hexSanitizer = regexp.MustCompile(`\s+`)

// HexToBinary converts the hex representation used along the AT interface for PDU data
// into a slice of bytes. The conversion is case-insensitive and ignores whitespace.
func HexToBinary(s string) ([]byte, error) {
	sanitized := hexSanitizer.ReplaceAllString(s, "")
	return hex.DecodeString(sanitized)
}

// BinaryToHex converts a slice of bytes into the hex representation used along the AT
// interface for PDU data.
func BinaryToHex(pdu []byte) string {
	return strings.ToUpper(hex.EncodeToString(pdu))
}
