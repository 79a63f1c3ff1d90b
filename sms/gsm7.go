package sms

import "fmt"

// escapeCode switches the following septet to the single-shift extension table.
const escapeCode = 0x1B

// The GSM 7-bit default alphabet according to GSM 03.38, indexed by septet value.
var defaultAlphabet = [128]rune{
	'@', '£', '$', '¥', 'è', 'é', 'ù', 'ì', 'ò', 'Ç', '\n', 'Ø', 'ø', '\r', 'Å', 'å',
	'Δ', '_', 'Φ', 'Γ', 'Λ', 'Ω', 'Π', 'Ψ', 'Σ', 'Θ', 'Ξ', escapeCode, 'Æ', 'æ', 'ß', 'É',
	' ', '!', '"', '#', '¤', '%', '&', '\'', '(', ')', '*', '+', ',', '-', '.', '/',
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', ':', ';', '<', '=', '>', '?',
	'¡', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O',
	'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z', 'Ä', 'Ö', 'Ñ', 'Ü', '§',
	'¿', 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o',
	'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z', 'ä', 'ö', 'ñ', 'ü', 'à',
}

// The single-shift extension table, reached via the escape septet.
var extensionAlphabet = map[byte]rune{
	0x0A: '\f', 0x14: '^', 0x28: '{', 0x29: '}', 0x2F: '\\',
	0x3C: '[', 0x3D: '~', 0x3E: ']', 0x40: '|', 0x65: '€',
}

var defaultAlphabetInv map[rune]byte
var extensionAlphabetInv map[rune]byte

func init() {
	defaultAlphabetInv = make(map[rune]byte, len(defaultAlphabet))
	for i, r := range defaultAlphabet {
		if byte(i) == escapeCode {
			continue
		}
		defaultAlphabetInv[r] = byte(i)
	}
	extensionAlphabetInv = make(map[rune]byte, len(extensionAlphabet))
	for b, r := range extensionAlphabet {
		extensionAlphabetInv[r] = b
	}
}

// UnpackSeptets extracts count septets from the packed byte run. Septets are packed
// least-significant-bit first across byte boundaries; the bit accumulator carries
// partial septets from one byte into the next. Trailing padding bits in the final
// byte are left untouched. Fails with ErrTruncatedAlphabetData if data holds fewer
// than count*7 bits.
func UnpackSeptets(data []byte, count int) ([]byte, error) {
	if len(data)*8 < count*7 {
		return nil, fmt.Errorf("%d septets need %d bits, %d available: %w", count, count*7, len(data)*8, ErrTruncatedAlphabetData)
	}

	septets := make([]byte, 0, count)
	var acc uint16
	var accBits int
	next := 0
	for len(septets) < count {
		if accBits < 7 {
			acc |= uint16(data[next]) << accBits
			accBits += 8
			next++
		}
		septets = append(septets, byte(acc&0x7F))
		acc >>= 7
		accBits -= 7
	}
	return septets, nil
}

// PackSeptets packs the given septets into bytes, least-significant-bit first,
// padding the final byte with zero bits.
func PackSeptets(septets []byte) []byte {
	result := make([]byte, 0, (len(septets)*7+7)/8)
	var acc uint16
	var accBits int
	for _, s := range septets {
		acc |= uint16(s&0x7F) << accBits
		accBits += 7
		for accBits >= 8 {
			result = append(result, byte(acc))
			acc >>= 8
			accBits -= 8
		}
	}
	if accBits > 0 {
		result = append(result, byte(acc))
	}
	return result
}

// SeptetsToString maps septets to characters through the default alphabet, applying
// the single-shift extension table after an escape septet. Unmapped extension codes
// become a space; a dangling escape at the end produces no character.
func SeptetsToString(septets []byte) string {
	result := make([]rune, 0, len(septets))
	escaped := false
	for _, s := range septets {
		if s == escapeCode && !escaped {
			escaped = true
			continue
		}
		if escaped {
			escaped = false
			if r, ok := extensionAlphabet[s]; ok {
				result = append(result, r)
			} else {
				result = append(result, ' ')
			}
			continue
		}
		result = append(result, defaultAlphabet[s&0x7F])
	}
	return string(result)
}

// Decode7Bit unpacks count septets from the packed byte run and maps them to text.
func Decode7Bit(data []byte, count int) (string, error) {
	septets, err := UnpackSeptets(data, count)
	if err != nil {
		return "", err
	}
	return SeptetsToString(septets), nil
}

// StripCRPadding removes a trailing CR that was used to fill the 7 spare bits of the
// final octet (which would otherwise decode as a spurious '@'). The padding character
// is only present when the septet count is a multiple of 8.
func StripCRPadding(text string, septetCount int) string {
	if septetCount%8 == 0 && len(text) > 0 && text[len(text)-1] == '\r' {
		return text[:len(text)-1]
	}
	return text
}

// StringToSeptets maps text to septets, escaping characters from the extension
// table. Characters outside both tables cannot be represented.
func StringToSeptets(text string) ([]byte, error) {
	septets := make([]byte, 0, len(text))
	for _, r := range text {
		if s, ok := defaultAlphabetInv[r]; ok {
			septets = append(septets, s)
			continue
		}
		if s, ok := extensionAlphabetInv[r]; ok {
			septets = append(septets, escapeCode, s)
			continue
		}
		return nil, fmt.Errorf("character %q cannot be encoded with the GSM 7-bit alphabet", r)
	}
	return septets, nil
}

// Encode7Bit packs text into the GSM 7-bit wire form and returns the packed bytes
// together with the septet count.
func Encode7Bit(text string) ([]byte, int, error) {
	septets, err := StringToSeptets(text)
	if err != nil {
		return nil, 0, err
	}
	return PackSeptets(septets), len(septets), nil
}
