package sms

import "fmt"

// The fill nibble used to pad an odd number of semi-octet digits to a full byte.
const fillNibble = 0x0F

// DecodeSemiOctets decodes digitCount decimal digits from the given semi-octet
// (nibble-swapped BCD) bytes. Each byte yields its low nibble first, then its high
// nibble. If digitCount is odd, the final high nibble must be the 0xF fill value.
// Phone number digits and timestamp fields share this encoding.
func DecodeSemiOctets(data []byte, digitCount int) (string, error) {
	byteLen := (digitCount + 1) / 2
	if byteLen > len(data) {
		return "", fmt.Errorf("%d digits need %d bytes, %d available: %w", digitCount, byteLen, len(data), ErrUnexpectedEndOfData)
	}

	digits := make([]byte, 0, digitCount)
	for i := 0; i < byteLen; i++ {
		lo := data[i] & 0x0F
		hi := data[i] >> 4

		if lo > 9 {
			return "", fmt.Errorf("nibble 0x%X in byte %d: %w", lo, i, ErrInvalidDigit)
		}
		digits = append(digits, '0'+lo)

		if len(digits) == digitCount {
			if hi != fillNibble {
				return "", fmt.Errorf("fill nibble 0x%X in byte %d: %w", hi, i, ErrInvalidPadding)
			}
			break
		}
		if hi > 9 {
			return "", fmt.Errorf("nibble 0x%X in byte %d: %w", hi, i, ErrInvalidDigit)
		}
		digits = append(digits, '0'+hi)
	}

	return string(digits), nil
}

// DecodeSemiOctetsWithFill decodes all digits contained in data, treating a 0xF high
// nibble in the last byte as fill. This variant serves fields that declare their
// length in bytes rather than digits, like the SMSC address.
func DecodeSemiOctetsWithFill(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	digitCount := len(data) * 2
	if data[len(data)-1]>>4 == fillNibble {
		digitCount--
	}
	return DecodeSemiOctets(data, digitCount)
}

// EncodeSemiOctets encodes a string of decimal digits into semi-octet bytes,
// padding an odd digit count with the 0xF fill nibble.
func EncodeSemiOctets(digits string) ([]byte, error) {
	result := make([]byte, 0, (len(digits)+1)/2)
	for i := 0; i < len(digits); i += 2 {
		lo := digits[i]
		if lo < '0' || lo > '9' {
			return nil, fmt.Errorf("character %q at position %d: %w", lo, i, ErrInvalidDigit)
		}
		b := lo - '0'
		if i+1 < len(digits) {
			hi := digits[i+1]
			if hi < '0' || hi > '9' {
				return nil, fmt.Errorf("character %q at position %d: %w", hi, i+1, ErrInvalidDigit)
			}
			b |= (hi - '0') << 4
		} else {
			b |= fillNibble << 4
		}
		result = append(result, b)
	}
	return result, nil
}
