package sms

// Alphabet enum selecting the user data text encoding.
type Alphabet byte

const (
	AlphabetGSM7 Alphabet = iota
	AlphabetData8Bit
	AlphabetUCS2
)

func (a Alphabet) String() string {
	switch a {
	case AlphabetGSM7:
		return "GSM 7-bit"
	case AlphabetData8Bit:
		return "8-bit data"
	case AlphabetUCS2:
		return "UCS-2"
	default:
		return "UNKNOWN"
	}
}

// DataCoding is the interpretation of the TP-DCS byte according to GSM 03.38.
type DataCoding struct {
	Raw        byte
	Alphabet   Alphabet
	Compressed bool
	HasClass   bool
	Class      byte
}

// DecodeDCS interprets a TP-DCS byte. Reserved and unknown coding groups never fail:
// real-world senders exercise non-conformant DCS values, so anything unrecognized
// falls back to the GSM 7-bit default alphabet.
func DecodeDCS(b byte) DataCoding {
	result := DataCoding{Raw: b, Alphabet: AlphabetGSM7}

	switch {
	case b>>6 == 0x00: // general data coding
		result.Compressed = (b & 0x20) != 0
		if (b & 0x10) != 0 {
			result.HasClass = true
			result.Class = b & 0x03
		}
		result.Alphabet = alphabetFromBits(b >> 2 & 0x03)
	case b>>4 == 0x0F: // data coding / message class
		result.HasClass = true
		result.Class = b & 0x03
		if (b & 0x04) != 0 {
			result.Alphabet = AlphabetData8Bit
		}
	case b>>6 == 0x01: // reserved coding group
	case b>>4 == 0x0E: // message waiting indication, UCS-2
		result.Alphabet = AlphabetUCS2
	default: // message waiting indication and friends
	}

	return result
}

func alphabetFromBits(bits byte) Alphabet {
	switch bits {
	case 0x01:
		return AlphabetData8Bit
	case 0x02:
		return AlphabetUCS2
	default: // 0x03 is reserved, fall back to the default alphabet
		return AlphabetGSM7
	}
}
