package sms

import "fmt"

// TypeOfNumber enum according to GSM 03.40 9.1.2.5, bits 6-4 of the TOA byte.
type TypeOfNumber byte

const (
	UnknownNumber TypeOfNumber = iota
	InternationalNumber
	NationalNumber
	NetworkSpecificNumber
	SubscriberNumber
	AlphanumericNumber
	AbbreviatedNumber
	ReservedNumber
)

func (t TypeOfNumber) String() string {
	switch t {
	case UnknownNumber:
		return "unknown"
	case InternationalNumber:
		return "international"
	case NationalNumber:
		return "national"
	case NetworkSpecificNumber:
		return "network-specific"
	case SubscriberNumber:
		return "subscriber"
	case AlphanumericNumber:
		return "alphanumeric"
	case AbbreviatedNumber:
		return "abbreviated"
	default:
		return "reserved"
	}
}

// NumberingPlan enum according to GSM 03.40 9.1.2.5, bits 3-0 of the TOA byte.
type NumberingPlan byte

const (
	UnknownPlan  NumberingPlan = 0x00
	ISDNPlan     NumberingPlan = 0x01
	DataPlan     NumberingPlan = 0x03
	TelexPlan    NumberingPlan = 0x04
	NationalPlan NumberingPlan = 0x08
	PrivatePlan  NumberingPlan = 0x09
	ERMESPlan    NumberingPlan = 0x0A
)

// Address is a decoded originating, destination, or service centre address.
// Value holds the decimal digits, or the decoded identifier for alphanumeric
// addresses. Digits is the digit count as declared on the wire, before the
// padding nibble is removed.
type Address struct {
	Type   TypeOfNumber
	Plan   NumberingPlan
	Digits int
	Value  string
}

// String renders the address the way a phone would, with a leading + for
// international numbers.
func (a Address) String() string {
	if a.Type == InternationalNumber {
		return "+" + a.Value
	}
	return a.Value
}

// DecodeAddress decodes an address field: a digit count, the TOA byte, and
// ceil(n/2) payload bytes. An alphanumeric TON routes the payload through the
// GSM 7-bit unpacker instead of the BCD codec; the digit count then acts as a
// bit-length proxy yielding n*4/7 packed characters.
func DecodeAddress(r *Reader) (Address, error) {
	digitCount, err := r.ReadByte()
	if err != nil {
		return Address{}, fmt.Errorf("cannot read address length: %w", err)
	}
	toa, err := r.ReadByte()
	if err != nil {
		return Address{}, fmt.Errorf("cannot read type-of-address: %w", err)
	}

	result := Address{
		Type:   TypeOfNumber(toa >> 4 & 0x07),
		Plan:   NumberingPlan(toa & 0x0F),
		Digits: int(digitCount),
	}

	byteLen := (int(digitCount) + 1) / 2
	if byteLen > r.Remaining() {
		return Address{}, fmt.Errorf("address with %d digits needs %d bytes at offset %d, %d available: %w",
			digitCount, byteLen, r.Offset(), r.Remaining(), ErrInvalidAddressLength)
	}
	payload, err := r.ReadBytes(byteLen)
	if err != nil {
		return Address{}, err
	}

	if result.Type == AlphanumericNumber {
		result.Value, err = Decode7Bit(payload, int(digitCount)*4/7)
	} else {
		result.Value, err = DecodeSemiOctets(payload, int(digitCount))
	}
	if err != nil {
		return Address{}, fmt.Errorf("cannot decode address value: %w", err)
	}

	return result, nil
}

// DecodeSMSCAddress decodes the service centre address that prefixes a PDU read
// from a modem. Unlike a regular address its length byte counts octets including
// the TOA byte; a zero length means no SMSC information is present and yields nil.
func DecodeSMSCAddress(r *Reader) (*Address, error) {
	length, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("cannot read SMSC length: %w", err)
	}
	if length == 0 {
		return nil, nil
	}

	toa, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("cannot read SMSC type-of-address: %w", err)
	}
	byteLen := int(length) - 1
	if byteLen > r.Remaining() {
		return nil, fmt.Errorf("SMSC info of %d bytes at offset %d, %d available: %w",
			byteLen, r.Offset(), r.Remaining(), ErrInvalidAddressLength)
	}
	payload, err := r.ReadBytes(byteLen)
	if err != nil {
		return nil, err
	}

	result := Address{
		Type: TypeOfNumber(toa >> 4 & 0x07),
		Plan: NumberingPlan(toa & 0x0F),
	}
	if result.Type == AlphanumericNumber {
		result.Value, err = Decode7Bit(payload, byteLen*8/7)
	} else {
		result.Value, err = DecodeSemiOctetsWithFill(payload)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot decode SMSC address value: %w", err)
	}
	result.Digits = len(result.Value)

	return &result, nil
}
