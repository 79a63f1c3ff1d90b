package sms

import (
	"fmt"
	"time"
)

// Timestamp is a service centre timestamp (TP-SCTS). The date and time fields hold
// the two-digit values as transmitted; the timezone is a signed offset in quarter
// hours. All fields come from semi-octet decoding, so an invalid BCD nibble fails
// the decode instead of being clamped.
type Timestamp struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int

	TimezoneQuarterHours int
}

// Time converts the timestamp into a time.Time, interpreting the two-digit year in
// the 2000 window.
func (t Timestamp) Time() time.Time {
	zone := time.FixedZone("", t.TimezoneQuarterHours*15*60)
	return time.Date(2000+t.Year, time.Month(t.Month), t.Day, t.Hour, t.Minute, t.Second, 0, zone)
}

func (t Timestamp) String() string {
	return t.Time().Format(time.RFC3339)
}

// DecodeTimestamp decodes the 7 semi-octet bytes of a TP-SCTS field. Bit 3 of the
// timezone byte's first nibble carries the sign of the offset.
func DecodeTimestamp(r *Reader) (Timestamp, error) {
	data, err := r.ReadBytes(7)
	if err != nil {
		return Timestamp{}, fmt.Errorf("cannot read timestamp: %w", err)
	}

	fields := make([]int, 6)
	for i := range fields {
		value, err := decodeTimestampOctet(data[i])
		if err != nil {
			return Timestamp{}, fmt.Errorf("timestamp byte %d: %w", i, err)
		}
		fields[i] = value
	}

	negative := (data[6] & 0x08) != 0
	quarters, err := decodeTimestampOctet(data[6] &^ 0x08)
	if err != nil {
		return Timestamp{}, fmt.Errorf("timestamp timezone byte: %w", err)
	}
	if negative {
		quarters = -quarters
	}

	return Timestamp{
		Year:                 fields[0],
		Month:                fields[1],
		Day:                  fields[2],
		Hour:                 fields[3],
		Minute:               fields[4],
		Second:               fields[5],
		TimezoneQuarterHours: quarters,
	}, nil
}

func decodeTimestampOctet(b byte) (int, error) {
	lo := b & 0x0F
	hi := b >> 4
	if lo > 9 {
		return 0, fmt.Errorf("nibble 0x%X: %w", lo, ErrInvalidDigit)
	}
	if hi > 9 {
		return 0, fmt.Errorf("nibble 0x%X: %w", hi, ErrInvalidDigit)
	}
	return int(lo)*10 + int(hi), nil
}

// ValidityPeriodFormat enum, the TP-VPF bits of an SMS-SUBMIT first octet.
type ValidityPeriodFormat byte

const (
	ValidityPeriodNone ValidityPeriodFormat = iota
	ValidityPeriodEnhanced
	ValidityPeriodRelative
	ValidityPeriodAbsolute
)

// ValidityPeriod is the decoded TP-VP field of an SMS-SUBMIT. Only the field
// matching the format is meaningful: Duration for the relative format, Expires for
// the absolute format, Raw for the enhanced format which is stored opaquely.
type ValidityPeriod struct {
	Format   ValidityPeriodFormat
	Duration time.Duration
	Expires  Timestamp
	Raw      []byte
}

// DecodeRelativeValidityPeriod maps the one-byte relative validity period value to
// a duration according to GSM 03.40 9.2.3.12.1.
func DecodeRelativeValidityPeriod(b byte) time.Duration {
	v := time.Duration(b)
	switch {
	case b <= 143:
		return v * 5 * time.Minute
	case b <= 167:
		return 12*time.Hour + (v-143)/2*time.Hour
	case b <= 196:
		return (v - 166) * 24 * time.Hour
	default:
		return (v - 192) * 7 * 24 * time.Hour
	}
}

func decodeValidityPeriod(r *Reader, format ValidityPeriodFormat) (ValidityPeriod, error) {
	result := ValidityPeriod{Format: format}
	switch format {
	case ValidityPeriodNone:
	case ValidityPeriodRelative:
		b, err := r.ReadByte()
		if err != nil {
			return ValidityPeriod{}, fmt.Errorf("cannot read relative validity period: %w", err)
		}
		result.Duration = DecodeRelativeValidityPeriod(b)
	case ValidityPeriodAbsolute:
		expires, err := DecodeTimestamp(r)
		if err != nil {
			return ValidityPeriod{}, fmt.Errorf("cannot read absolute validity period: %w", err)
		}
		result.Expires = expires
	case ValidityPeriodEnhanced:
		raw, err := r.ReadBytes(7)
		if err != nil {
			return ValidityPeriod{}, fmt.Errorf("cannot read enhanced validity period: %w", err)
		}
		result.Raw = raw
	}
	return result, nil
}
