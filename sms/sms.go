package sms

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"github.com/syenchuk/smspdudecoder/gsm"
)

// MessageType enum, selected by the TP-MTI bits of the first octet.
type MessageType byte

const (
	Deliver MessageType = iota
	Submit
)

func (t MessageType) String() string {
	switch t {
	case Deliver:
		return "SMS-DELIVER"
	case Submit:
		return "SMS-SUBMIT"
	default:
		return "UNKNOWN"
	}
}

// Message is a fully decoded SMS TPDU. It is plain data: every field is filled
// during a single decode call from the input buffer and nothing is mutated
// afterwards, so messages can be decoded concurrently without coordination.
//
// Sender is filled for SMS-DELIVER, Recipient for SMS-SUBMIT. Warning is non-empty
// exactly when truncated UCS-2 user data was recovered; Text then ends with the
// truncation marker.
type Message struct {
	Type MessageType
	SMSC *Address

	// first octet flags

	ReplyPath                bool
	UserDataHeaderIndication bool
	StatusReportIndication   bool // DELIVER
	LoopPrevention           bool // DELIVER
	MoreMessagesToSend       bool // DELIVER
	StatusReportRequest      bool // SUBMIT
	RejectDuplicates         bool // SUBMIT

	MessageReference   byte // SUBMIT
	Sender             Address
	Recipient          Address
	ProtocolIdentifier byte
	DataCoding         DataCoding
	Timestamp          Timestamp      // DELIVER
	Validity           ValidityPeriod // SUBMIT

	UserDataHeader *UserDataHeader
	UserData       []byte // raw payload for the 8-bit data alphabet
	Text           string
	Warning        string
}

// DecodeHex decodes a PDU given in the hex representation used along a modem's AT
// interface. The conversion is case-insensitive and tolerates whitespace.
func DecodeHex(pduHex string) (Message, error) {
	pdu, err := gsm.HexToBinary(pduHex)
	if err != nil {
		return Message{}, fmt.Errorf("cannot decode hex PDU data: %w", err)
	}
	return Decode(pdu)
}

// Decode decodes a raw SMS PDU including the leading SMSC information. The input
// buffer is borrowed for the duration of the call and not retained. Either a
// complete message is returned (possibly carrying a recovery warning), or exactly
// one error; there is no partial result for fatal errors.
func Decode(pdu []byte) (Message, error) {
	r := NewReader(pdu)

	smsc, err := DecodeSMSCAddress(r)
	if err != nil {
		return Message{}, err
	}

	first, err := r.ReadByte()
	if err != nil {
		return Message{}, fmt.Errorf("cannot read first octet: %w", err)
	}

	switch first & 0x03 {
	case 0x00:
		return decodeDeliver(r, first, smsc)
	case 0x01:
		return decodeSubmit(r, first, smsc)
	default:
		return Message{}, fmt.Errorf("TP-MTI 0x%X: %w", first&0x03, ErrUnsupportedMessageType)
	}
}

// decodeDeliver reads the SMS-DELIVER field layout: originating address, protocol
// identifier, data coding scheme, service centre timestamp, user data.
func decodeDeliver(r *Reader, first byte, smsc *Address) (Message, error) {
	result := Message{
		Type:                     Deliver,
		SMSC:                     smsc,
		ReplyPath:                (first & 0x80) != 0,
		UserDataHeaderIndication: (first & 0x40) != 0,
		StatusReportIndication:   (first & 0x20) != 0,
		LoopPrevention:           (first & 0x08) != 0,
		MoreMessagesToSend:       (first & 0x04) != 0,
	}

	var err error
	result.Sender, err = DecodeAddress(r)
	if err != nil {
		return Message{}, fmt.Errorf("sender address: %w", err)
	}
	result.ProtocolIdentifier, err = r.ReadByte()
	if err != nil {
		return Message{}, fmt.Errorf("cannot read protocol identifier: %w", err)
	}
	dcs, err := r.ReadByte()
	if err != nil {
		return Message{}, fmt.Errorf("cannot read data coding scheme: %w", err)
	}
	result.DataCoding = DecodeDCS(dcs)
	result.Timestamp, err = DecodeTimestamp(r)
	if err != nil {
		return Message{}, err
	}

	if err := decodeUserData(r, &result); err != nil {
		return Message{}, err
	}
	return result, nil
}

// decodeSubmit reads the SMS-SUBMIT field layout: message reference, destination
// address, protocol identifier, data coding scheme, the validity period selected
// by TP-VPF, user data.
func decodeSubmit(r *Reader, first byte, smsc *Address) (Message, error) {
	result := Message{
		Type:                     Submit,
		SMSC:                     smsc,
		ReplyPath:                (first & 0x80) != 0,
		UserDataHeaderIndication: (first & 0x40) != 0,
		StatusReportRequest:      (first & 0x20) != 0,
		RejectDuplicates:         (first & 0x04) != 0,
	}
	vpf := ValidityPeriodFormat(first >> 3 & 0x03)

	var err error
	result.MessageReference, err = r.ReadByte()
	if err != nil {
		return Message{}, fmt.Errorf("cannot read message reference: %w", err)
	}
	result.Recipient, err = DecodeAddress(r)
	if err != nil {
		return Message{}, fmt.Errorf("recipient address: %w", err)
	}
	result.ProtocolIdentifier, err = r.ReadByte()
	if err != nil {
		return Message{}, fmt.Errorf("cannot read protocol identifier: %w", err)
	}
	dcs, err := r.ReadByte()
	if err != nil {
		return Message{}, fmt.Errorf("cannot read data coding scheme: %w", err)
	}
	result.DataCoding = DecodeDCS(dcs)
	result.Validity, err = decodeValidityPeriod(r, vpf)
	if err != nil {
		return Message{}, err
	}

	if err := decodeUserData(r, &result); err != nil {
		return Message{}, err
	}
	return result, nil
}

// decodeUserData reads the user data length, the optional user data header, and the
// text payload. The length is a septet count for the GSM 7-bit alphabet and an
// octet count otherwise; a header shares the declared length with the text, so its
// size is subtracted (converted to septets, rounding up, for the packed alphabet).
func decodeUserData(r *Reader, msg *Message) error {
	udl, err := r.ReadByte()
	if err != nil {
		return fmt.Errorf("cannot read user data length: %w", err)
	}
	userData, err := r.ReadBytes(r.Remaining())
	if err != nil {
		return err
	}

	headerOctets := 0
	if msg.UserDataHeaderIndication {
		header, err := DecodeUserDataHeader(NewReader(userData))
		if err != nil {
			return err
		}
		msg.UserDataHeader = &header
		headerOctets = header.SizeOctets()
	}

	switch msg.DataCoding.Alphabet {
	case AlphabetGSM7:
		septets := int(udl)
		headerSeptets := 0
		if msg.UserDataHeader != nil {
			headerSeptets = msg.UserDataHeader.SizeSeptets()
			if headerSeptets > septets {
				headerSeptets = septets
			}
		}
		raw, err := UnpackSeptets(userData, septets)
		if err != nil {
			return err
		}
		msg.Text = SeptetsToString(raw[headerSeptets:])
	case AlphabetUCS2:
		text, warning, err := DecodeUCS2(userData[headerOctets:], int(udl)-headerOctets)
		if err != nil {
			return err
		}
		msg.Text = text
		msg.Warning = warning
	case AlphabetData8Bit:
		payload := userData[headerOctets:]
		expected := int(udl) - headerOctets
		if expected < 0 {
			expected = 0
		}
		if len(payload) > expected {
			payload = payload[:expected]
		}
		msg.UserData = payload
		// lenient: render the raw octets through Latin-1 so Text is always usable
		text, err := charmap.ISO8859_1.NewDecoder().Bytes(payload)
		if err == nil {
			msg.Text = string(text)
		}
	}

	return nil
}
