package sms

import "fmt"

// The information element identifiers for concatenated short messages.
const (
	concatenated8BitReference  byte = 0x00
	concatenated16BitReference byte = 0x08
)

// InformationElement is a single {identifier, data} entry of a user data header.
type InformationElement struct {
	ID   byte
	Data []byte
}

// UserDataHeader is the optional structured prefix of the user data, present when
// the TP-UDHI bit of the first octet is set. Length is the declared octet length,
// excluding the length byte itself.
type UserDataHeader struct {
	Length   int
	Elements []InformationElement
}

// DecodeUserDataHeader reads the header length byte and the information elements it
// covers.
func DecodeUserDataHeader(r *Reader) (UserDataHeader, error) {
	length, err := r.ReadByte()
	if err != nil {
		return UserDataHeader{}, fmt.Errorf("cannot read user data header length: %w", err)
	}
	payload, err := r.ReadBytes(int(length))
	if err != nil {
		return UserDataHeader{}, fmt.Errorf("cannot read user data header: %w", err)
	}

	result := UserDataHeader{Length: int(length)}
	elements := NewReader(payload)
	for elements.Remaining() > 0 {
		id, err := elements.ReadByte()
		if err != nil {
			return UserDataHeader{}, fmt.Errorf("cannot read information element ID: %w", err)
		}
		elementLength, err := elements.ReadByte()
		if err != nil {
			return UserDataHeader{}, fmt.Errorf("cannot read information element length: %w", err)
		}
		data, err := elements.ReadBytes(int(elementLength))
		if err != nil {
			return UserDataHeader{}, fmt.Errorf("information element 0x%02X: %w", id, err)
		}
		result.Elements = append(result.Elements, InformationElement{ID: id, Data: data})
	}

	return result, nil
}

// SizeOctets returns the total wire size of the header, including the length byte.
func (h UserDataHeader) SizeOctets() int {
	return h.Length + 1
}

// SizeSeptets returns the number of septets the header occupies in a GSM 7-bit
// packed user data stream, rounding up to the next septet boundary.
func (h UserDataHeader) SizeSeptets() int {
	return (h.SizeOctets()*8 + 6) / 7
}

// Concatenation describes one part of a concatenated short message.
type Concatenation struct {
	Reference  uint16
	TotalParts byte
	Sequence   byte
}

// Concatenation extracts the concatenated-short-message information element, in
// its 8-bit (IEI 0x00) or 16-bit (IEI 0x08) reference form. The second return
// value reports whether the header carries one.
func (h UserDataHeader) Concatenation() (Concatenation, bool) {
	for _, element := range h.Elements {
		switch {
		case element.ID == concatenated8BitReference && len(element.Data) == 3:
			return Concatenation{
				Reference:  uint16(element.Data[0]),
				TotalParts: element.Data[1],
				Sequence:   element.Data[2],
			}, true
		case element.ID == concatenated16BitReference && len(element.Data) == 4:
			return Concatenation{
				Reference:  uint16(element.Data[0])<<8 | uint16(element.Data[1]),
				TotalParts: element.Data[2],
				Sequence:   element.Data[3],
			}, true
		}
	}
	return Concatenation{}, false
}
