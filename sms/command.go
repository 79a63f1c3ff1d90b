package sms

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/syenchuk/smspdudecoder/gsm"
)

// StoredStatus of a message in the modem's message store, the <stat> value used by
// +CMGL and +CMGR in PDU mode.
type StoredStatus int

// All stored message status values according to GSM 07.05 3.1
const (
	ReceivedUnread StoredStatus = iota
	ReceivedRead
	StoredUnsent
	StoredSent
	AnyStatus
)

// StoredMessage couples a decoded message with its slot in the modem's message
// store.
type StoredMessage struct {
	Index      int
	Status     StoredStatus
	TPDULength int
	Message    Message
}

// ListMessagesCommand according to GSM 07.05 3.4.2
func ListMessagesCommand(status StoredStatus) string {
	return fmt.Sprintf("AT+CMGL=%d", status)
}

// ReadMessageCommand according to GSM 07.05 3.4.3
func ReadMessageCommand(index int) string {
	return fmt.Sprintf("AT+CMGR=%d", index)
}

// DeleteMessageCommand according to GSM 07.05 3.5.4
func DeleteMessageCommand(index int) string {
	return fmt.Sprintf("AT+CMGD=%d", index)
}

var listMessageHeader = regexp.MustCompile(`^\+CMGL: (\d+),(\d+),([^,]*),(\d+)$`)

// ParseListHeader parses one +CMGL header line of a PDU mode listing.
func ParseListHeader(s string) (StoredMessage, error) {
	parts := listMessageHeader.FindStringSubmatch(strings.TrimSpace(s))
	if len(parts) != 5 {
		return StoredMessage{}, fmt.Errorf("invalid +CMGL header: %s", s)
	}

	var result StoredMessage
	var err error
	result.Index, err = strconv.Atoi(parts[1])
	if err != nil {
		return StoredMessage{}, fmt.Errorf("invalid message index %s: %v", parts[1], err)
	}
	status, err := strconv.Atoi(parts[2])
	if err != nil {
		return StoredMessage{}, fmt.Errorf("invalid message status %s: %v", parts[2], err)
	}
	result.Status = StoredStatus(status)
	result.TPDULength, err = strconv.Atoi(parts[4])
	if err != nil {
		return StoredMessage{}, fmt.Errorf("invalid TPDU length %s: %v", parts[4], err)
	}

	return result, nil
}

// ListMessages reads the modem's message store using AT+CMGL in PDU mode. The
// response alternates +CMGL header lines and hex PDU lines; each pair is decoded
// into a StoredMessage.
func ListMessages(ctx context.Context, requester gsm.Requester, status StoredStatus) ([]StoredMessage, error) {
	lines, err := requester.Request(ctx, ListMessagesCommand(status))
	if err != nil {
		return nil, err
	}

	result := make([]StoredMessage, 0, len(lines)/2)
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, "+CMGL:") {
			continue
		}
		entry, err := ParseListHeader(line)
		if err != nil {
			return nil, err
		}
		if i+1 >= len(lines) {
			return nil, fmt.Errorf("missing PDU line after %s", line)
		}
		i++
		entry.Message, err = decodeStoredPDU(lines[i], entry.TPDULength)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", entry.Index, err)
		}
		result = append(result, entry)
	}

	return result, nil
}

var readMessageHeader = regexp.MustCompile(`^\+CMGR: (\d+),([^,]*),(\d+)$`)

// ReadMessage reads a single message from the modem's message store using AT+CMGR
// in PDU mode.
func ReadMessage(ctx context.Context, requester gsm.Requester, index int) (StoredMessage, error) {
	lines, err := requester.Request(ctx, ReadMessageCommand(index))
	if err != nil {
		return StoredMessage{}, err
	}
	if len(lines) < 2 {
		return StoredMessage{}, fmt.Errorf("incomplete +CMGR response: %v", lines)
	}

	parts := readMessageHeader.FindStringSubmatch(strings.TrimSpace(lines[0]))
	if len(parts) != 4 {
		return StoredMessage{}, fmt.Errorf("invalid +CMGR header: %s", lines[0])
	}

	result := StoredMessage{Index: index}
	status, err := strconv.Atoi(parts[1])
	if err != nil {
		return StoredMessage{}, fmt.Errorf("invalid message status %s: %v", parts[1], err)
	}
	result.Status = StoredStatus(status)
	result.TPDULength, err = strconv.Atoi(parts[3])
	if err != nil {
		return StoredMessage{}, fmt.Errorf("invalid TPDU length %s: %v", parts[3], err)
	}
	result.Message, err = decodeStoredPDU(lines[1], result.TPDULength)
	if err != nil {
		return StoredMessage{}, err
	}

	return result, nil
}

// DeleteMessage removes a message from the modem's message store using AT+CMGD.
func DeleteMessage(ctx context.Context, requester gsm.Requester, index int) error {
	_, err := requester.Request(ctx, DeleteMessageCommand(index))
	return err
}

var deliverIndicationHeader = regexp.MustCompile(`^\+CMT: ([^,]*),(\d+)$`)

// ParseDeliverIndication parses the +CMT unsolicited result code announcing an
// incoming message, together with the hex PDU line that follows it.
func ParseDeliverIndication(headerLine string, pduLine string) (Message, error) {
	parts := deliverIndicationHeader.FindStringSubmatch(strings.TrimSpace(headerLine))
	if len(parts) != 3 {
		return Message{}, fmt.Errorf("invalid +CMT header: %s", headerLine)
	}
	tpduLength, err := strconv.Atoi(parts[2])
	if err != nil {
		return Message{}, fmt.Errorf("invalid TPDU length %s: %v", parts[2], err)
	}
	return decodeStoredPDU(pduLine, tpduLength)
}

// decodeStoredPDU decodes a hex PDU line read from the modem and checks it against
// the TPDU length the modem announced, which does not count the SMSC prefix.
func decodeStoredPDU(pduHex string, tpduLength int) (Message, error) {
	pdu, err := gsm.HexToBinary(strings.TrimSpace(pduHex))
	if err != nil {
		return Message{}, fmt.Errorf("cannot decode hex PDU data: %w", err)
	}
	if len(pdu) > 0 {
		smscOctets := int(pdu[0]) + 1
		if got := len(pdu) - smscOctets; got != tpduLength {
			log.Printf("got different count of TPDU bytes, expected %d, but got %d", tpduLength, got)
		}
	}
	return Decode(pdu)
}
