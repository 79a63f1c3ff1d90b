package ctrl

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/syenchuk/smspdudecoder/gsm"
)

// SetMessageFormat according to GSM 07.05 3.2.3
func SetMessageFormat(format MessageFormat) string {
	return fmt.Sprintf("AT+CMGF=%d", format)
}

var requestMessageFormatResponse = regexp.MustCompile(`^\+CMGF: (\d+)$`)

// RequestMessageFormat reads the current message format according to GSM 07.05 3.2.3
func RequestMessageFormat(ctx context.Context, requester gsm.Requester) (MessageFormat, error) {
	responses, err := requester.Request(ctx, "AT+CMGF?")
	if err != nil {
		return 0, err
	}
	if len(responses) < 1 {
		return 0, fmt.Errorf("no response received")
	}
	response := strings.ToUpper(strings.TrimSpace(responses[0]))
	parts := requestMessageFormatResponse.FindStringSubmatch(response)

	if len(parts) != 2 {
		return 0, fmt.Errorf("unexpected response: %s", responses[0])
	}

	result, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}

	return MessageFormat(result), nil
}

// SetNewMessageIndication according to GSM 07.05 3.4.1. Incoming messages are
// forwarded to the terminal as +CMT unsolicited result codes instead of being
// stored on the modem.
func SetNewMessageIndication() string {
	return "AT+CNMI=2,2,0,0,0"
}

// SetPreferredStorage according to GSM 07.05 3.2.2
func SetPreferredStorage(storage string) string {
	return fmt.Sprintf("AT+CPMS=%q,%q,%q", storage, storage, storage)
}

var requestServiceCentreResponse = regexp.MustCompile(`^\+CSCA: "?([+0-9]+)"?,(\d+)$`)

// RequestServiceCentre reads the configured service centre address according to
// GSM 07.05 3.3.1
func RequestServiceCentre(ctx context.Context, requester gsm.Requester) (string, error) {
	responses, err := requester.Request(ctx, "AT+CSCA?")
	if err != nil {
		return "", err
	}
	if len(responses) < 1 {
		return "", fmt.Errorf("no response received")
	}
	response := strings.TrimSpace(responses[0])
	parts := requestServiceCentreResponse.FindStringSubmatch(response)

	if len(parts) != 3 {
		return "", fmt.Errorf("unexpected response: %s", responses[0])
	}

	return parts[1], nil
}

// SignalQuality is a received signal strength report. DBM is derived from the
// RSSI according to GSM 07.07 8.5; it is 0 when the RSSI is 99 (not detectable).
type SignalQuality struct {
	RSSI int
	BER  int
	DBM  int
}

var requestSignalQualityResponse = regexp.MustCompile(`^\+CSQ: (\d+),(\d+)$`)

// RequestSignalQuality reads the current signal quality according to GSM 07.07 8.5
func RequestSignalQuality(ctx context.Context, requester gsm.Requester) (SignalQuality, error) {
	responses, err := requester.Request(ctx, "AT+CSQ")
	if err != nil {
		return SignalQuality{}, err
	}
	if len(responses) < 1 {
		return SignalQuality{}, fmt.Errorf("no response received")
	}
	response := strings.ToUpper(strings.TrimSpace(responses[0]))
	parts := requestSignalQualityResponse.FindStringSubmatch(response)

	if len(parts) != 3 {
		return SignalQuality{}, fmt.Errorf("unexpected response: %s", responses[0])
	}

	result := SignalQuality{}
	result.RSSI, err = strconv.Atoi(parts[1])
	if err != nil {
		return SignalQuality{}, err
	}
	result.BER, err = strconv.Atoi(parts[2])
	if err != nil {
		return SignalQuality{}, err
	}
	if result.RSSI != 99 {
		result.DBM = -113 + 2*result.RSSI
	}

	return result, nil
}
