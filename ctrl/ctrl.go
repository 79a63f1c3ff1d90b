package ctrl

import (
	"fmt"
	"strings"
)

// MessageFormatByName returns the MessageFormat with the given name
func MessageFormatByName(name string) (MessageFormat, error) {
	sanitized := strings.ToUpper(strings.TrimSpace(name))
	result, ok := MessageFormatsByName[sanitized]
	if !ok {
		return 0, fmt.Errorf("invalid message format %s", name)
	}
	return result, nil
}

// MessageFormat represents a message format according to GSM 07.05 3.2.3
type MessageFormat byte

func (f MessageFormat) String() string {
	for k, v := range MessageFormatsByName {
		if v == f {
			return k
		}
	}
	return "UNKNOWN"
}

// All supported message formats
const (
	PDUFormat MessageFormat = iota
	TextFormat
)

// MessageFormatsByName maps all supported message formats by their string representation
var MessageFormatsByName = map[string]MessageFormat{
	"PDU":  PDUFormat,
	"TEXT": TextFormat,
}
