package ctrl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syenchuk/smspdudecoder/gsm"
)

func TestMessageFormatByName(t *testing.T) {
	tt := []struct {
		name     string
		expected MessageFormat
		invalid  bool
	}{
		{name: "PDU", expected: PDUFormat},
		{name: " text ", expected: TextFormat},
		{name: "binary", invalid: true},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := MessageFormatByName(tc.name)
			if tc.invalid {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestRequestMessageFormat(t *testing.T) {
	tt := []struct {
		desc     string
		response []string
		expected MessageFormat
		invalid  bool
	}{
		{
			desc:    "empty",
			invalid: true,
		},
		{
			desc:     "PDU mode",
			response: []string{"+CMGF: 0", "", "OK"},
			expected: PDUFormat,
		},
		{
			desc:     "text mode",
			response: []string{"+CMGF: 1", "", "OK"},
			expected: TextFormat,
		},
		{
			desc:     "garbage",
			response: []string{"+CMGF: PDU"},
			invalid:  true,
		},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			requester := func(_ context.Context, _ string) ([]string, error) {
				return tc.response, nil
			}
			actual, err := RequestMessageFormat(context.Background(), gsm.RequesterFunc(requester))
			if tc.invalid {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, actual)
			}
		})
	}
}

func TestRequestServiceCentre(t *testing.T) {
	tt := []struct {
		desc     string
		response []string
		expected string
		invalid  bool
	}{
		{
			desc:    "empty",
			invalid: true,
		},
		{
			desc:     "quoted international number",
			response: []string{`+CSCA: "+31624000000",145`, "", "OK"},
			expected: "+31624000000",
		},
		{
			desc:     "unquoted number",
			response: []string{"+CSCA: 0624000000,129", "", "OK"},
			expected: "0624000000",
		},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			requester := func(_ context.Context, _ string) ([]string, error) {
				return tc.response, nil
			}
			actual, err := RequestServiceCentre(context.Background(), gsm.RequesterFunc(requester))
			if tc.invalid {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, actual)
			}
		})
	}
}

func TestRequestSignalQuality(t *testing.T) {
	tt := []struct {
		desc     string
		response []string
		expected SignalQuality
		invalid  bool
	}{
		{
			desc:    "empty",
			invalid: true,
		},
		{
			desc:     "happy path",
			response: []string{"+CSQ: 21,0", "", "OK"},
			expected: SignalQuality{RSSI: 21, BER: 0, DBM: -71},
		},
		{
			desc:     "not detectable",
			response: []string{"+CSQ: 99,99", "", "OK"},
			expected: SignalQuality{RSSI: 99, BER: 99, DBM: 0},
		},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			requester := func(_ context.Context, _ string) ([]string, error) {
				return tc.response, nil
			}
			actual, err := RequestSignalQuality(context.Background(), gsm.RequesterFunc(requester))
			if tc.invalid {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, actual)
			}
		})
	}
}

func TestSetCommands(t *testing.T) {
	assert.Equal(t, "AT+CMGF=0", SetMessageFormat(PDUFormat))
	assert.Equal(t, "AT+CNMI=2,2,0,0,0", SetNewMessageIndication())
	assert.Equal(t, `AT+CPMS="SM","SM","SM"`, SetPreferredStorage("SM"))
}
