package sms

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAddress(t *testing.T) {
	tt := []struct {
		desc        string
		data        string
		expected    Address
		expectedErr error
	}{
		{
			desc: "international ISDN number",
			data: "0D91683167414052F7",
			expected: Address{
				Type:   InternationalNumber,
				Plan:   ISDNPlan,
				Digits: 13,
				Value:  "8613761404257",
			},
		},
		{
			desc: "national number, even digit count",
			data: "0AA13162440000",
			expected: Address{
				Type:   NationalNumber,
				Plan:   ISDNPlan,
				Digits: 10,
				Value:  "1326440000",
			},
		},
		{
			desc: "alphanumeric sender",
			data: "0BD0CDE6DB5DCE03",
			expected: Address{
				Type:   AlphanumericNumber,
				Plan:   UnknownPlan,
				Digits: 11,
				Value:  "MMoney",
			},
		},
		{
			desc:        "declared length exceeds the data",
			data:        "149121",
			expectedErr: ErrInvalidAddressLength,
		},
		{
			desc:        "empty",
			data:        "",
			expectedErr: ErrUnexpectedEndOfData,
		},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			data, err := hex.DecodeString(tc.data)
			require.NoError(t, err)
			actual, err := DecodeAddress(NewReader(data))
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestDecodeSMSCAddress(t *testing.T) {
	tt := []struct {
		desc     string
		data     string
		expected *Address
	}{
		{
			desc:     "no SMSC information",
			data:     "00",
			expected: nil,
		},
		{
			desc: "international SMSC with fill nibble",
			data: "0891683110304105F1",
			expected: &Address{
				Type:   InternationalNumber,
				Plan:   ISDNPlan,
				Digits: 13,
				Value:  "8613010314501",
			},
		},
		{
			desc: "international SMSC, even digit count",
			data: "07911326040000F0",
			expected: &Address{
				Type:   InternationalNumber,
				Plan:   ISDNPlan,
				Digits: 11,
				Value:  "31624000000",
			},
		},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			data, err := hex.DecodeString(tc.data)
			require.NoError(t, err)
			actual, err := DecodeSMSCAddress(NewReader(data))
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestAddressString(t *testing.T) {
	international := Address{Type: InternationalNumber, Value: "31641600986"}
	assert.Equal(t, "+31641600986", international.String())

	alphanumeric := Address{Type: AlphanumericNumber, Value: "Design@Home"}
	assert.Equal(t, "Design@Home", alphanumeric.String())
}
