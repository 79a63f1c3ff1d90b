package sms

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode7Bit(t *testing.T) {
	tt := []struct {
		desc     string
		data     string
		septets  int
		expected string
	}{
		{
			desc:     "single character",
			data:     "68",
			septets:  1,
			expected: "h",
		},
		{
			desc:     "hellohello",
			data:     "E8329BFD4697D9EC37",
			septets:  10,
			expected: "hellohello",
		},
		{
			desc:     "digits with zero padding bits",
			data:     "31D98C56B3DD00",
			septets:  7,
			expected: "1234567",
		},
		{
			desc:     "twelve septets",
			data:     "C8F71D14969741F977FD07",
			septets:  12,
			expected: "How are you?",
		},
		{
			desc:     "euro sign via extension table",
			data:     "32D0A60C8287E5A0F63B3D07",
			septets:  13,
			expected: "2 € par mois",
		},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			data, err := hex.DecodeString(tc.data)
			require.NoError(t, err)
			actual, err := Decode7Bit(data, tc.septets)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestDecode7BitTruncated(t *testing.T) {
	_, err := Decode7Bit([]byte{0xE8}, 2)
	assert.ErrorIs(t, err, ErrTruncatedAlphabetData)
}

func TestEncode7Bit(t *testing.T) {
	data, septets, err := Encode7Bit("hellohello")
	assert.NoError(t, err)
	assert.Equal(t, 10, septets)
	assert.Equal(t, "e8329bfd4697d9ec37", hex.EncodeToString(data))

	_, _, err = Encode7Bit("добрый день")
	assert.Error(t, err)
}

func TestEncode7BitRoundTrip(t *testing.T) {
	for _, text := range []string{
		"",
		"@",
		"testmessage",
		"{braces} [brackets] |pipe| ~tilde~ back\\slash ^caret^ €",
		"ÅÄÖ åäö ÆØ æø ÉÜ §¿¡",
	} {
		data, septets, err := Encode7Bit(text)
		require.NoError(t, err)
		actual, err := Decode7Bit(data, septets)
		require.NoError(t, err)
		assert.Equal(t, text, actual)
	}
}

func TestSeptetsToString(t *testing.T) {
	tt := []struct {
		desc     string
		septets  []byte
		expected string
	}{
		{
			desc:     "unmapped extension code becomes a space",
			septets:  []byte{0x68, 0x1B, 0x01, 0x69},
			expected: "h i",
		},
		{
			desc:     "dangling escape produces nothing",
			septets:  []byte{0x68, 0x69, 0x1B},
			expected: "hi",
		},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, SeptetsToString(tc.septets))
		})
	}
}

func TestStripCRPadding(t *testing.T) {
	tt := []struct {
		desc     string
		data     string
		septets  int
		expected string
	}{
		{
			desc:     "eight septets ending in CR",
			data:     "AA58ACA6AA8D1A",
			septets:  8,
			expected: "*115*5#",
		},
		{
			desc:     "CR at a non-boundary count is kept",
			data:     "E806",
			septets:  2,
			expected: "h\r",
		},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			data, err := hex.DecodeString(tc.data)
			require.NoError(t, err)
			text, err := Decode7Bit(data, tc.septets)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, StripCRPadding(text, tc.septets))
		})
	}
}
