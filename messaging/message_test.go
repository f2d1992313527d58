package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageTypeFromByte(t *testing.T) {
	cases := map[byte]MessageType{
		0x01: MessageTypeText,
		0x02: MessageTypeLocation,
		0x03: MessageTypeFile,
		0x04: MessageTypeImage,
		0x05: MessageTypeAck,
		0xFF: MessageTypeText,
	}
	for b, want := range cases {
		assert.Equal(t, want, messageTypeFromByte(b))
	}
}

func TestErrorRecordConstructors(t *testing.T) {
	for _, rec := range []Record{
		NewCorruptDataRecord(),
		NewAuthFailureRecord(),
		NewUnsupportedCipherRecord(),
	} {
		assert.Equal(t, StatusError, rec.Status)
		assert.NotEmpty(t, rec.Content)
	}
}
