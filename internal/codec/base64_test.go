package codec

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02, 0xfd, 0xfe, 0xff, 'h', 'i'}

	enc := EncodeToString(data)
	got, err := DecodeString(enc)

	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(got, data))
}

func TestDecodeStringToleratesWhitespace(t *testing.T) {
	data := []byte("the quick brown fox")
	enc := EncodeToString(data)

	wrapped := enc[:4] + "\n" + enc[4:8] + "  " + enc[8:] + "\t\r\n"

	got, err := DecodeString(wrapped)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(got, data))
}

func TestDecodeStringRejectsInvalid(t *testing.T) {
	_, err := DecodeString("not!valid!base64!")
	if err == nil {
		t.Fatal("expected error for invalid base64")
	}
}
