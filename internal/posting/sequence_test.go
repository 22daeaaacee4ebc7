package posting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatGrnNo(t *testing.T) {
	assert.Equal(t, "GRN00001", FormatGrnNo(1))
	assert.Equal(t, "GRN00042", FormatGrnNo(42))
	assert.Equal(t, "GRN99999", FormatGrnNo(99999))
	// Genişlik dolunca numara kısaltılmadan uzar
	assert.Equal(t, "GRN100000", FormatGrnNo(100000))
}

func TestFormatInvoiceNo(t *testing.T) {
	assert.Equal(t, "00000001", FormatInvoiceNo(1))
	assert.Equal(t, "00099999", FormatInvoiceNo(99999))
	assert.Equal(t, "100000000", FormatInvoiceNo(100000000))
}

func TestParseGrnNo(t *testing.T) {
	n, ok := ParseGrnNo("GRN00042")
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	n, ok = ParseGrnNo("GRN123456")
	assert.True(t, ok)
	assert.Equal(t, int64(123456), n)

	for _, bad := range []string{"", "GRN", "GRNabc", "00042", "XRN00042", "GRN-1"} {
		_, ok := ParseGrnNo(bad)
		assert.False(t, ok, "parse edilmemeliydi: %q", bad)
	}
}

func TestParseInvoiceNo(t *testing.T) {
	n, ok := ParseInvoiceNo("00000042")
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	for _, bad := range []string{"", "abc", "-1"} {
		_, ok := ParseInvoiceNo(bad)
		assert.False(t, ok, "parse edilmemeliydi: %q", bad)
	}
}
