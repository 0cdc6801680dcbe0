package gpio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBCDRoundTrip(t *testing.T) {
	for v := uint8(0); v < 100; v++ {
		assert.Equal(t, v, bcdDecode(bcd(v)), "bcd round trip for %d", v)
	}
}

func TestBCDKnownValues(t *testing.T) {
	assert.Equal(t, uint8(0x00), bcd(0))
	assert.Equal(t, uint8(0x42), bcd(42))
	assert.Equal(t, uint8(0x99), bcd(99))
}
