package gpio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGyroBitShift(t *testing.T) {
	// spec.md §8 scenario 5.
	rot := fakeRotation{z: 0x2A00000}
	b := NewBus(Gyro, Capabilities{RotationSource: rot})
	b.WriteRegister(ControlReg, 1)
	b.WriteRegister(DirectionReg, 0x3) // latch (0) and shift clock (1) are CPU-driven

	// Latch: pin 0 high triggers a fresh sample.
	b.WriteRegister(DataReg, 0x1)
	want := uint16((0x2A00000>>21)+gyroNeutral) & 0xFFFF
	require.Equal(t, want, b.gyro.sample)

	// Drop the latch before clocking: pin 0 high re-latches a fresh
	// sample on every bus update, which would clobber the shift
	// register before each bit goes out.
	b.WriteRegister(DataReg, 0x0)

	var got uint16
	for i := 0; i < 16; i++ {
		// Drive pin 1 high, then low: a falling edge shifts one bit
		// out onto pin 2.
		b.WriteRegister(DataReg, 0x2)
		b.WriteRegister(DataReg, 0x0)
		bit := (b.pinState >> 2) & 1
		got = got<<1 | uint16(bit)
	}
	assert.Equal(t, want, got)
}

func TestGyroSilentWithoutSource(t *testing.T) {
	// P3/§4.3: with no rotation source installed, the gyro never
	// touches the bus.
	b := NewBus(Gyro, Capabilities{})
	b.WriteRegister(ControlReg, 1)
	b.WriteRegister(DirectionReg, 0x3)
	b.WriteRegister(DataReg, 0x1)
	assert.Equal(t, uint16(0), b.gyro.sample)
	assert.Equal(t, uint16(0x1), b.ReadRegister(DataReg))
}
