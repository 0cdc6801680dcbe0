package gpio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLuminance struct {
	value   uint8
	sampled int
}

func (f *fakeLuminance) Sample()              { f.sampled++ }
func (f *fakeLuminance) ReadLuminance() uint8 { return f.value }

func TestLightSensorTermination(t *testing.T) {
	// P6: for any sample = s, pin 3 goes high on exactly the clock
	// tick where counter first reaches s.
	lux := &fakeLuminance{value: 5}
	b := NewBus(Light, Capabilities{LuminanceSource: lux})
	b.WriteRegister(ControlReg, 1)
	b.WriteRegister(DirectionReg, 0x3) // CLK(0), RESET(1) CPU-driven; CS(2), DATA(3) device

	// Pulse RESET to sample luminance and zero the counter.
	b.WriteRegister(DataReg, 0x2)
	require.Equal(t, uint8(5), b.light.sample)
	require.Equal(t, uint8(0), b.light.counter)
	b.WriteRegister(DataReg, 0x0)

	for i := uint8(1); i <= 5; i++ {
		// Rising edge of CLK. CLK itself is CPU-driven, so mask the
		// published register down to DATA (pin 3) before asserting;
		// P6 is about the device's output bit, not the whole register.
		b.WriteRegister(DataReg, 0x1)
		if i < 5 {
			assert.Equal(t, uint16(0), b.ReadRegister(DataReg)&0x8, "tick %d", i)
		} else {
			assert.Equal(t, uint16(0x8), b.ReadRegister(DataReg)&0x8, "tick %d", i)
		}
		b.WriteRegister(DataReg, 0x0)
	}
}

func TestLightSensorChipDeselected(t *testing.T) {
	b := NewBus(Light, Capabilities{LuminanceSource: &fakeLuminance{value: 1}})
	b.WriteRegister(ControlReg, 1)
	b.WriteRegister(DirectionReg, 0x7) // CLK, RESET, CS all CPU-driven

	b.WriteRegister(DataReg, 0x4) // CS high: device ignores this update
	assert.Equal(t, uint8(0), b.light.counter)
	assert.Equal(t, uint8(0xFF), b.light.sample)
}
