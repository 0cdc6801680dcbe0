package gpio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGPIODirectionScenario(t *testing.T) {
	// spec.md §8 scenario 1: no devices attached, so the published
	// register reflects only the CPU-driven bits.
	b := NewBus(None, Capabilities{})
	b.WriteRegister(DirectionReg, 0x5)
	b.WriteRegister(ControlReg, 1)
	b.WriteRegister(DataReg, 0xF)

	assert.Equal(t, uint16(0x5), b.ReadRegister(DataReg))
}

func TestDirectionGatingInvariant(t *testing.T) {
	// P1: bits of the published register corresponding to CPU-driven
	// directions always equal the last CPU-written bits, regardless of
	// what devices try to drive.
	b := NewBus(Gyro, Capabilities{RotationSource: fakeRotation{z: 0x7FFFFFFF}})
	b.WriteRegister(DirectionReg, 0xF) // everything CPU-driven
	b.WriteRegister(ControlReg, 1)
	b.WriteRegister(DataReg, 0x3)

	assert.Equal(t, uint16(0x3), b.ReadRegister(DataReg))
}

func TestVisibilityInvariant(t *testing.T) {
	// P2: with read_write_visible false, the published register reads 0
	// regardless of pin activity.
	b := NewBus(None, Capabilities{})
	b.WriteRegister(ControlReg, 0)
	b.WriteRegister(DirectionReg, 0x0)
	b.WriteRegister(DataReg, 0xF)

	assert.Equal(t, uint16(0), b.ReadRegister(DataReg))
}

func TestDeviceContainmentInvariant(t *testing.T) {
	// P3: with all device capability sources absent, a gyro/rumble/
	// light device never asserts its device-driven pin.
	b := NewBus(Gyro|Rumble|Light, Capabilities{})
	b.WriteRegister(DirectionReg, 0x0) // all device-driven
	b.WriteRegister(ControlReg, 1)

	for i := 0; i < 64; i++ {
		b.WriteRegister(DataReg, uint16(i%2))
		assert.Equal(t, uint16(0), b.ReadRegister(DataReg))
	}
}

func TestInvalidRegisterOffsetIsIgnored(t *testing.T) {
	b := NewBus(None, Capabilities{})
	b.WriteRegister(ControlReg, 1)
	b.WriteRegister(DirectionReg, 0x0)
	b.WriteRegister(0x3, 0xFFFF)

	assert.Equal(t, uint16(0), b.ReadRegister(DataReg))
}

// fakeRotation is a minimal peripheral.RotationSource for tests.
type fakeRotation struct {
	z, x, y int32
	hasTilt bool
}

func (f fakeRotation) Sample()                  {}
func (f fakeRotation) ReadGyroZ() (int32, bool) { return f.z, true }
func (f fakeRotation) ReadTiltX() (int32, bool) { return f.x, f.hasTilt }
func (f fakeRotation) ReadTiltY() (int32, bool) { return f.y, f.hasTilt }
