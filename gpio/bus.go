// Package gpio implements the cartridge's shared four-pin peripheral
// bus: register interface, pin dispatch, and the per-device state
// machines (real-time clock, gyroscope, rumble motor, light sensor)
// that drive and observe it.
package gpio

import "github.com/newhook/gbacart/peripheral"

// Register offsets within the GPIO memory window. Only the low 4 bits
// of DataReg and DirectionReg, and bit 0 of ControlReg, are meaningful.
const (
	DataReg      = 0x0
	DirectionReg = 0x1
	ControlReg   = 0x2
)

// Device identifies one of the peripherals a cartridge may carry. The
// zero value (None) means no hardware beyond the bare register window.
type Device uint8

const (
	RTC Device = 1 << iota
	Gyro
	Rumble
	Light
	// Tilt marks that a cartridge carries a tilt sensor, for callers that
	// want one bitmask describing a cartridge's full peripheral set. The
	// tilt sensor itself is never dispatched here: it lives on its own
	// memory window in package tilt, not the shared pin bus (§2).
	Tilt
	None Device = 0
)

// Bus is the shared GPIO register file plus the devices attached to a
// given cartridge. All device state is owned here; devices hold no
// pointers to each other or to the bus.
type Bus struct {
	pinState         uint8
	direction        uint8
	readWriteVisible bool
	attached         Device

	register uint16 // the word the CPU actually reads back

	timeSource      peripheral.TimeSource
	rotationSource  peripheral.RotationSource
	rumbleSink      peripheral.RumbleSink
	luminanceSource peripheral.LuminanceSource

	rtc    rtcState
	gyro   gyroState
	rumble rumbleState
	light  lightState

	log *logger
}

// NewBus constructs a bus with the given devices attached. Any of the
// capability handles may be nil; the bus tolerates absence of each by
// skipping that device's output path or returning a safe default.
func NewBus(attached Device, caps Capabilities) *Bus {
	b := &Bus{
		attached:        attached,
		timeSource:      caps.TimeSource,
		rotationSource:  caps.RotationSource,
		rumbleSink:      caps.RumbleSink,
		luminanceSource: caps.LuminanceSource,
		log:             newLogger(),
	}
	b.rtc.reset()
	b.gyro.reset()
	b.light.reset()
	return b
}

// Capabilities bundles the optional host capability handles a Bus
// consumes. Each field may be left nil.
type Capabilities struct {
	TimeSource      peripheral.TimeSource
	RotationSource  peripheral.RotationSource
	RumbleSink      peripheral.RumbleSink
	LuminanceSource peripheral.LuminanceSource
}

// IsAttached reports whether d is present on this cartridge.
func (b *Bus) IsAttached(d Device) bool {
	return b.attached&d != 0
}

// Pin level accessors (pin 0 = clock/SCK, 1 = data, 2 = chip-select,
// 3 = auxiliary).
func (b *Bus) p0() bool { return b.pinState&0x1 != 0 }
func (b *Bus) p1() bool { return b.pinState&0x2 != 0 }
func (b *Bus) p2() bool { return b.pinState&0x4 != 0 }
func (b *Bus) p3() bool { return b.pinState&0x8 != 0 }

// Pin direction accessors: true means the CPU drives that pin.
func (b *Bus) dir0() bool { return b.direction&0x1 != 0 }
func (b *Bus) dir1() bool { return b.direction&0x2 != 0 }
func (b *Bus) dir2() bool { return b.direction&0x4 != 0 }
func (b *Bus) dir3() bool { return b.direction&0x8 != 0 }

// WriteRegister handles a CPU write to one of the three GPIO words.
func (b *Bus) WriteRegister(offset uint32, value uint16) {
	switch offset {
	case DataReg:
		b.pinState &= ^b.direction
		b.pinState |= uint8(value) & b.direction & 0xF
		b.dispatch()
	case DirectionReg:
		b.direction = uint8(value) & 0xF
	case ControlReg:
		b.readWriteVisible = value&1 != 0
	default:
		b.log.warnf("invalid GPIO register offset %#x", offset)
		return
	}
	b.publish()
}

// ReadRegister returns the current value of the published register
// word. Only DataReg carries live content; DirectionReg/ControlReg
// read back what was last written to them (the original hardware
// never makes the CPU read those back through this path, but we keep
// the offsets addressable for completeness).
func (b *Bus) ReadRegister(offset uint32) uint16 {
	switch offset {
	case DataReg:
		return b.register
	case DirectionReg:
		return uint16(b.direction)
	case ControlReg:
		if b.readWriteVisible {
			return 1
		}
		return 0
	default:
		b.log.warnf("invalid GPIO register offset %#x", offset)
		return 0
	}
}

// dispatch notifies every attached device, in the fixed observable
// order RTC, gyro, rumble, light.
func (b *Bus) dispatch() {
	if b.IsAttached(RTC) {
		b.rtc.onPinsChanged(b)
	}
	if b.IsAttached(Gyro) {
		b.gyro.onPinsChanged(b)
	}
	if b.IsAttached(Rumble) {
		b.rumble.onPinsChanged(b)
	}
	if b.IsAttached(Light) {
		b.light.onPinsChanged(b)
	}
}

// publish mirrors pinState into the CPU-visible register word,
// honoring read_write_visible, after every register write.
func (b *Bus) publish() {
	if b.readWriteVisible {
		b.register = uint16(b.pinState) & 0xF
	} else {
		b.register = 0
	}
}

// driveOutput is the single helper through which a device proposes
// output bits. The CPU-driven bits of the live pin register are kept
// unchanged; the proposed bits are overlaid onto the non-CPU-driven
// pins only. pins is a 4-bit mask of the bits a device wants to drive
// high; bits the device doesn't care about must be 0 in pins.
//
// Matching the original hardware model, a device's output only takes
// effect while read_write_visible is set — the CPU must have enabled
// the register window before it can observe anything a device drives
// back onto the bus.
func (b *Bus) driveOutput(pins uint8) {
	if !b.readWriteVisible {
		return
	}
	b.pinState = (b.pinState & b.direction) | (pins & ^b.direction & 0xF)
	b.publish()
}
