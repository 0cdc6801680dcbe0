// Package tilt implements the cartridge tilt sensor: a small
// byte-addressable memory window, architecturally separate from the
// shared four-pin GPIO bus, that shares only the rotation-source
// capability with the gyroscope.
package tilt

import (
	"log"

	"github.com/newhook/gbacart/peripheral"
)

// Addresses within the sensor's memory window: the unlock and arm
// write addresses, then the four axis sample read addresses.
const (
	unlockAddr = 0x8000
	armAddr    = 0x8100
	xLowAddr   = 0x8200
	xHighAddr  = 0x8300
	yLowAddr   = 0x8400
	yHighAddr  = 0x8500
)

const neutral = 0x3A0

// Sensor is the tilt sensor's full state: the last latched X/Y samples
// and the two-step unlock handshake.
type Sensor struct {
	x, y   uint16 // 12 significant bits
	unlock bool

	rotation peripheral.RotationSource
	log      *log.Logger
}

// New constructs a Sensor with both samples initialized to 0xFFF, the
// power-on value. rotation may be nil; the sensor then never latches a
// new sample and always returns that 0xFFF reading.
func New(rotation peripheral.RotationSource) *Sensor {
	return &Sensor{
		x:        0xFFF,
		y:        0xFFF,
		rotation: rotation,
		log:      log.Default(),
	}
}

// SetLogger overrides the sensor's logger, matching the bus's own
// SetLogger convention.
func (s *Sensor) SetLogger(l *log.Logger) {
	s.log = l
}

// WriteByte handles a CPU write into the tilt window (§4.6).
func (s *Sensor) WriteByte(addr uint32, value uint8) {
	switch addr {
	case unlockAddr:
		if value == 0x55 {
			s.unlock = true
		} else {
			s.log.Printf("[GAME ERROR] tilt sensor wrote wrong byte to %#04x: %#02x", addr, value)
		}
	case armAddr:
		if value == 0xAA && s.unlock {
			s.unlock = false
			s.sample()
		} else {
			s.log.Printf("[GAME ERROR] tilt sensor wrote wrong byte to %#04x: %#02x", addr, value)
		}
	default:
		s.log.Printf("[GAME ERROR] invalid tilt sensor write to %#04x: %#02x", addr, value)
	}
}

// sample latches fresh X/Y axis readings if a rotation source exposing
// both tilt axes is installed; otherwise the previously latched values
// are left untouched.
func (s *Sensor) sample() {
	if s.rotation == nil {
		return
	}
	s.rotation.Sample()
	x, okX := s.rotation.ReadTiltX()
	y, okY := s.rotation.ReadTiltY()
	if !okX || !okY {
		return
	}
	// Crop off an extra bit so the compressed value can't go negative.
	s.x = uint16((x>>21)+neutral) & 0xFFF
	s.y = uint16((y>>21)+neutral) & 0xFFF
}

// ReadByte handles a CPU read from the tilt window (§4.6).
func (s *Sensor) ReadByte(addr uint32) uint8 {
	switch addr {
	case xLowAddr:
		return uint8(s.x)
	case xHighAddr:
		return uint8(s.x>>8) | 0x80
	case yLowAddr:
		return uint8(s.y)
	case yHighAddr:
		return uint8(s.y >> 8)
	default:
		s.log.Printf("[GAME ERROR] invalid tilt sensor read from %#04x", addr)
		return 0xFF
	}
}

// Snapshot is a serializable copy of the tilt sensor's state, owned and
// restored independently of gpio.Snapshot since the tilt sensor lives
// in its own memory window (§4.7, §2).
type Snapshot struct {
	X      uint16
	Y      uint16
	Unlock bool
}

// Save captures the sensor's full observable state.
func (s *Sensor) Save() Snapshot {
	return Snapshot{X: s.x, Y: s.y, Unlock: s.unlock}
}

// Restore overwrites the sensor's state verbatim from a prior Snapshot.
func (s *Sensor) Restore(snap Snapshot) {
	s.x = snap.X
	s.y = snap.Y
	s.unlock = snap.Unlock
}
