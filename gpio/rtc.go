package gpio

import "time"

// rtcMagic is the fixed high nibble every valid RTC command byte must
// carry.
const rtcMagic = 0x6

// Command table indices (§3 command table).
const (
	rtcForceReset = 0
	rtcDateTime   = 2
	rtcForceIRQ   = 3
	rtcControl    = 4
	rtcTime       = 6
)

// rtcPayloadBytes maps a command index to the number of payload bytes
// that follow its header byte.
var rtcPayloadBytes = [8]uint8{0, 0, 7, 0, 1, 0, 3, 0}

// ctrlHour24 is the only named bit of the control register; the rest
// is a pass-through raw byte (§9 design note).
const ctrlHour24 = 0x40

// rtcCommand is the decoded form of an RTC command header byte: magic
// in the high nibble, a 3-bit command index in bits 1-3, and the
// read/write flag in bit 0.
type rtcCommand struct {
	magic   uint8
	index   uint8
	reading bool
}

func decodeRTCCommand(b uint8) rtcCommand {
	return rtcCommand{
		magic:   b >> 4,
		index:   (b >> 1) & 0x7,
		reading: b&1 != 0,
	}
}

func (c rtcCommand) encode() uint8 {
	b := (c.magic << 4) | ((c.index & 0x7) << 1)
	if c.reading {
		b |= 1
	}
	return b
}

// rtcState is the clock's command-protocol state machine.
type rtcState struct {
	transferStep   uint8 // 0 idle, 1 after first CS pulse, 2 byte transfer
	bits           uint8
	bitsRead       uint8
	commandActive  bool
	command        rtcCommand
	control        uint8
	time           [7]uint8
	bytesRemaining uint8
}

func (r *rtcState) reset() {
	*r = rtcState{control: 0x40}
}

func (r *rtcState) hour24() bool {
	return r.control&ctrlHour24 != 0
}

// onPinsChanged implements the handshake and bit-transfer described in
// spec §4.2, using pins {SCK=0, DATA=1, CS=2}.
func (r *rtcState) onPinsChanged(b *Bus) {
	switch r.transferStep {
	case 0:
		if b.p0() && !b.p2() {
			r.transferStep = 1
		}
	case 1:
		if b.p0() && b.p2() {
			r.transferStep = 2
		}
	case 2:
		r.transferBit(b)
	}
}

func (r *rtcState) transferBit(b *Bus) {
	if !b.p0() {
		// Falling clock: sample DATA into the shift register. No bit
		// count advance happens here.
		if b.p1() {
			r.bits |= 1 << r.bitsRead
		} else {
			r.bits &^= 1 << r.bitsRead
		}
		return
	}

	if !b.p2() {
		// Chip-select dropped mid-transfer: abort back to idle.
		r.bitsRead = 0
		r.bytesRemaining = 0
		r.commandActive = false
		r.command.reading = false
		r.transferStep = 0
		return
	}

	// Rising clock with CS still high: advance one bit.
	if b.dir1() {
		if r.command.reading {
			b.log.gameErrorf("RTC: game is writing while the active command is a read")
		}
		r.bitsRead++
		if r.bitsRead == 8 {
			r.processByte(b)
		}
		return
	}

	b.driveOutput(0x5 | (r.output() << 1))
	r.bitsRead++
	if r.bitsRead == 8 {
		r.bytesRemaining--
		if r.bytesRemaining == 0 {
			r.commandActive = false
			r.command.reading = false
		}
		r.bitsRead = 0
	}
}

// processByte handles one fully-shifted-in byte: either a command
// header or a payload byte of the command currently active.
func (r *rtcState) processByte(b *Bus) {
	r.bytesRemaining--
	if !r.commandActive {
		cmd := decodeRTCCommand(r.bits)
		if cmd.magic != rtcMagic {
			b.log.warnf("invalid RTC command byte: %#02x", r.bits)
		} else {
			r.command = cmd
			r.bytesRemaining = rtcPayloadBytes[cmd.index]
			r.commandActive = r.bytesRemaining != 0
			switch cmd.index {
			case rtcForceReset:
				r.control = 0
			case rtcDateTime, rtcTime:
				r.updateClock(b)
			case rtcForceIRQ, rtcControl:
				// no immediate side effect
			}
		}
	} else {
		switch r.command.index {
		case rtcControl:
			r.control = r.bits
		case rtcForceIRQ:
			b.log.stubf("RTC force-IRQ command is not implemented")
		case rtcForceReset, rtcDateTime, rtcTime:
			// payload consumed, never stored back
		}
	}

	r.bits = 0
	r.bitsRead = 0
	if r.bytesRemaining == 0 {
		r.commandActive = false
		r.command.reading = false
	}
}

// output selects the byte the active command is transmitting and
// returns its bit at position bitsRead (LSB-first).
func (r *rtcState) output() uint8 {
	var outputByte uint8
	switch r.command.index {
	case rtcControl:
		outputByte = r.control
	case rtcDateTime, rtcTime:
		outputByte = r.time[7-r.bytesRemaining]
	default:
		outputByte = 0
	}
	return (outputByte >> r.bitsRead) & 1
}

// updateClock latches wall-clock time (or the supplied host time
// source) into the BCD time array.
func (r *rtcState) updateClock(b *Bus) {
	var unixTime int64
	if b.timeSource != nil {
		b.timeSource.Sample()
		unixTime = b.timeSource.UnixTime()
	} else {
		unixTime = time.Now().Unix()
	}

	t := time.Unix(unixTime, 0).Local()
	r.time[0] = bcd(uint8(t.Year() - 2000))
	r.time[1] = bcd(uint8(t.Month()))
	r.time[2] = bcd(uint8(t.Day()))
	r.time[3] = bcd(uint8(t.Weekday()))

	hour := t.Hour()
	if !r.hour24() {
		hour %= 12
	}
	r.time[4] = bcd(uint8(hour))
	r.time[5] = bcd(uint8(t.Minute()))
	r.time[6] = bcd(uint8(t.Second()))
}
