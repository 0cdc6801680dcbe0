package gpio

// Snapshot is a flat, serializable copy of everything the GPIO bus and
// its attached pin-bus devices own (§4.7). It does not include the
// tilt sensor, which lives in a separate package and memory window
// and is snapshotted independently via tilt.Snapshot.
type Snapshot struct {
	ReadWriteVisible bool
	PinState         uint8
	Direction        uint8
	Attached         Device

	RTCTransferStep   uint8
	RTCBits           uint8
	RTCBitsRead       uint8
	RTCCommandActive  bool
	RTCCommandMagic   uint8
	RTCCommandIndex   uint8
	RTCCommandReading bool
	RTCControl        uint8
	RTCTime           [7]uint8
	RTCBytesRemaining uint8

	GyroSample uint16
	GyroEdge   bool

	LightCounter uint8
	LightSample  uint8
	LightEdge    bool
}

// Save captures the bus's full observable state.
func (b *Bus) Save() Snapshot {
	return Snapshot{
		ReadWriteVisible: b.readWriteVisible,
		PinState:         b.pinState,
		Direction:        b.direction,
		Attached:         b.attached,

		RTCTransferStep:   b.rtc.transferStep,
		RTCBits:           b.rtc.bits,
		RTCBitsRead:       b.rtc.bitsRead,
		RTCCommandActive:  b.rtc.commandActive,
		RTCCommandMagic:   b.rtc.command.magic,
		RTCCommandIndex:   b.rtc.command.index,
		RTCCommandReading: b.rtc.command.reading,
		RTCControl:        b.rtc.control,
		RTCTime:           b.rtc.time,
		RTCBytesRemaining: b.rtc.bytesRemaining,

		GyroSample: b.gyro.sample,
		GyroEdge:   b.gyro.edge,

		LightCounter: b.light.counter,
		LightSample:  b.light.sample,
		LightEdge:    b.light.edge,
	}
}

// Restore overwrites every field verbatim from a prior Snapshot. The
// RTC's latched time array may be stale until the next DATETIME/TIME
// command runs against live time again — this is a known limitation
// inherited from the non-deterministic time source (§9).
func (b *Bus) Restore(s Snapshot) {
	b.readWriteVisible = s.ReadWriteVisible
	b.pinState = s.PinState
	b.direction = s.Direction
	b.attached = s.Attached

	b.rtc.transferStep = s.RTCTransferStep
	b.rtc.bits = s.RTCBits
	b.rtc.bitsRead = s.RTCBitsRead
	b.rtc.commandActive = s.RTCCommandActive
	b.rtc.command = rtcCommand{magic: s.RTCCommandMagic, index: s.RTCCommandIndex, reading: s.RTCCommandReading}
	b.rtc.control = s.RTCControl
	b.rtc.time = s.RTCTime
	b.rtc.bytesRemaining = s.RTCBytesRemaining

	b.gyro.sample = s.GyroSample
	b.gyro.edge = s.GyroEdge

	b.light.counter = s.LightCounter
	b.light.sample = s.LightSample
	b.light.edge = s.LightEdge

	b.publish()
}
