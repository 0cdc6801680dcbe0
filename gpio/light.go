package gpio

// lightState is the solar sensor's counter protocol, using pins
// {CLK=0, RESET=1, CS=2, DATA-out=3}.
type lightState struct {
	counter uint8
	sample  uint8
	edge    bool
}

func (l *lightState) reset() {
	*l = lightState{sample: 0xFF}
}

func (l *lightState) onPinsChanged(b *Bus) {
	if b.p2() {
		// Chip not selected for this device.
		return
	}

	if b.p1() {
		b.log.debugf("[SOLAR] got reset")
		l.counter = 0
		if b.luminanceSource != nil {
			b.luminanceSource.Sample()
			l.sample = b.luminanceSource.ReadLuminance()
		} else {
			l.sample = 0xFF
		}
	}

	if b.p0() && l.edge {
		l.counter++
	}
	l.edge = !b.p0()

	var out uint8
	if l.counter >= l.sample {
		out = 1
	}
	b.driveOutput(out << 3)
	b.log.debugf("[SOLAR] output %d with pins %#x", l.counter, b.pinState)
}
