package gpio

// gyroNeutral centers the compressed 16-bit gyro sample on its
// neutral (not-rotating) position so the shifted-out value never goes
// negative.
const gyroNeutral = 0x6C0

// gyroState is the gyroscope's edge-triggered bit-shift readout,
// using pins {CS=0 latch, CLK=1 shift clock, DATA-out=2}.
type gyroState struct {
	sample uint16
	edge   bool
}

func (g *gyroState) reset() {
	*g = gyroState{}
}

func (g *gyroState) onPinsChanged(b *Bus) {
	if b.rotationSource == nil {
		return
	}

	if b.p0() {
		b.rotationSource.Sample()
		if z, ok := b.rotationSource.ReadGyroZ(); ok {
			g.sample = uint16((z >> 21) + gyroNeutral)
		}
	}

	if g.edge && !b.p1() {
		bit := uint8(g.sample>>15) & 1
		g.sample <<= 1
		b.driveOutput(bit << 2)
	}

	g.edge = b.p1()
}
