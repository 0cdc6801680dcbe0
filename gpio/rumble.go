package gpio

// rumbleState is stateless: the motor simply mirrors pin 3 on every
// bus update.
type rumbleState struct{}

func (rumbleState) onPinsChanged(b *Bus) {
	if b.rumbleSink == nil {
		return
	}
	b.rumbleSink.Set(b.p3())
}
