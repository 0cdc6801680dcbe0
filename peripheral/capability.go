// Package peripheral declares the host capabilities that cartridge
// peripherals consume. Each capability is optional; callers wire in
// whichever subset their frontend actually supports.
package peripheral

// TimeSource supplies wall-clock time to the real-time clock device.
// Sample should be called once before UnixTime to let implementations
// that cache the time refresh it.
type TimeSource interface {
	Sample()
	UnixTime() int64
}

// RotationSource supplies gyroscope and tilt readings. A given source
// may implement only a subset of the axes; the ok return reports
// whether that axis is actually available, replacing the "check the
// function pointer before calling it" idiom of the original hardware
// model.
type RotationSource interface {
	Sample()
	ReadGyroZ() (value int32, ok bool)
	ReadTiltX() (value int32, ok bool)
	ReadTiltY() (value int32, ok bool)
}

// RumbleSink drives the cartridge's vibration motor.
type RumbleSink interface {
	Set(on bool)
}

// LuminanceSource supplies ambient light readings to the solar sensor.
type LuminanceSource interface {
	Sample()
	ReadLuminance() uint8
}
