package gpio

import (
	"log"
	"os"
)

// logger emits the four categories of diagnostic message the bus and its
// devices can produce. Category and text are the contract; the transport
// is whatever *log.Logger the caller installs.
type logger struct {
	out *log.Logger
}

func newLogger() *logger {
	return &logger{out: log.New(os.Stderr, "", log.LstdFlags)}
}

func (l *logger) debugf(format string, args ...interface{}) {
	l.out.Printf("[DEBUG] "+format, args...)
}

func (l *logger) warnf(format string, args ...interface{}) {
	l.out.Printf("[WARN] "+format, args...)
}

func (l *logger) gameErrorf(format string, args ...interface{}) {
	l.out.Printf("[GAME ERROR] "+format, args...)
}

func (l *logger) stubf(format string, args ...interface{}) {
	l.out.Printf("[STUB] "+format, args...)
}

// SetLogger installs a custom *log.Logger for this bus's diagnostics.
func (b *Bus) SetLogger(l *log.Logger) {
	b.log = &logger{out: l}
}
