package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/newhook/gbacart/gpio"
	"github.com/newhook/gbacart/peripheral"
	"github.com/newhook/gbacart/tilt"
)

// demoRotation is a deterministic stand-in for a real accelerometer;
// no ROM loader or physical sensor is in scope here, so the inspector
// needs something to drive the bus with.
type demoRotation struct {
	z, x, y int32
}

func (d *demoRotation) Sample()                  {}
func (d *demoRotation) ReadGyroZ() (int32, bool) { return d.z, true }
func (d *demoRotation) ReadTiltX() (int32, bool) { return d.x, true }
func (d *demoRotation) ReadTiltY() (int32, bool) { return d.y, true }

type demoTime struct{}

func (demoTime) Sample()         {}
func (demoTime) UnixTime() int64 { return time.Now().Unix() }

type demoLux struct {
	value uint8
}

func (d *demoLux) Sample()              {}
func (d *demoLux) ReadLuminance() uint8 { return d.value }

type demoRumble struct {
	on bool
}

func (d *demoRumble) Set(on bool) { d.on = on }

var (
	_ peripheral.RotationSource  = (*demoRotation)(nil)
	_ peripheral.TimeSource      = demoTime{}
	_ peripheral.LuminanceSource = (*demoLux)(nil)
	_ peripheral.RumbleSink      = (*demoRumble)(nil)
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	changed   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}

	titleStyle = lipgloss.NewStyle().Foreground(subtle).Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(1).
			Width(28)

	changedStyle = lipgloss.NewStyle().Foreground(changed).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(subtle)
)

// inspector wires a gpio.Bus and a tilt.Sensor to the demo capabilities
// and tracks the previous register word so changed values can be
// highlighted, the same way monitor highlights changed CPU registers.
type inspector struct {
	bus  *gpio.Bus
	tilt *tilt.Sensor

	rotation *demoRotation
	lux      *demoLux
	rumble   *demoRumble

	lastData uint16
	width    int

	writeInput   textinput.Model
	showingWrite bool
}

func newInspector() *inspector {
	rot := &demoRotation{z: 0x2A00000, x: 0, y: 0}
	lux := &demoLux{value: 0x80}
	rum := &demoRumble{}

	bus := gpio.NewBus(gpio.RTC|gpio.Gyro|gpio.Rumble|gpio.Light, gpio.Capabilities{
		TimeSource:      demoTime{},
		RotationSource:  rot,
		RumbleSink:      rum,
		LuminanceSource: lux,
	})

	ti := textinput.New()
	ti.Placeholder = "offset value, e.g. 0 f"
	ti.CharLimit = 16
	ti.Width = 20

	return &inspector{
		bus:        bus,
		tilt:       tilt.New(rot),
		rotation:   rot,
		lux:        lux,
		rumble:     rum,
		writeInput: ti,
	}
}

func (m *inspector) Init() tea.Cmd { return nil }

func (m *inspector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if m.showingWrite {
			switch msg.Type {
			case tea.KeyEnter:
				m.applyRegisterWrite(m.writeInput.Value())
				m.showingWrite = false
				return m, nil
			case tea.KeyEsc:
				m.showingWrite = false
				return m, nil
			}
			var cmd tea.Cmd
			m.writeInput, cmd = m.writeInput.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "0", "1", "2", "3":
			m.togglePin(int(msg.String()[0] - '0'))
		case "d":
			m.bus.WriteRegister(gpio.DirectionReg, (m.currentDirection()+1)&0xF)
		case "v":
			m.bus.WriteRegister(gpio.ControlReg, 1-m.bus.ReadRegister(gpio.ControlReg))
		case "h":
			// Drive the RTC handshake (SCK=1,CS=0 then SCK=1,CS=1).
			m.bus.WriteRegister(gpio.DirectionReg, 0x7)
			m.bus.WriteRegister(gpio.DataReg, 0x1)
			m.bus.WriteRegister(gpio.DataReg, 0x5)
		case "l":
			m.lux.value++
		case "g":
			m.rotation.z += 0x100000
		case "t":
			m.tilt.WriteByte(0x8000, 0x55)
			m.tilt.WriteByte(0x8100, 0xAA)
		case "w":
			m.showingWrite = true
			m.writeInput.Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

// applyRegisterWrite parses "offset value" (both hex, no 0x prefix needed)
// and writes it through the bus, the same way a CPU store instruction
// would. Malformed input is silently ignored; there's no CPU fault path
// to route it through here.
func (m *inspector) applyRegisterWrite(raw string) {
	fields := strings.Fields(raw)
	if len(fields) != 2 {
		return
	}
	offset, err := strconv.ParseUint(fields[0], 16, 32)
	if err != nil {
		return
	}
	value, err := strconv.ParseUint(fields[1], 16, 16)
	if err != nil {
		return
	}
	m.bus.WriteRegister(uint32(offset), uint16(value))
}

func (m *inspector) togglePin(pin int) {
	bit := uint16(1) << pin
	m.bus.WriteRegister(gpio.DataReg, m.bus.ReadRegister(gpio.DataReg)^bit)
}

func (m *inspector) currentDirection() uint16 {
	return m.bus.ReadRegister(gpio.DirectionReg)
}

func bit(value uint16, n int) string {
	if value&(1<<n) != 0 {
		return "1"
	}
	return "0"
}

func (m *inspector) formatPins() string {
	data := m.bus.ReadRegister(gpio.DataReg)
	dir := m.bus.ReadRegister(gpio.DirectionReg)
	vis := m.bus.ReadRegister(gpio.ControlReg)

	line := fmt.Sprintf("pins:  %s %s %s %s", bit(data, 3), bit(data, 2), bit(data, 1), bit(data, 0))
	if data != m.lastData {
		line = changedStyle.Render(line)
	}
	m.lastData = data

	var b strings.Builder
	b.WriteString(titleStyle.Render("Pins") + "\n")
	b.WriteString(line + "\n")
	b.WriteString(fmt.Sprintf("dir:   %s %s %s %s\n", bit(dir, 3), bit(dir, 2), bit(dir, 1), bit(dir, 0)))
	b.WriteString(fmt.Sprintf("visible: %v\n", vis == 1))
	b.WriteString(helpStyle.Render("0-3 toggle  d rotate dir  v visible  w write"))
	return b.String()
}

func (m *inspector) formatRTC() string {
	snap := m.bus.Save()
	var b strings.Builder
	b.WriteString(titleStyle.Render("RTC") + "\n")
	b.WriteString(fmt.Sprintf("step:    %d\n", snap.RTCTransferStep))
	b.WriteString(fmt.Sprintf("control: %#02x\n", snap.RTCControl))
	b.WriteString(fmt.Sprintf("active:  %v\n", snap.RTCCommandActive))
	b.WriteString(fmt.Sprintf("remain:  %d\n", snap.RTCBytesRemaining))
	b.WriteString(helpStyle.Render("h drive handshake"))
	return b.String()
}

func (m *inspector) formatTilt() string {
	snap := m.tilt.Save()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Tilt") + "\n")
	b.WriteString(fmt.Sprintf("x: %#03x\n", snap.X))
	b.WriteString(fmt.Sprintf("y: %#03x\n", snap.Y))
	b.WriteString(fmt.Sprintf("unlock: %v\n", snap.Unlock))
	b.WriteString(helpStyle.Render("t unlock+sample  g bump gyro"))
	return b.String()
}

func (m *inspector) formatOthers() string {
	snap := m.bus.Save()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Light / Gyro / Rumble") + "\n")
	b.WriteString(fmt.Sprintf("light counter:  %d\n", snap.LightCounter))
	b.WriteString(fmt.Sprintf("light sample:   %d\n", snap.LightSample))
	b.WriteString(fmt.Sprintf("gyro sample:    %#04x\n", snap.GyroSample))
	b.WriteString(fmt.Sprintf("rumble on:      %v\n", m.rumble.on))
	b.WriteString(helpStyle.Render("l bump luminance"))
	return b.String()
}

func (m *inspector) View() string {
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(m.formatPins()),
		panelStyle.Render(m.formatRTC()),
		panelStyle.Render(m.formatTilt()),
		panelStyle.Render(m.formatOthers()),
	)
	footer := helpStyle.Render("q quit")
	if m.showingWrite {
		footer = "write offset value (hex), enter to apply, esc to cancel\n" + m.writeInput.View()
	}
	return row + "\n" + footer
}

func main() {
	p := tea.NewProgram(newInspector())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
	}
}
