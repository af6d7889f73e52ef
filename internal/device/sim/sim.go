package sim

import (
	"math"
	"sync"

	"github.com/oshokin/briefcase-alarm/internal/domain/briefcase"
)

// buttonLine is the simulated state of one joystick contact.
type buttonLine struct {
	// held is true while the button is held down explicitly.
	held bool
	// down is true between the two reads of a tap.
	down bool
	// taps counts queued press/release cycles.
	taps int
}

// ButtonPad is a simulated five-way joystick.
type ButtonPad struct {
	mu    sync.Mutex
	lines [briefcase.ButtonCount]buttonLine
}

// NewButtonPad returns a pad with every button released.
func NewButtonPad() *ButtonPad {
	return new(ButtonPad)
}

// Tap queues one press/release cycle: the next read reports the button held,
// the read after it reports it released.
func (p *ButtonPad) Tap(b briefcase.Button) {
	if !b.Valid() {
		return
	}

	p.mu.Lock()
	p.lines[b].taps++
	p.mu.Unlock()
}

// Hold keeps b pressed until Release.
func (p *ButtonPad) Hold(b briefcase.Button) {
	if !b.Valid() {
		return
	}

	p.mu.Lock()
	p.lines[b].held = true
	p.mu.Unlock()
}

// Release lets go of a held button.
func (p *ButtonPad) Release(b briefcase.Button) {
	if !b.Valid() {
		return
	}

	p.mu.Lock()
	p.lines[b].held = false
	p.mu.Unlock()
}

// Read returns the raw level of b.
func (p *ButtonPad) Read(b briefcase.Button) bool {
	if !b.Valid() {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	line := &p.lines[b]

	switch {
	case line.held:
		return true
	case line.down:
		line.down = false
		return false
	case line.taps > 0:
		line.taps--
		line.down = true

		return true
	default:
		return false
	}
}

// Dial is a simulated potentiometer.
type Dial struct {
	mu    sync.Mutex
	value float64
}

// NewDial returns a dial at the given normalized position.
func NewDial(value float64) *Dial {
	d := new(Dial)
	d.Set(value)

	return d
}

// Set moves the dial, clamping to [0, 1]. NaN is ignored.
func (d *Dial) Set(value float64) {
	if math.IsNaN(value) {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.value = min(max(value, 0), 1)
}

// ReadNormalized returns the dial position in [0, 1].
func (d *Dial) ReadNormalized() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.value
}

// Accelerometer is a simulated triaxial motion sensor.
type Accelerometer struct {
	mu         sync.Mutex
	axes       briefcase.Axes
	measuring  bool
	calibrated bool
	// failCalibration makes Calibrate report failure.
	failCalibration bool
}

// NewAccelerometer returns a sensor at rest.
func NewAccelerometer() *Accelerometer {
	return new(Accelerometer)
}

// FailCalibration makes subsequent Calibrate calls fail.
func (a *Accelerometer) FailCalibration() {
	a.mu.Lock()
	a.failCalibration = true
	a.mu.Unlock()
}

// Init switches the sensor into measurement mode.
func (a *Accelerometer) Init() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.measuring = true

	return true
}

// Calibrate zeroes the sensor; it fails before Init.
func (a *Accelerometer) Calibrate() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.calibrated = a.measuring && !a.failCalibration

	return a.calibrated
}

// Set replaces the current sample.
func (a *Accelerometer) Set(axes briefcase.Axes) {
	a.mu.Lock()
	a.axes = axes
	a.mu.Unlock()
}

// ReadAxes returns the current sample; an uninitialised sensor reads zero.
func (a *Accelerometer) ReadAxes() briefcase.Axes {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.measuring {
		return briefcase.Axes{}
	}

	return a.axes
}

// LEDCount is the number of alarm LEDs.
const LEDCount = 4

// LEDBank is a set of alarm LEDs toggled together.
type LEDBank struct {
	mu      sync.Mutex
	leds    [LEDCount]bool
	toggles int
}

// NewLEDBank returns a bank with every LED off.
func NewLEDBank() *LEDBank {
	return new(LEDBank)
}

// Toggle flips every LED.
func (l *LEDBank) Toggle() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.leds {
		l.leds[i] = !l.leds[i]
	}

	l.toggles++
}

// State returns the LED levels.
func (l *LEDBank) State() [LEDCount]bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.leds
}

// Toggles returns how many times the bank has been toggled.
func (l *LEDBank) Toggles() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.toggles
}

// Hardware bundles one of each simulated device.
type Hardware struct {
	Buttons       *ButtonPad
	Dial          *Dial
	Accelerometer *Accelerometer
	LEDs          *LEDBank
}

// NewHardware returns a fresh simulated board with the dial at the given position.
func NewHardware(dial float64) *Hardware {
	return &Hardware{
		Buttons:       NewButtonPad(),
		Dial:          NewDial(dial),
		Accelerometer: NewAccelerometer(),
		LEDs:          NewLEDBank(),
	}
}
