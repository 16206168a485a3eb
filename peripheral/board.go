package peripheral

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Board is the hardware the blink firmware needs. Implementations own every
// register access; nothing above this interface touches hardware directly.
type Board interface {
	// EnableClocks powers the GPIO ports used by the LED and the button.
	EnableClocks()

	// ConfigureLED makes the LED pin a push-pull output.
	ConfigureLED()

	// ConfigureButton makes the button pin an input and arms edge detection.
	ConfigureButton(pull gpio.Pull, edge gpio.Edge) error

	// ConfigureTick starts the periodic timer interrupt at rate.
	ConfigureTick(rate physic.Frequency) error

	// TickIRQ and ButtonIRQ are the interrupt sources that serve the timer
	// and the button's edge detector.
	TickIRQ() IRQ
	ButtonIRQ() IRQ

	LED() Output
	Button() Input
	ButtonLatch() EdgeLatch
}
