package interview

// Countdown is the per-question timer. It is advanced by whole seconds,
// never drops below zero and reports expiry once per arming.
type Countdown struct {
	remaining int
	fired     bool
}

func NewCountdown(seconds int) Countdown {
	c := Countdown{}
	c.Reset(seconds)
	return c
}

// Tick consumes one second and returns true the first time the countdown
// sits at zero after being armed.
func (c *Countdown) Tick() bool {
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 && !c.fired {
		c.fired = true
		return true
	}
	return false
}

// Reset re-arms the countdown.
func (c *Countdown) Reset(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	c.remaining = seconds
	c.fired = false
}

func (c *Countdown) Remaining() int {
	return c.remaining
}

func (c *Countdown) Expired() bool {
	return c.fired
}
