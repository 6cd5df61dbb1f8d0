package timer

// Config controls the frames emitted before training starts.
type Config struct {
	// CountdownSeconds is the length of the pre-workout countdown.
	CountdownSeconds int
	// ShowPlaceholder emits an initial all-zero frame.
	ShowPlaceholder bool
	// ShowGoCue emits a single GO frame between countdown and training.
	ShowGoCue bool
}

// Default values for Config.
const (
	DefaultCountdownSeconds = 10
	DefaultShowPlaceholder  = true
	DefaultShowGoCue        = true
)

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		CountdownSeconds: DefaultCountdownSeconds,
		ShowPlaceholder:  DefaultShowPlaceholder,
		ShowGoCue:        DefaultShowGoCue,
	}
}

// Override is a partial Config. Nil fields leave the base value unchanged.
type Override struct {
	CountdownSeconds *int
	ShowPlaceholder  *bool
	ShowGoCue        *bool
}

// Merge returns c with every field set in o applied on top.
func (c Config) Merge(o Override) Config {
	if o.CountdownSeconds != nil {
		c.CountdownSeconds = *o.CountdownSeconds
	}
	if o.ShowPlaceholder != nil {
		c.ShowPlaceholder = *o.ShowPlaceholder
	}
	if o.ShowGoCue != nil {
		c.ShowGoCue = *o.ShowGoCue
	}
	return c
}

// Then layers next over o; fields set in next win.
func (o Override) Then(next Override) Override {
	if next.CountdownSeconds != nil {
		o.CountdownSeconds = next.CountdownSeconds
	}
	if next.ShowPlaceholder != nil {
		o.ShowPlaceholder = next.ShowPlaceholder
	}
	if next.ShowGoCue != nil {
		o.ShowGoCue = next.ShowGoCue
	}
	return o
}

// Int returns a pointer to v, for building an Override inline.
func Int(v int) *int { return &v }

// Bool returns a pointer to v, for building an Override inline.
func Bool(v bool) *bool { return &v }
