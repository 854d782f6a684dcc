package column

// Gate is the policy that can switch every column command off, for example
// when a licence or feature flag does not allow structural layout edits.
type Gate interface {
	Locked() bool
}

// StaticGate is a Gate with a fixed answer.
type StaticGate bool

// Locked implements Gate.
func (g StaticGate) Locked() bool { return bool(g) }

// GateFunc adapts a function to a Gate.
type GateFunc func() bool

// Locked implements Gate.
func (f GateFunc) Locked() bool { return f() }
