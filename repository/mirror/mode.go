package mirror

// Mode selects how a mirrored write is scheduled relative to the primary
// write.
type Mode int

const (
	// Sequential runs the tap write after the primary write succeeded.
	Sequential Mode = iota

	// Concurrent runs the tap write at the same time as the primary write
	// and awaits both.
	Concurrent
)

// String provides a string representation of Mode for logging and debugging.
func (m Mode) String() string {
	switch m {
	case Sequential:
		return "sequential"
	case Concurrent:
		return "concurrent"
	default:
		return "unknown"
	}
}
