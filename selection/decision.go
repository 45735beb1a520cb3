package selection

//go:generate go tool github.com/dmarkham/enumer -type=Policy -trimprefix=Policy -transform=lower
//go:generate go tool github.com/dmarkham/enumer -type=StopReason -trimprefix=Reason -transform=snake

// Policy identifies the stopping rule that produced a Decision.
type Policy uint8

const (
	PolicyThreshold Policy = iota
	PolicyCount
)

// StopReason records which condition ended the scan.
type StopReason uint8

const (
	ReasonNone          StopReason = iota
	ReasonScoreExceeded            // aggregate score above the threshold
	ReasonAllPositive              // backward: every remaining feature scored > 0
	ReasonAllNegative              // forward: every candidate feature scored < 0
	ReasonExhausted                // threshold rule never fired
	ReasonCountMatched             // a record had the requested number of features
	ReasonCountFallback            // forward count equal to the universe size
)

// Decision is the outcome of a selection together with how it was reached.
type Decision struct {
	Features  Features
	Policy    Policy
	Direction Direction
	Reason    StopReason

	// Iteration is the index of the stopping record, or -1 when the
	// result came from an end-of-trace fallback.
	Iteration int
}

// Stopped reports whether a record in the trace triggered the stop, as
// opposed to a fallback after the whole trace was scanned.
func (d Decision) Stopped() bool {
	return d.Iteration >= 0
}
