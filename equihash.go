package equihash

// Checkpoint identifies a point in a solver run at which the cancellation
// probe is consulted.
type Checkpoint int

const (
	ListGeneration Checkpoint = iota
	ListSorting
	ListColliding
	RoundEnd
	FinalSorting
	FinalColliding
	PartialGeneration
	PartialSorting
	PartialSubtreeEnd
	PartialIndexEnd
	PartialEnd
)

var checkpointNames = [...]string{
	"ListGeneration",
	"ListSorting",
	"ListColliding",
	"RoundEnd",
	"FinalSorting",
	"FinalColliding",
	"PartialGeneration",
	"PartialSorting",
	"PartialSubtreeEnd",
	"PartialIndexEnd",
	"PartialEnd",
}

func (c Checkpoint) String() string {
	if c < 0 || int(c) >= len(checkpointNames) {
		return "Unknown"
	}
	return checkpointNames[c]
}

// CancelProbe is a caller-supplied predicate consulted at every Checkpoint.
// Returning true makes the solver unwind with errors.ErrCancelled. The
// probe must be pure: it is called frequently and must not block.
type CancelProbe func(Checkpoint) bool

// Equihash solves and verifies proofs for one (N, K) instance. It holds no
// per-attempt state; a single value may serve any number of sequential or
// concurrent invocations, each with its own seeded State.
type Equihash struct {
	params Params
	logf   func(format string, args ...any)
}

// Option configures an Equihash instance.
type Option func(*Equihash)

// WithLogf installs a printf-style hook for operational progress and
// verifier diagnostics. The output has no semantic effect. By default
// nothing is emitted.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(e *Equihash) {
		e.logf = logf
	}
}

// New returns a solver/verifier for params.
func New(params Params, opts ...Option) (*Equihash, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	e := &Equihash{
		params: params,
		logf:   func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Params returns the instance parameters.
func (e *Equihash) Params() Params { return e.params }

func (e *Equihash) cancelled(probe CancelProbe, c Checkpoint) bool {
	return probe != nil && probe(c)
}
