package validation

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/sat-clique/garrett/gates"
)

// A Verdict is the outcome of validating a gate structure. It is distinct
// from the error channel: invalid gates yield Invalid, while solver faults
// and malformed structures surface as errors.
type Verdict int

const (
	Invalid Verdict = iota
	Valid
)

func (v Verdict) String() string {
	if v == Valid {
		return "valid"
	}
	return "invalid"
}

// A ProgressFunc receives the cumulative number of gates verified so far.
// The values passed to it are non-decreasing and end at the total gate
// count.
type ProgressFunc func(verified int)

// pollInterval is the cadence at which worker counters are aggregated and
// pushed to the progress sink.
const pollInterval = 100 * time.Millisecond

type config struct {
	diag io.Writer
}

// An Option adjusts how Validate runs.
type Option func(*config)

// WithDiagnostics redirects invalid-gate diagnostics, which go to standard
// output by default.
func WithDiagnostics(w io.Writer) Option {
	return func(c *config) { c.diag = w }
}

// A worker validates one contiguous chunk of the gate sequence. Its
// counter is written by the worker alone and read by the polling driver;
// only monotonic advance matters, so plain atomic loads and adds suffice.
type worker struct {
	id    int
	chunk []gates.Gate
	done  atomic.Int64
	valid bool
}

func (w *worker) run(pol gates.PolarityMap, diag io.Writer, diagMu *sync.Mutex) error {
	logrus.Debugf("worker %d: validating %d gates", w.id, len(w.chunk))
	for i := range w.chunk {
		g := &w.chunk[i]
		ok, err := checkGate(g, pol)
		if err != nil {
			return err
		}
		w.done.Add(1)
		if !ok {
			diagMu.Lock()
			writeInvalidGate(diag, g)
			diagMu.Unlock()
			logrus.Debugf("worker %d: gate %s is invalid", w.id, g.Output)
			return nil
		}
	}
	w.valid = true
	logrus.Debugf("worker %d: chunk valid", w.id)
	return nil
}

// Validate checks every gate of the structure and returns Valid iff all of
// them encode functional relations. The gate sequence is split into
// contiguous chunks of ⌈gates/numWorkers⌉ gates (so at most numWorkers
// chunks) validated concurrently; each worker uses a fresh SAT session per
// gate. The progress sink, if non-nil, is invoked at
// a fixed cadence with the aggregated count of verified gates and once
// more with the total on completion.
//
// A worker stops at the first invalid gate in its chunk after emitting a
// diagnostic, but an invalid gate never cancels the other workers: the
// tool exists to diagnose, and reporting several invalid gates beats
// racing cancellations against solver calls. Solver faults and malformed
// structures are returned as errors, not verdicts.
func Validate(structure *gates.Structure, numWorkers int, progress ProgressFunc, opts ...Option) (Verdict, error) {
	if numWorkers < 1 {
		return Invalid, errors.Errorf("worker count must be at least 1, got %d", numWorkers)
	}
	if err := structure.Check(); err != nil {
		return Invalid, errors.Wrap(err, "malformed gate structure")
	}
	cfg := config{diag: os.Stdout}
	for _, opt := range opts {
		opt(&cfg)
	}
	if progress == nil {
		progress = func(int) {}
	}

	pol := gates.InputPolarities(structure)

	n := len(structure.Gates)
	chunkSize := (n + numWorkers - 1) / numWorkers
	if chunkSize < 1 {
		chunkSize = 1
	}
	var workers []*worker
	for lo := 0; lo < n; lo += chunkSize {
		hi := lo + chunkSize
		if hi > n {
			hi = n
		}
		workers = append(workers, &worker{
			id:    len(workers),
			chunk: structure.Gates[lo:hi],
		})
	}

	var diagMu sync.Mutex
	var group errgroup.Group
	for _, w := range workers {
		w := w
		group.Go(func() error {
			return w.run(pol, cfg.diag, &diagMu)
		})
	}
	finished := make(chan error, 1)
	go func() { finished <- group.Wait() }()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			total := 0
			for _, w := range workers {
				total += int(w.done.Load())
			}
			progress(total)
		case err := <-finished:
			if err != nil {
				return Invalid, err
			}
			progress(n)
			for _, w := range workers {
				if !w.valid {
					return Invalid, nil
				}
			}
			return Valid, nil
		}
	}
}
