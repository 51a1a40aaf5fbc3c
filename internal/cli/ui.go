// Package cli renders the results of the ratenum command: value lists in
// text, JSON or YAML, single index reports, comparison progress and shell
// completion scripts.
package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/ratenum/internal/rationals"
)

const (
	// ProgressRefreshRate is how often the spinner line is redrawn.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// FormatExecutionDuration formats d with a unit suited to its magnitude.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// Spinner abstracts the terminal spinner so DisplayProgress can be tested.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState tracks the progress of several concurrent skips, one slot
// per sequence.
type ProgressState struct {
	progresses   []float64
	numSequences int
}

// NewProgressState creates a state with numSequences slots.
func NewProgressState(numSequences int) *ProgressState {
	return &ProgressState{
		progresses:   make([]float64, numSequences),
		numSequences: numSequences,
	}
}

// Update records value for slot. Out-of-range slots are ignored.
func (ps *ProgressState) Update(slot int, value float64) {
	if slot >= 0 && slot < len(ps.progresses) {
		ps.progresses[slot] = value
	}
}

// CalculateAverage returns the mean progress over all slots.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numSequences == 0 {
		return 0.0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numSequences)
}

// progressBar renders progress, clamped to [0, 1], as a bar of length runes.
func progressBar(progress float64, length int) string {
	progress = min(max(progress, 0.0), 1.0)
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// DisplayProgress draws a spinner with the average progress and ETA of
// numSequences concurrent skips until progressChan is closed, then prints a
// final 100% line. It calls wg.Done when it returns.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan rationals.ProgressUpdate, numSequences int, out io.Writer) {
	defer wg.Done()
	if numSequences <= 0 {
		for range progressChan {
		}
		return
	}

	label := "Progress"
	if numSequences > 1 {
		label = "Avg progress"
	}

	state := NewProgressWithETA(numSequences)
	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	spinnerStopped := false
	defer func() {
		if !spinnerStopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				spinnerStopped = true
				fmt.Fprintf(out, "%s: %s\n", label, FormatProgressBarWithETA(1.0, time.Nanosecond, ProgressBarWidth))
				return
			}
			state.UpdateWithETA(update.Slot, update.Value)
		case <-ticker.C:
			s.UpdateSuffix(fmt.Sprintf(" %s: %s", label,
				FormatProgressBarWithETA(state.CalculateAverage(), state.GetETA(), ProgressBarWidth)))
		}
	}
}
