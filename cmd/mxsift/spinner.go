// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"sync"
	"time"
)

// spinner is a minimal braille spinner: a background ticker advances the
// phase, Spinner reports the current phase glyph. No bells, no frills.
type spinner struct {
	ticker *time.Ticker
	done   chan struct{}
	mu     sync.Mutex
	phase  int
}

// spinnerPhases are the glyphs the spinner cycles through, a single dot
// orbiting the cell.
var spinnerPhases = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// newSpinner returns a new stopped spinner; call Start to set it spinning and
// finally Stop to release its background resources.
func newSpinner() *spinner {
	return &spinner{
		done: make(chan struct{}),
	}
}

// Spinner returns the glyph for the current phase, padded for rendering
// directly in front of a progress message.
func (s *spinner) Spinner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(spinnerPhases[s.phase]) + " "
}

// advance rotates the spinner into its next phase.
func (s *spinner) advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = (s.phase + 1) % len(spinnerPhases)
}

// Start the spinner, advancing it every specified interval.
func (s *spinner) Start(interval time.Duration) {
	s.ticker = time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.advance()
			case <-s.done:
				s.ticker.Stop()
				return
			}
		}
	}()
}

// Stop the spinner and release the background resources.
func (s *spinner) Stop() {
	close(s.done)
}
