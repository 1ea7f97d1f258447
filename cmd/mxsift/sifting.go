// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/siemens/mxsift/mxcheck"
	"github.com/siemens/mxsift/sift"
	"github.com/siemens/mxsift/types"
	"github.com/siemens/mxsift/verify"

	"github.com/gosuri/uilive"
	"github.com/miekg/dns"
)

// SiftAndReport streams the specified input CSV through the checking
// pipeline, splitting its rows into the "good" and "bad" output CSVs, while
// live-rendering progress and finally printing a summary.
func SiftAndReport(ctx context.Context, inputPath string) error {
	start := time.Now()
	// When the router bails out early on a broken output, cancelling the
	// context is what unblocks the reader and the verifier, so the run
	// terminates with a diagnostic instead of hanging on a stalled pipeline.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	infile, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("cannot open input list: %w", err)
	}
	defer infile.Close()
	reader := sift.NewReader(infile)
	header, err := reader.Header()
	if err != nil {
		return fmt.Errorf("cannot read input list: %w", err)
	}

	good, bad := outputPaths(inputPath)
	goodfile, err := os.Create(good)
	if err != nil {
		return fmt.Errorf("cannot create good output: %w", err)
	}
	defer goodfile.Close()
	badfile, err := os.Create(bad)
	if err != nil {
		return fmt.Errorf("cannot create bad output: %w", err)
	}
	defer badfile.Close()

	// Now lets put the required processing elements and their plumbing in
	// place.
	//
	//   - Reader producing records from the input CSV.
	//   - Verifier consuming the records and checking them, producing
	//     "verdicts"; its MX lookups go through a per-domain verdict cache
	//     backed by a pool of DNS workers.
	//   - Router consuming these verdicts into the good and bad CSVs.
	//
	// Rendering is done on the tally fed by the router.
	resolverAddr := *nameserver
	if resolverAddr == "" {
		resolverAddr = mxcheck.SystemResolverAddress()
	}
	slog.Debug("DNS resolver selected", "address", resolverAddr)
	pool, err := mxcheck.New(ctx, int(*workerNumber), &dns.Client{}, resolverAddr,
		mxcheck.WithTimeout(*dnsTimeout))
	if err != nil {
		return fmt.Errorf("cannot set up DNS workers: %w", err)
	}
	defer pool.StopWait()
	cache := mxcheck.NewCache(pool,
		mxcheck.WithLookupTimeout(*dnsTimeout),
		mxcheck.WithSkipDomains(*skipDomains...))

	verifier, news := verify.New(cache,
		verify.WithWorkers(int(*workerNumber)),
		verify.WithMaxInFlight(int(*maxInFlight)),
		verify.WithEmailColumn(int(*emailColumn)))

	tally := verify.NewTally()
	router := sift.NewRouter(goodfile, badfile,
		sift.WithObserver(func(verdict types.CheckedRecord) {
			tally.Update(verdict)
			if processed := tally.Total(); processed%int(*progressEvery) == 0 {
				slog.Info("progress",
					"submitted", verifier.Submitted(), "processed", processed)
			}
		}))
	if err := router.WriteHeader(header); err != nil {
		return fmt.Errorf("cannot write output headers: %w", err)
	}

	// Fire off the rendering goroutine; it only stops after routing has
	// finished because the verdict stream has been closed. We then render a
	// final update and end rendering, signalling the end of our activities
	// via renderingDone.
	routingDone := make(chan struct{})
	renderingDone := make(chan struct{})
	go func() {
		// Dunno what uilive's background updating mode using Start() is good
		// for? It may trigger anytime with the rendering into the buffer not
		// yet complete, thus making the terminal output very flickery. So we
		// avoid Start() and instead trigger an explicit flush to the terminal
		// after having completed the rendering.
		term := uilive.New()
		renderer := newRenderer(term, inputPath, verifier, tally, start)
		defer func() {
			renderData(term, renderer)
			renderer.Stop()
			close(renderingDone)
		}()
		renderData(term, renderer)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				renderData(term, renderer)
			case <-routingDone:
				return
			}
		}
	}()

	// Finally feed the input rows into the pipeline and let the router drain
	// it; Route only returns after the last verdict has hit its output file.
	rows := make(chan types.Record, int(*workerNumber))
	streamResult := make(chan error, 1)
	go func() {
		streamResult <- reader.Stream(ctx, rows)
	}()
	go verifier.Verify(ctx, rows)
	routeErr := router.Route(ctx, news)
	cancel() // unwedges Stream and Verify in case Route failed mid-run.
	close(routingDone)
	<-renderingDone

	// A route error is the root cause, the stream then only reports the
	// cancellation; so check in this order.
	streamErr := <-streamResult
	if routeErr != nil {
		return fmt.Errorf("writing outputs failed: %w", routeErr)
	}
	if streamErr != nil {
		return fmt.Errorf("reading input list failed: %w", streamErr)
	}
	for _, outfile := range []*os.File{goodfile, badfile} {
		if err := outfile.Close(); err != nil {
			return fmt.Errorf("closing output failed: %w", err)
		}
	}

	fmt.Println("Done.")
	fmt.Printf(" Input:  %s\n", inputPath)
	fmt.Printf(" Good:   %s   (passed both checks)\n", good)
	fmt.Printf(" Bad:    %s   (invalid syntax, invalid domain, or errors)\n", bad)
	fmt.Printf(" Submitted rows: %d, Processed rows: %d\n",
		verifier.Submitted(), verifier.Processed())
	fmt.Printf(" Time elapsed: %.1fs\n", time.Since(start).Seconds())
	fmt.Printf(" Domain cache size: %d\n", cache.Len())
	return nil
}

// outputPaths returns the good and bad output CSV paths, deriving defaults
// next to the input path unless overridden on the command line.
func outputPaths(inputPath string) (good string, bad string) {
	good, bad = *goodPath, *badPath
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(inputPath, ext)
	if ext == "" {
		ext = ".csv"
	}
	if good == "" {
		good = stem + "_good" + ext
	}
	if bad == "" {
		bad = stem + "_bad" + ext
	}
	return
}

// renderData gets the current progress data and then renders (and flushes) it
// to the terminal.
func renderData(term *uilive.Writer, r *renderer) {
	r.Render()
	term.Flush()
}
