// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/siemens/mxsift/mxcheck"

	"github.com/spf13/cobra"
)

var (
	goodPath        *string
	badPath         *string
	workerNumber    *uint
	maxInFlight     *uint
	dnsTimeout      *time.Duration
	progressEvery   *uint
	skipDomains     *[]string
	nameserver      *string
	emailColumn     *uint
	spinnerInterval *time.Duration
	debug           *bool
)

func newRootCmd() (rootCmd *cobra.Command) {
	rootCmd = &cobra.Command{
		Use:     "mxsift [flags] emails.csv",
		Short:   "mxsift splits an email contact list into deliverable and undeliverable rows",
		Version: "0.9",
		Args:    cobra.ExactArgs(1),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if *workerNumber < 1 || *workerNumber > 1000 {
				return fmt.Errorf("--workers out of range [1..1000]")
			}
			if *maxInFlight < *workerNumber {
				return fmt.Errorf("--in-flight must be at least --workers")
			}
			if *dnsTimeout < 100*time.Millisecond {
				return fmt.Errorf("--timeout must be at least 100ms")
			}
			if *progressEvery < 1 {
				return fmt.Errorf("--progress must be at least 1 row")
			}
			if *spinnerInterval < 10*time.Millisecond {
				return fmt.Errorf("--spinner must be at least 10ms")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return SiftAndReport(context.Background(), args[0])
		},
	}
	// Sets up the flags.
	goodPath = rootCmd.PersistentFlags().String(
		"good", "", "path of the \"good\" output CSV (default \"<input>_good.csv\")")
	badPath = rootCmd.PersistentFlags().String(
		"bad", "", "path of the \"bad\" output CSV (default \"<input>_bad.csv\")")
	workerNumber = rootCmd.PersistentFlags().Uint(
		"workers", 50, "number of concurrent checking (and thus DNS) workers")
	maxInFlight = rootCmd.PersistentFlags().Uint(
		"in-flight", 1000, "cap on submitted-but-unwritten rows, bounding memory")
	dnsTimeout = rootCmd.PersistentFlags().Duration(
		"timeout", 5*time.Second, "timeout per DNS MX lookup")
	progressEvery = rootCmd.PersistentFlags().Uint(
		"progress", 10000, "log a progress line every N processed rows")
	skipDomains = rootCmd.PersistentFlags().StringSlice(
		"skip-domain", mxcheck.DefaultSkipDomains,
		"domain(s) trusted to be deliverable without an MX lookup")
	nameserver = rootCmd.PersistentFlags().String(
		"nameserver", "", "\"address:port\" of the DNS resolver to ask (default from /etc/resolv.conf)")
	emailColumn = rootCmd.PersistentFlags().Uint(
		"email-column", 1, "zero-based index of the email address column")
	spinnerInterval = rootCmd.PersistentFlags().Duration(
		"spinner", 100*time.Millisecond, "spinner interval")
	debug = rootCmd.PersistentFlags().Bool(
		"debug", false, "enable debugging output")
	return
}
