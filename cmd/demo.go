package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// demoCmd reproduces the original standalone demo helper program: it
// prints its own progress, one line per simulated second. The server
// never invokes this binary; the scheduler simulates the same output
// directly (spec §4.7). This exists only so the output format can be
// eyeballed outside a scheduled run.
var demoCmd = &cobra.Command{
	Use:   "demo [n]",
	Short: "Print standalone Demo i/N progress lines (not wired into the scheduler)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	n := 5
	if len(args) == 1 {
		if parsed, err := strconv.Atoi(args[0]); err == nil {
			n = parsed
		}
	}
	if n < 0 {
		n = 0
	}
	for i := 1; i <= n; i++ {
		time.Sleep(time.Second)
		fmt.Printf("Demo %d/%d\n", i, n)
	}
	return nil
}
