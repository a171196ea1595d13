package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"
)

// main writes emonTx-style JSON lines to stdout, to be piped into the
// aggregator running with source.kind "reader" and source.reader.path "-".
// Statistics go to stderr so stdout carries only readings.
func main() {
	count := flag.Int("count", 100, "number of lines to write, 0 for unlimited")
	interval := flag.Duration("interval", time.Second, "delay between lines")
	malformedEvery := flag.Int("malformed-every", 0, "write a malformed line every N lines, 0 to disable")
	flag.Parse()

	out := bufio.NewWriter(os.Stdout)
	gen := &generator{malformedEvery: *malformedEvery}

	var valid, malformed int
	for i := 0; *count == 0 || i < *count; i++ {
		line, ok := gen.next()
		if ok {
			valid++
		} else {
			malformed++
		}

		if _, err := out.Write(append(line, '\n')); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: failed to write line %d: %v\n", i+1, err)
			os.Exit(1)
		}
		if err := out.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: failed to flush line %d: %v\n", i+1, err)
			os.Exit(1)
		}

		if *interval > 0 {
			time.Sleep(*interval)
		}
	}

	fmt.Fprintln(os.Stderr, "=== Statistics ===")
	fmt.Fprintf(os.Stderr, "Valid lines: %d\n", valid)
	fmt.Fprintf(os.Stderr, "Malformed lines: %d\n", malformed)
}
