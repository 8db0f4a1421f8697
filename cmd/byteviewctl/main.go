// Command byteviewctl is a small inspection tool over the byteview package:
// it reads newline-delimited records from stdin, builds a Value for each,
// and prints each value's length, prefix and human-readable size, then logs
// the record count and total size. It does not print a value's case or the
// number of live backing buffers. It is a diagnostic aid, not a benchmarking
// harness.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kocubinski/byteview"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

var (
	valuesInspected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "byteviewctl_values_inspected_total",
		Help: "Number of records converted into byteview.Values.",
	})
	bytesReferenced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "byteviewctl_bytes_referenced_total",
		Help: "Total logical bytes across every inspected Value.",
	})
)

func main() {
	root := &cobra.Command{
		Use:   "byteviewctl",
		Short: "Inspect how byteview.Value classifies input records",
		RunE:  runInspect,
	}
	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("byteviewctl failed")
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	scanner := bufio.NewScanner(os.Stdin)
	var totalBytes uint64

	var held []byteview.Value
	defer func() {
		for i := range held {
			byteview.Release(&held[i])
		}
	}()

	for scanner.Scan() {
		line := scanner.Bytes()
		v, err := byteview.FromBytes(line)
		if err != nil {
			log.Error().Err(err).Msg("skipping record")
			continue
		}
		held = append(held, v)

		valuesInspected.Inc()
		bytesReferenced.Add(float64(v.Len()))
		totalBytes += uint64(v.Len())

		fmt.Printf("len=%d prefix=%x bytes=%s\n", v.Len(), v.Prefix(), humanize.Bytes(uint64(v.Len())))
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	log.Info().
		Int("records", len(held)).
		Str("total", humanize.Bytes(totalBytes)).
		Msg("done")
	return nil
}
