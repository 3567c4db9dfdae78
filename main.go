package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"git.unix.lgbt/diamondburned/binmon/binmon"
	"git.unix.lgbt/diamondburned/binmon/binmon/journal"
	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type cli struct {
	Run  runCmd  `cmd:"" default:"withargs" help:"Supervise a binary, restarting it when it exits or changes (default)."`
	Last lastCmd `cmd:"" help:"Print the newest events of a journal file."`
}

type runCmd struct {
	BinaryPath        string        `short:"b" required:"" placeholder:"PATH" env:"BINMON_BINARY" help:"Path of the binary to execute."`
	ArgumentsFilePath string        `short:"a" placeholder:"PATH" env:"BINMON_ARGS" help:"Arguments file to pass to the binary (defaults to the binary path with a .args extension)."`
	WatchInterval     time.Duration `short:"w" default:"1s" env:"BINMON_INTERVAL" help:"Interval between checks of the binary."`
	Journal           string        `short:"j" placeholder:"PATH" env:"BINMON_JOURNAL" help:"Also append events as JSON lines to this file."`
	MetricsListen     string        `placeholder:"ADDR" env:"BINMON_METRICS_LISTEN" help:"Serve Prometheus metrics on this address."`
}

type lastCmd struct {
	Journal string `arg:"" type:"existingfile" help:"Journal file written with --journal."`
	Count   int    `short:"n" default:"10" help:"Number of events to print."`
}

func main() {
	var params cli
	ctx := kong.Parse(&params,
		kong.Name("binmon"),
		kong.Description("Restart a binary whenever it is rebuilt."),
		kong.UsageOnError(),
	)

	if err := ctx.Run(); err != nil {
		log.Fatalln(err)
	}
}

func (c *runCmd) Run() error {
	target, err := binmon.NewTarget(c.BinaryPath, c.ArgumentsFilePath, c.WatchInterval)
	if err != nil {
		return errors.Wrap(err, "invalid binary path")
	}

	journaler := binmon.Journaler(journal.NewHumanWriter(os.Stderr))

	if c.Journal != "" {
		j, err := journal.NewFileLockJournaler(c.Journal)
		if err != nil {
			if errors.Is(err, journal.ErrLockedElsewhere) {
				return errors.New("another binmon is already writing to " + c.Journal)
			}
			return errors.Wrap(err, "failed to open journal")
		}
		defer j.Close()

		journaler = journal.MultiWriter(j, journaler)
	}

	if c.MetricsListen != "" {
		go serveMetrics(c.MetricsListen, journaler)
	}

	s := binmon.NewSupervisor(target, journaler)
	return s.Run(context.Background())
}

func serveMetrics(addr string, j binmon.Journaler) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	if err := http.ListenAndServe(addr, mux); err != nil {
		j.Write(binmon.EventWarning{
			Component: "metrics",
			Error:     "HTTP serve: " + err.Error(),
		})
	}
}

func (c *lastCmd) Run() error {
	entries, err := journal.LastEntries(c.Journal, c.Count)
	if err != nil {
		return errors.Wrap(err, "failed to read journal")
	}

	for _, entry := range entries {
		fmt.Println(entry.Time.Format(time.RFC3339), journal.Format(entry.Data))
	}

	return nil
}
