// mdcache-inspect polls a running service's mdcache debug endpoint and
// prints its occupancy and per-kind counters, either once or on an
// interval.
//
// The target Go service is expected to expose:
//   GET /debug/mdcache/snapshot – JSON payload from Cache.Occupancy/Stats.
//
// The snapshot object is decoded into map[string]any rather than a shared
// struct, so the CLI and the library it inspects can drift independently.
//
// ---------------------------------------------------------------
// © 2025 mdcache authors. MIT License.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"
)

var version = "dev"

func main() {
	opts := parseFlags()

	if opts.version {
		fmt.Println(version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	if opts.watch {
		ticker := time.NewTicker(opts.interval)
		defer ticker.Stop()
		for {
			if err := dumpOnce(ctx, opts); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
			}
			select {
			case <-ticker.C:
				continue
			case <-ctx.Done():
				return
			}
		}
	}

	if err := dumpOnce(ctx, opts); err != nil {
		fatal(err)
	}
}

type options struct {
	target   string
	json     bool
	watch    bool
	interval time.Duration
	version  bool
}

func parseFlags() *options {
	opts := &options{}
	flag.StringVar(&opts.target, "target", "http://localhost:6060", "base URL of the service exposing /debug/mdcache/snapshot")
	flag.BoolVar(&opts.json, "json", false, "print the raw JSON snapshot instead of a formatted table")
	flag.BoolVar(&opts.watch, "watch", false, "poll repeatedly instead of exiting after one snapshot")
	flag.DurationVar(&opts.interval, "interval", 2*time.Second, "polling interval when --watch is set")
	flag.BoolVar(&opts.version, "version", false, "print the CLI version and exit")
	flag.Parse()
	return opts
}

func dumpOnce(ctx context.Context, opts *options) error {
	snap, err := fetchSnapshot(ctx, opts.target)
	if err != nil {
		return err
	}
	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	return prettyPrint(snap)
}

func fetchSnapshot(ctx context.Context, base string) (map[string]any, error) {
	url := base + "/debug/mdcache/snapshot"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", res.Status)
	}
	var data map[string]any
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}

func prettyPrint(data map[string]any) error {
	fmt.Printf("slots:     %v/%v\n", data["slots_used"], data["slots_total"])
	fmt.Printf("protects:  %v\n", data["nprotects"])
	if stats, ok := data["stats"].(map[string]any); ok {
		fmt.Printf("hits=%v misses=%v inits=%v flushes=%v\n",
			stats["NHits"], stats["NMisses"], stats["NInits"], stats["NFlushes"])
	}
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "mdcache-inspect:", err)
	os.Exit(1)
}
