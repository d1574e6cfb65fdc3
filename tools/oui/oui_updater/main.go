// Command oui_updater downloads a vendor registry and writes the
// "XX:XX:XX Vendor" file wdash loads with -oui.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/lcalzada-xor/wdash/internal/adapters/fingerprint"
)

const (
	// IEEE OUI registry URL
	ieeeOUIURL = "https://standards-oui.ieee.org/oui/oui.csv"

	// Wireshark OUI database (alternative source)
	wiresharkOUIURL = "https://www.wireshark.org/download/automated/data/manuf"
)

func main() {
	out := flag.String("out", "data/oui.txt", "Output OUI file")
	source := flag.String("source", "ieee", "Source: ieee or wireshark")
	short := flag.Bool("short", true, "Abbreviate vendor names")
	force := flag.Bool("force", false, "Force update even if recent")
	check := flag.String("check", "", "Resolve this MAC against the written file")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(*out, *source, *short, *force, *check); err != nil {
		slog.Error("OUI update failed", "error", err)
		os.Exit(1)
	}
}

func run(out, source string, short, force bool, check string) error {
	if info, err := os.Stat(out); err == nil && !force && time.Since(info.ModTime()) < 30*24*time.Hour {
		slog.Info("OUI file is recent (< 30 days). Use -force to update anyway.", "path", out)
		return lookup(out, check)
	}

	var (
		url   string
		parse func(io.Reader, bool) ([]fingerprint.OUIEntry, error)
	)
	switch source {
	case "ieee":
		url, parse = ieeeOUIURL, fingerprint.ParseIEEECSV
	case "wireshark":
		url, parse = wiresharkOUIURL, fingerprint.ParseWiresharkManuf
	default:
		return fmt.Errorf("unknown source %q", source)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	slog.Info("Downloading OUI registry", "url", url)
	body, err := download(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()

	entries, err := parse(body, short)
	if err != nil {
		return err
	}
	slog.Info("Parsed OUI registry", "entries", len(entries))

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	tmp := out + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	n, err := fingerprint.WriteOUIFile(f, entries)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, out); err != nil {
		return err
	}

	slog.Info("Update complete", "path", out, "prefixes", n)
	return lookup(out, check)
}

func download(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func lookup(path, mac string) error {
	if mac == "" {
		return nil
	}
	resolver, err := fingerprint.NewDefaultResolver(path, 16)
	if err != nil {
		return err
	}
	defer resolver.Close()
	fmt.Printf("%s %s\n", mac, resolver.ResolveVendor(context.Background(), mac))
	return nil
}
