package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"eventhub/internal/api"
	"eventhub/internal/config"
	"eventhub/internal/feed"
	"eventhub/internal/gateway"
	"eventhub/internal/geo"
	"eventhub/internal/ics"
	appLog "eventhub/internal/log"
	"eventhub/internal/poll"
	"eventhub/internal/session"
	"eventhub/internal/token"
	"eventhub/internal/web"
)

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath string
	baseURL    string
	listen     string
	once       bool
	exportICS  string
	lat        float64
	lng        float64
}

func main() {
	appLog.Info("eventhub starting", "version", "0.1.0")

	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// CLI flags override config file values if provided.
	if flags.baseURL != "" {
		conf.BaseURL = flags.baseURL
	}
	if flags.listen != "" {
		conf.Listen = flags.listen
	}

	appLog.Info("effective config",
		"base_url", conf.BaseURL,
		"request_timeout_seconds", conf.RequestTimeoutSeconds,
		"refresh_seconds", conf.RefreshSeconds,
		"listen", conf.Listen,
		"once", flags.once,
	)

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	sess := session.New(token.NewFileStore(conf.TokenPath))
	gw := gateway.New(conf.BaseURL, conf.RequestTimeout(), gateway.WithTokenSource(sess))
	client := api.NewClient(gw)
	resolver := newResolver(conf, flags)

	if flags.once {
		if err := runOnce(ctx, client, resolver, flags.exportICS); err != nil {
			appLog.Error("run failed", err, "message", gateway.UserMessage(err))
			os.Exit(1)
		}
		appLog.Info("eventhub exiting")
		return
	}

	runServe(ctx, conf, client, resolver)
	appLog.Info("eventhub exiting")
}

func parseFlags() flagConfig {
	var cfg flagConfig

	defaultConfig := filepath.Join(os.Getenv("HOME"), ".eventhub", "config.yaml")

	flag.StringVar(&cfg.configPath, "config", defaultConfig, "Path to config file")
	flag.StringVar(&cfg.baseURL, "base-url", "", "API base URL (overrides config and environment if set)")
	flag.StringVar(&cfg.listen, "listen", "", "Preview server listen address (overrides config if set)")
	flag.BoolVar(&cfg.once, "once", false, "Fetch and print the feed once, then exit")
	flag.StringVar(&cfg.exportICS, "export-ics", "", "Write fetched events to this path as iCalendar (with -once)")
	flag.Float64Var(&cfg.lat, "lat", 0, "Latitude for the location label (with -lng)")
	flag.Float64Var(&cfg.lng, "lng", 0, "Longitude for the location label (with -lat)")

	flag.Parse()
	return cfg
}

// newResolver wires the location-label chain. Without explicit coordinates
// there is no device location on a headless client, which behaves exactly
// like a denied permission: the default label is used.
func newResolver(conf *config.Config, flags flagConfig) *geo.Resolver {
	var source geo.LocationSource
	if flags.lat != 0 || flags.lng != 0 {
		source = geo.NewStaticSource(geo.Coordinates{Lat: flags.lat, Lng: flags.lng})
	} else {
		source = geo.NewDeniedSource()
	}

	geocoders := []geo.Geocoder{}
	if conf.Geo.GoogleAPIKey != "" {
		geocoders = append(geocoders, geo.NewGoogleGeocoder(conf.Geo.GoogleAPIKey))
	}
	geocoders = append(geocoders, geo.NewNominatimGeocoder())

	return geo.NewResolver(source, conf.Geo.DefaultLabel, geocoders...)
}

// runOnce fetches everything, prints a feed summary and optionally exports
// the events as iCalendar.
func runOnce(ctx context.Context, client *api.Client, resolver *geo.Resolver, icsPath string) error {
	data, err := client.FetchHome(ctx)
	if err != nil {
		return err
	}

	snap := feed.Home(time.Now(), data.Events, data.Categories)
	printSnapshot(resolver.Label(ctx), snap)

	if icsPath != "" {
		if err := os.WriteFile(icsPath, ics.Export(data.Events), 0o644); err != nil {
			return fmt.Errorf("write ics: %w", err)
		}
		appLog.Info("ics written", "path", icsPath)
	}
	return nil
}

func printSnapshot(location string, snap feed.Snapshot) {
	fmt.Printf("Location: %s\n", location)
	if snap.Trending != nil {
		fmt.Printf("Trending: %s (rating %.1f)\n", snap.Trending.Title, snap.Trending.RatingOrZero())
	} else {
		fmt.Println("Trending: none")
	}
	for _, label := range feed.BucketOrder {
		items, ok := snap.TimeBuckets[label]
		if !ok {
			continue
		}
		fmt.Printf("%s (%d):\n", label, len(items))
		for _, ev := range items {
			fmt.Printf("  - %s (%s)\n", ev.Title, ev.Date.Format("2006-01-02"))
		}
	}
	for _, section := range snap.Sections {
		fmt.Printf("%s (%d events)\n", section.Category.DisplayName(), len(section.Events))
	}
}

// runServe runs the poll loop and the local preview server until ctx ends.
func runServe(ctx context.Context, conf *config.Config, client *api.Client, resolver *geo.Resolver) {
	server := web.NewServer(conf)
	server.SetLocation(resolver.Label(ctx))

	refresh := func(ctx context.Context, apply poll.ApplyFunc) {
		data, err := client.FetchHome(ctx)
		if err != nil {
			appLog.Warn("feed refresh failed", "message", gateway.UserMessage(err))
			return
		}
		snap := feed.Home(time.Now(), data.Events, data.Categories)
		apply(func() {
			server.SetSnapshot(snap)
		})
	}

	// Initial load, applied unconditionally (no poll generation yet).
	if data, err := client.FetchHome(ctx); err != nil {
		appLog.Warn("initial feed load failed", "message", gateway.UserMessage(err))
	} else {
		server.SetSnapshot(feed.Home(time.Now(), data.Events, data.Categories))
	}

	runner := poll.NewRunner()
	task := runner.Start(ctx, conf.RefreshInterval(), refresh)
	defer task.Stop()

	if err := server.Run(ctx); err != nil {
		appLog.Error("preview server failed", err)
	}
}
