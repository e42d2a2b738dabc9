package main

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/spf13/pflag"

	"ghsearch/internal/config"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = ""

// options holds the parsed command line
type options struct {
	configPath  string
	apiURL      string
	debounce    time.Duration
	timeout     time.Duration
	logFile     string
	writeConfig bool
	showVersion bool

	flags *pflag.FlagSet
}

// parseFlags parses args (without the program name)
func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := pflag.NewFlagSet("ghsearch", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVarP(&opts.configPath, "config", "c", "", "Config file (default "+config.DefaultPath()+")")
	fs.StringVar(&opts.apiURL, "api-url", "", "GitHub API base URL")
	fs.DurationVar(&opts.debounce, "debounce", 0, "Quiet period before a search is sent (e.g. 500ms)")
	fs.DurationVar(&opts.timeout, "timeout", 0, "HTTP timeout for a search request, 0 for none")
	fs.StringVar(&opts.logFile, "log-file", "", "Log file path")
	fs.BoolVar(&opts.writeConfig, "write-config", false, "Write the effective config to the config file and exit")
	fs.BoolVarP(&opts.showVersion, "version", "v", false, "Show version information")
	fs.SortFlags = false

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ghsearch [flags]\n\n")
		fmt.Fprintf(stderr, "Interactive GitHub user search.\n\n")
		fmt.Fprintf(stderr, "Flags:\n%s", fs.FlagUsages())
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.debounce < 0 || opts.timeout < 0 {
		return nil, fmt.Errorf("durations must not be negative")
	}

	opts.flags = fs
	return opts, nil
}

// apply overrides cfg with every flag given on the command line
func (o *options) apply(cfg *config.Config) {
	if o.flags.Changed("api-url") {
		cfg.API.BaseURL = o.apiURL
	}
	if o.flags.Changed("debounce") && o.debounce > 0 {
		cfg.Search.Debounce = config.Duration(o.debounce)
	}
	if o.flags.Changed("timeout") {
		cfg.API.Timeout = config.Duration(o.timeout)
	}
	if o.flags.Changed("log-file") {
		cfg.Log.File = o.logFile
	}
}

// versionString describes this build
func versionString() string {
	v := version
	if v == "" {
		v = "dev"
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	return fmt.Sprintf("ghsearch version %s\nGo version: %s\nPlatform: %s/%s\n",
		v, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
