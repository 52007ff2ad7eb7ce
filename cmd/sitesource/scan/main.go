package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	sitesource "github.com/goliatone/go-sitesource"
	"github.com/goliatone/go-sitesource/internal/logging/gologger"
)

func main() {
	if err := runScan(os.Args[1:]); err != nil {
		log.Fatalf("sitesource scan: %v", err)
	}
}

func runScan(args []string) error {
	fs := flag.NewFlagSet("sitesource-scan", flag.ExitOnError)
	sourceRoot := fs.String("source-root", ".", "Path to the site directory holding content/, layouts/ and includes/")
	textExtensions := fs.String("text-extensions", "md,markdown,html,htm,xml,txt,css,js,json,yaml,yml", "Comma separated extensions ingested as text")
	include := fs.String("include", "", "Comma separated paths force-included in the content scan")
	exclude := fs.String("exclude", "", "Comma separated glob patterns excluded from the scan")
	syntax := fs.String("attribute-syntax", "yaml", "Structured document syntax for frontmatter and sidecars (yaml or json)")
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	logFormat := fs.String("log-format", "console", "Log format (json, console, pretty)")
	listItems := fs.Bool("list", false, "Print every ingested item id after the summary")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := sitesource.DefaultConfig()
	cfg.SourceRoot = *sourceRoot
	cfg.TextExtensions = splitList(*textExtensions)
	cfg.Include = splitList(*include)
	cfg.Exclude = splitList(*exclude)
	cfg.AttributeSyntax = *syntax
	cfg.Logging = sitesource.LoggingConfig{
		Level:  *logLevel,
		Format: *logFormat,
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	module, err := sitesource.New(cfg, sitesource.WithLoggerProvider(provider))
	if err != nil {
		return fmt.Errorf("configure module: %w", err)
	}

	svc := module.Source()
	if err := svc.Process(context.Background()); err != nil {
		return fmt.Errorf("process source tree: %w", err)
	}

	fmt.Fprintf(os.Stdout, "content: %d items, layouts: %d, includes: %d\n",
		len(svc.Items()), len(svc.Layouts()), len(svc.Includes()))

	if *listItems {
		printCollection("content", svc.Items())
		printCollection("layouts", svc.Layouts())
		printCollection("includes", svc.Includes())
	}

	return nil
}

func printCollection(label string, c sitesource.Collection) {
	ids := c.IDs()
	sort.Strings(ids)
	for _, id := range ids {
		marker := "text"
		if c[id].Binary {
			marker = "binary"
		}
		fmt.Fprintf(os.Stdout, "%s\t%s\t%s\n", label, marker, id)
	}
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
