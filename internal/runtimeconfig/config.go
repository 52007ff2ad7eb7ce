package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gobwas/glob"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-sitesource/pkg/attrs"
)

// ErrConfiguration is the umbrella sentinel for every configuration failure.
// Callers can match it with errors.Is without caring which rule tripped.
var ErrConfiguration = errors.New("sitesource config: invalid configuration")

// ValidationTextCode tags every configuration failure raised by this module.
const ValidationTextCode = "SOURCE_CONFIG_INVALID"

// Config aggregates the ingestion parameters consumed by the source service.
// Fields intentionally use simple types so host settings loaders can populate
// them from any format.
type Config struct {
	// SourceRoot is the directory containing the content/, layouts/ and
	// includes/ roots. Required.
	SourceRoot string
	// Include lists paths (relative to the content root) merged into the
	// scan: directories are walked, plain files are added individually.
	Include []string
	// Exclude lists glob patterns; enumerated files matching one are dropped.
	// A bare directory entry excludes everything beneath it.
	Exclude []string
	// TextExtensions is the set of extensions read as text; every other
	// extension is treated as binary. Required, non-empty. Entries compare
	// lower-cased with or without a leading dot.
	TextExtensions []string
	// AttributeSyntax selects the structured document syntax ("yaml" or
	// "json") for sidecar files and frontmatter blocks. Defaults to yaml.
	AttributeSyntax string
	// AttributeSchema optionally holds a JSON schema applied to every parsed
	// attribute document.
	AttributeSchema map[string]any
	// Logging configures the optional go-logger provider used by the CLI and
	// host bootstrap helpers.
	Logging LoggingConfig
}

// LoggingConfig captures provider options for runtime logging.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns a config with the library defaults applied. The
// required fields (SourceRoot, TextExtensions) stay empty so validation still
// forces callers to provide them.
func DefaultConfig() Config {
	return Config{
		AttributeSyntax: string(attrs.SyntaxYAML),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// ConfigurationError carries the per-field validation failures behind
// ErrConfiguration.
type ConfigurationError struct {
	Fields validation.Errors
}

func (e *ConfigurationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrConfiguration.Error()
	}
	return fmt.Sprintf("%s: %s", ErrConfiguration.Error(), e.Fields.Error())
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// Validate checks the config before any filesystem access happens. Failures
// are wrapped as validation-category errors carrying the per-field rules.
func (c Config) Validate() error {
	errs := validation.Errors{}

	if strings.TrimSpace(c.SourceRoot) == "" {
		errs["source_root"] = validation.NewError(
			"sitesource.config.source_root_required",
			"source_root must point at the site directory")
	}

	if len(normalizeExtensions(c.TextExtensions)) == 0 {
		errs["text_extensions"] = validation.NewError(
			"sitesource.config.text_extensions_required",
			"text_extensions must list at least one extension")
	}

	if _, err := attrs.ParseSyntax(c.AttributeSyntax); err != nil {
		errs["attribute_syntax"] = validation.NewError(
			"sitesource.config.attribute_syntax_invalid",
			fmt.Sprintf("attribute_syntax must be yaml or json, got %q", c.AttributeSyntax))
	}

	for _, pattern := range c.Exclude {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs["exclude"] = validation.NewError(
				"sitesource.config.exclude_pattern_invalid",
				fmt.Sprintf("exclude pattern %q does not compile: %v", pattern, err))
			break
		}
	}

	if len(errs) > 0 {
		return goerrors.Wrap(&ConfigurationError{Fields: errs}, goerrors.CategoryValidation,
			"source configuration invalid").WithTextCode(ValidationTextCode)
	}
	return nil
}

// IsConfigurationError reports whether err originated from config validation.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// Syntax returns the parsed attribute syntax. Call after Validate; an
// unrecognized value falls back to YAML.
func (c Config) Syntax() attrs.Syntax {
	syntax, err := attrs.ParseSyntax(c.AttributeSyntax)
	if err != nil {
		return attrs.SyntaxYAML
	}
	return syntax
}

// ExtensionSet returns the normalized text-extension lookup set: lower-cased,
// without a leading dot.
func (c Config) ExtensionSet() map[string]struct{} {
	return normalizeExtensions(c.TextExtensions)
}

// NormalizeExtension lower-cases ext and strips a leading dot so it can be
// compared against ExtensionSet entries.
func NormalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

func normalizeExtensions(exts []string) map[string]struct{} {
	out := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		normalized := NormalizeExtension(ext)
		if normalized == "" {
			continue
		}
		out[normalized] = struct{}{}
	}
	return out
}
