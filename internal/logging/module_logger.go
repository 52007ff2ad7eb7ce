package logging

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-sitesource/pkg/interfaces"
)

const (
	rootModule   = "sitesource"
	sourceModule = "sitesource.source"
	attrsModule  = "sitesource.attrs"
	configModule = "sitesource.config"
)

const (
	fieldSourcePath = "source_path"
	fieldSourceRole = "role"
	fieldSourceRun  = "run_id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// SourceLogger returns the logger namespace reserved for the ingestion pass.
func SourceLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sourceModule)
}

// AttrsLogger returns the logger namespace reserved for attribute extraction.
func AttrsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, attrsModule)
}

// ConfigLogger returns the logger namespace reserved for configuration.
func ConfigLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, configModule)
}

// WithFields attaches structured fields to a logger when the implementation
// supports the optional FieldsLogger extension. Callers can pass nil or an
// empty map to skip allocation safely.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// WithItemContext enriches the provided logger with common ingestion fields
// such as file path, role, and run identifier. Empty values are ignored.
func WithItemContext(logger interfaces.Logger, path, role, run string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldSourcePath] = trimmed
	}
	if trimmed := strings.TrimSpace(role); trimmed != "" {
		fields[fieldSourceRole] = trimmed
	}
	if trimmed := strings.TrimSpace(run); trimmed != "" {
		fields[fieldSourceRun] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
