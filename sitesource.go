package sitesource

import (
	"io/fs"

	"github.com/goliatone/go-sitesource/internal/logging"
	"github.com/goliatone/go-sitesource/internal/source"
	"github.com/goliatone/go-sitesource/pkg/interfaces"
)

// Item exports the ingested file representation.
type Item = interfaces.Item

// Collection exports the id-keyed item map built by an ingestion pass.
type Collection = interfaces.Collection

// Role classifies ingested files by the root they came from.
type Role = interfaces.Role

const (
	RoleContent = interfaces.RoleContent
	RoleLayout  = interfaces.RoleLayout
	RoleInclude = interfaces.RoleInclude
)

// SourceService exports the ingestion service contract.
type SourceService = interfaces.SourceService

// Logger exports the structured logger contract consumed by the module.
type Logger = interfaces.Logger

// LoggerProvider exports the named-logger factory contract.
type LoggerProvider = interfaces.LoggerProvider

// Option customizes module construction.
type Option func(*options)

type options struct {
	fsys     fs.FS
	provider interfaces.LoggerProvider
	logger   interfaces.Logger
}

// WithFS overrides the filesystem rooted at SourceRoot. Intended for tests
// and embedded trees; when unset the module opens the directory from disk.
func WithFS(fsys fs.FS) Option {
	return func(o *options) { o.fsys = fsys }
}

// WithLoggerProvider wires a named-logger factory; the module resolves its
// per-package loggers from it.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *options) { o.provider = provider }
}

// WithLogger sets the ingestion logger directly, bypassing provider lookup.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Module is the top level ingestion runtime façade.
type Module struct {
	service *source.Service
}

// New validates cfg and constructs the ingestion module. No files are read
// until Source().Process runs.
func New(cfg Config, opts ...Option) (*Module, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = logging.SourceLogger(o.provider)
	}

	svc, err := source.NewService(source.Config{
		Runtime: cfg,
		FS:      o.fsys,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	return &Module{service: svc}, nil
}

// Source returns the configured ingestion service.
func (m *Module) Source() SourceService {
	return m.service
}
