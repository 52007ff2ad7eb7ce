package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-sitesource/internal/logging"
	"github.com/goliatone/go-sitesource/internal/runtimeconfig"
	"github.com/goliatone/go-sitesource/internal/schema"
	"github.com/goliatone/go-sitesource/pkg/attrs"
	"github.com/goliatone/go-sitesource/pkg/interfaces"
)

// Logical roots fixed by the filesystem contract.
const (
	ContentRoot  = "content"
	LayoutsRoot  = "layouts"
	IncludesRoot = "includes"
)

// Config wires the ingestion service.
type Config struct {
	// Runtime holds the validated ingestion parameters.
	Runtime runtimeconfig.Config
	// FS optionally overrides the filesystem rooted at SourceRoot. Tests
	// inject fstest fixtures here; when nil the service opens os.DirFS.
	FS fs.FS
	// Logger receives structured ingestion logs; nil means no logging.
	Logger interfaces.Logger
}

// Service runs ingestion passes over a source tree and exposes the three
// resulting collections. The contract is configure-then-process-then-read:
// accessors are only defined after Process returns without error.
type Service struct {
	cfg       runtimeconfig.Config
	fsys      fs.FS
	absRoot   string
	textExts  map[string]struct{}
	walker    *walker
	extractor *extractor
	logger    interfaces.Logger

	content  interfaces.Collection
	layouts  interfaces.Collection
	includes interfaces.Collection
}

var _ interfaces.SourceService = (*Service)(nil)

// NewService validates the configuration and prepares the filesystem. No
// files are read until Process runs.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.Runtime.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	fsys := cfg.FS
	if fsys == nil {
		if _, err := os.Stat(cfg.Runtime.SourceRoot); err != nil {
			return nil, newFileAccessError("stat source root", cfg.Runtime.SourceRoot, err)
		}
		fsys = os.DirFS(cfg.Runtime.SourceRoot)
	}

	absRoot := cfg.Runtime.SourceRoot
	if abs, err := filepath.Abs(absRoot); err == nil {
		absRoot = abs
	}

	validator, err := schema.New(cfg.Runtime.AttributeSchema)
	if err != nil {
		return nil, goerrors.Wrap(
			fmt.Errorf("%w: %v", runtimeconfig.ErrConfiguration, err),
			goerrors.CategoryValidation, "source configuration invalid",
		).WithTextCode(runtimeconfig.ValidationTextCode)
	}

	excludes, err := compileExcludes(cfg.Runtime.Exclude)
	if err != nil {
		// Validate compiles the same patterns, so this only trips when the
		// config changed between Validate and NewService.
		return nil, goerrors.Wrap(
			fmt.Errorf("%w: %v", runtimeconfig.ErrConfiguration, err),
			goerrors.CategoryValidation, "source configuration invalid",
		).WithTextCode(runtimeconfig.ValidationTextCode)
	}

	return &Service{
		cfg:      cfg.Runtime,
		fsys:     fsys,
		absRoot:  absRoot,
		textExts: cfg.Runtime.ExtensionSet(),
		walker: &walker{
			fsys:     fsys,
			includes: cfg.Runtime.Include,
			excludes: excludes,
		},
		extractor: &extractor{
			fsys:      fsys,
			syntax:    cfg.Runtime.Syntax(),
			validator: validator,
		},
		logger: logger,
	}, nil
}

// Process runs one full ingestion pass, replacing any collections from a
// previous run. Aborting via ctx discards the partially built collections.
func (s *Service) Process(ctx context.Context) error {
	runID := uuid.NewString()
	logger := logging.WithItemContext(s.logger, "", "", runID)

	s.content = interfaces.Collection{}
	s.layouts = interfaces.Collection{}
	s.includes = interfaces.Collection{}

	passes := []struct {
		root string
		role interfaces.Role
		into interfaces.Collection
		opts walkOptions
	}{
		{ContentRoot, interfaces.RoleContent, s.content, walkOptions{skipSidecars: true}},
		{LayoutsRoot, interfaces.RoleLayout, s.layouts, walkOptions{}},
		{IncludesRoot, interfaces.RoleInclude, s.includes, walkOptions{}},
	}

	started := time.Now()
	for _, pass := range passes {
		files, err := s.walker.walkRoot(ctx, pass.root, pass.opts)
		if err != nil {
			return err
		}
		for _, rel := range files {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := s.buildItem(pass.role, pass.root, rel)
			if err != nil {
				return err
			}
			if pass.into.Put(item) {
				logging.WithItemContext(logger, item.ID, string(pass.role), "").
					Debug("item replaced by later write")
			}
		}
	}

	logger.Info("source ingestion complete",
		"content", len(s.content),
		"layouts", len(s.layouts),
		"includes", len(s.includes),
		"elapsed", time.Since(started).String())
	return nil
}

// Items returns the content collection assembled by the last pass.
func (s *Service) Items() interfaces.Collection { return s.content }

// Layouts returns the layout collection assembled by the last pass.
func (s *Service) Layouts() interfaces.Collection { return s.layouts }

// Includes returns the include collection assembled by the last pass.
func (s *Service) Includes() interfaces.Collection { return s.includes }

func (s *Service) buildItem(role interfaces.Role, root, rel string) (*interfaces.Item, error) {
	full := path.Join(root, rel)

	info, err := fs.Stat(s.fsys, full)
	if err != nil {
		return nil, newFileAccessError("stat", full, err)
	}

	ext := runtimeconfig.NormalizeExtension(path.Ext(rel))
	_, text := s.textExts[ext]

	item := &interfaces.Item{
		ID:           rel,
		Role:         role,
		Binary:       !text,
		RelativePath: rel,
		Attributes:   attrs.NewMap(),
	}

	if item.Binary {
		// Binary payloads are never loaded; downstream stages stream them
		// from the source path instead.
		item.SourcePath = filepath.Join(s.absRoot, filepath.FromSlash(full))
	} else {
		raw, err := fs.ReadFile(s.fsys, full)
		if err != nil {
			return nil, newFileAccessError("read", full, err)
		}
		item.Raw = raw
		item.Body = raw

		if role != interfaces.RoleInclude {
			doc, body, err := s.extractor.extract(full, raw, role == interfaces.RoleContent)
			if err != nil {
				return nil, err
			}
			item.Attributes = doc
			item.Body = body
		}
	}

	if role != interfaces.RoleInclude {
		applyNamingConvention(item.Attributes, path.Base(rel))
		if role == interfaces.RoleContent {
			deriveCategories(item.Attributes, rel)
		}
	}

	item.Attributes.Set(interfaces.AttrMTime, attrs.String(info.ModTime().UTC().Format(time.RFC3339)))
	item.Attributes.Set(interfaces.AttrFilename, attrs.String(path.Base(rel)))
	item.Attributes.Set(interfaces.AttrExtension, attrs.String(ext))

	return item, nil
}
