package scaffold

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/hexforge/hexforge/model"
	"github.com/hexforge/hexforge/render"
)

const (
	// DefaultGitName is the commit signature name used when git bootstrap
	// is requested without an explicit identity.
	DefaultGitName = "hexforge"

	// DefaultGitEmail is the commit signature email used when git
	// bootstrap is requested without an explicit identity.
	DefaultGitEmail = "hexforge@localhost"

	filePerm = 0o644
	dirPerm  = 0o755
)

var (
	// ErrInvalidOptions reports a misconfigured Options value.
	ErrInvalidOptions = errors.New("scaffold: invalid options")

	// ErrNilModel reports a Plan or Write call without a resolved model.
	ErrNilModel = errors.New("scaffold: nil model")
)

// Options configures a Scaffolder.
type Options struct {
	// OutputDir is the directory the project tree is written into. It is
	// created when missing. Required unless FS is set.
	OutputDir string

	// FS overrides the target filesystem. When set, the tree is written at
	// the root of FS and OutputDir is ignored. Tests use this to write
	// into an in-memory filesystem.
	FS billy.Filesystem

	// Logger receives progress output. When nil, logging is disabled.
	Logger *slog.Logger

	// InitGit initializes a git repository in the output tree and records
	// the generated files as an initial commit.
	InitGit bool

	// GitName and GitEmail form the commit signature for the initial
	// commit. Both default to the hexforge identity.
	GitName  string
	GitEmail string

	// BlueprintDigest is recorded in the generation manifest so a written
	// tree can be traced back to the exact blueprint that produced it.
	BlueprintDigest string

	// TemplateDir points at a directory of template overrides layered
	// over the embedded set. Empty or missing directories are ignored.
	TemplateDir string
}

// Validate checks that the Options carry an output location.
func (o *Options) Validate() error {
	if o.FS == nil && o.OutputDir == "" {
		return fmt.Errorf("%w: OutputDir is required", ErrInvalidOptions)
	}
	return nil
}

// applyDefaults fills in the discard logger and git identity.
func (o *Options) applyDefaults() {
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.GitName == "" {
		o.GitName = DefaultGitName
	}
	if o.GitEmail == "" {
		o.GitEmail = DefaultGitEmail
	}
}

// File is one planned output file: a slash-separated path relative to the
// project root plus the rendered body.
type File struct {
	Path    string
	Content []byte
}

// Scaffolder plans and writes generated project trees.
type Scaffolder struct {
	fs       billy.Filesystem
	renderer *render.Renderer
	logger   *slog.Logger
	opts     Options
}

// New builds a Scaffolder from opts.
func New(opts *Options) (*Scaffolder, error) {
	if opts == nil {
		opts = &Options{}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	cfg := *opts
	cfg.applyDefaults()

	renderer, err := render.NewWithOverrides(cfg.TemplateDir)
	if err != nil {
		return nil, fmt.Errorf("scaffold: %w", err)
	}

	fsys := cfg.FS
	if fsys == nil {
		fsys = osfs.New(cfg.OutputDir)
	}

	return &Scaffolder{
		fs:       fsys,
		renderer: renderer,
		logger:   cfg.Logger,
		opts:     cfg,
	}, nil
}

// Plan renders every file of the project tree for the resolved model and
// returns them in write order. Nothing is written. The order is
// deterministic for a fixed model: module files first, then each
// aggregate's entities, value objects and components in declaration
// order, then the module-wide enums.
func (s *Scaffolder) Plan(m *model.ResolvedModel) ([]File, error) {
	if m == nil {
		return nil, ErrNilModel
	}

	pkgs := render.PackagesFor(m.BasePackage)
	module := render.NewModuleData(m)

	var files []File
	add := func(dir, name, templateID string, data any) error {
		body, err := s.renderer.Render(templateID, data)
		if err != nil {
			return fmt.Errorf("scaffold: render %s: %w", name, err)
		}
		files = append(files, File{Path: path.Join(dir, name), Content: []byte(body)})
		return nil
	}

	if err := add(".", "pom.xml", "pom", module); err != nil {
		return nil, err
	}
	if err := add("src/main/resources", "application.yml", "application-config", module); err != nil {
		return nil, err
	}
	if err := add(javaDir(pkgs.Base), module.MainClass+".java", "application", module); err != nil {
		return nil, err
	}

	for _, agg := range m.Aggregates {
		for _, e := range agg.Entities {
			if err := add(javaDir(pkgs.Model), e.Name+".java", "entity", render.NewEntityData(pkgs, e)); err != nil {
				return nil, err
			}
		}
		for _, vo := range agg.ValueObjects {
			if err := add(javaDir(pkgs.Model), vo.Name+".java", "value-object", render.NewValueObjectData(pkgs, vo)); err != nil {
				return nil, err
			}
		}

		root := agg.Root()
		if root == nil {
			continue
		}
		if err := add(javaDir(pkgs.Port), root.Name+"Repository.java", "repository-port", render.NewPortData(pkgs, root)); err != nil {
			return nil, err
		}
		if err := add(javaDir(pkgs.Persistence), root.Name+"RepositoryAdapter.java", "repository-adapter", render.NewAdapterData(pkgs, root)); err != nil {
			return nil, err
		}
		if err := add(javaDir(pkgs.Service), root.Name+"Service.java", "service", render.NewServiceData(pkgs, root)); err != nil {
			return nil, err
		}
		if err := add(javaDir(pkgs.Web), root.Name+"Controller.java", "controller", render.NewControllerData(pkgs, root)); err != nil {
			return nil, err
		}
		if err := add(javaDir(pkgs.Command), "Create"+root.Name+"Command.java", "create-command", render.NewCreateCommandData(pkgs, root)); err != nil {
			return nil, err
		}
		if err := add(javaDir(pkgs.Command), "Update"+root.Name+"Command.java", "update-command", render.NewUpdateCommandData(pkgs, root)); err != nil {
			return nil, err
		}
		if err := add(javaDir(pkgs.Response), root.Name+"Response.java", "response", render.NewResponseData(pkgs, root)); err != nil {
			return nil, err
		}
	}

	for _, en := range m.Enums {
		if err := add(javaDir(pkgs.Model), en.Name+".java", "enum", render.NewEnumData(pkgs, en)); err != nil {
			return nil, err
		}
	}

	return files, nil
}

// Write persists a planned tree and the generation manifest. When git
// bootstrap is enabled, the written tree becomes the initial commit.
// Re-running over an existing tree overwrites files in place.
func (s *Scaffolder) Write(m *model.ResolvedModel, files []File) (*Manifest, error) {
	if m == nil {
		return nil, ErrNilModel
	}

	for _, f := range files {
		if err := s.writeFile(f); err != nil {
			return nil, err
		}
		s.logger.Debug("wrote file", "path", f.Path)
	}

	manifest := newManifest(m, s.opts.BlueprintDigest, files)
	if err := s.writeManifest(manifest); err != nil {
		return nil, err
	}

	s.logger.Info("scaffold complete",
		"module", m.Module,
		"files", len(files),
		"run", manifest.Run)

	if s.opts.InitGit {
		if err := s.bootstrapGit(append(manifest.Files, ManifestPath)); err != nil {
			return nil, err
		}
	}

	return manifest, nil
}

// Generate plans and writes the full project tree for the resolved model.
func (s *Scaffolder) Generate(m *model.ResolvedModel) (*Manifest, error) {
	files, err := s.Plan(m)
	if err != nil {
		return nil, err
	}
	return s.Write(m, files)
}

// writeFile creates the parent directory and writes one file.
func (s *Scaffolder) writeFile(f File) error {
	if dir := path.Dir(f.Path); dir != "." {
		if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("scaffold: create %s: %w", dir, err)
		}
	}
	if err := util.WriteFile(s.fs, f.Path, f.Content, filePerm); err != nil {
		return fmt.Errorf("scaffold: write %s: %w", f.Path, err)
	}
	return nil
}

// javaDir maps a Java package to its directory under the Maven source root.
func javaDir(pkg string) string {
	return path.Join("src/main/java", strings.ReplaceAll(pkg, ".", "/"))
}
