package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/hexforge/hexforge/blueprint"
	"github.com/hexforge/hexforge/blueprint/schema"
	"github.com/hexforge/hexforge/config"
	"github.com/hexforge/hexforge/diag"
	"github.com/hexforge/hexforge/model"
	"github.com/hexforge/hexforge/naming"
	"github.com/hexforge/hexforge/scaffold"
)

// starterBlueprint is the document written by hexforge init. It carries a
// single sample aggregate so a fresh module validates and generates out of
// the box.
const starterBlueprint = `version: %s
module: %s
basePackage: %s
aggregates:
  - name: Customer
    audit: true
    entities:
      - name: Customer
        root: true
        fields:
          - name: id
            type: String
          - name: name
            type: String
            validations: [NotBlank]
          - name: email
            type: String
`

func initCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Write a starter blueprint for a new module",
		ArgsUsage: "<module>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "blueprint", Value: cfg.Blueprint, Usage: "blueprint file to write"},
			&cli.StringFlag{Name: "package", Usage: "base Java package (defaults to com.example.<module>)"},
			&cli.BoolFlag{Name: "git", Usage: "initialize a git repository holding the blueprint"},
			&cli.BoolFlag{Name: "force", Usage: "overwrite an existing blueprint"},
		},
		Action: runInit(cfg),
	}
}

func runInit(cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		module := c.Args().First()
		if module == "" {
			return errors.New("init: module name is required")
		}

		pkg := c.String("package")
		if pkg == "" {
			pkg = "com.example." + naming.Snake(module)
		}

		path, err := filepath.Abs(c.String("blueprint"))
		if err != nil {
			return fmt.Errorf("init: resolve path: %w", err)
		}

		if !c.Bool("force") {
			if _, statErr := os.Stat(path); statErr == nil {
				return fmt.Errorf("init: %s already exists, use --force to overwrite", path)
			}
		}

		doc := fmt.Sprintf(starterBlueprint, schema.SchemaVersion, module, pkg)
		if _, err := blueprint.LoadBytes([]byte(doc), filepath.Base(path)); err != nil {
			return fmt.Errorf("init: starter blueprint is invalid: %w", err)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("init: create %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("init: write %s: %w", path, err)
		}
		fmt.Println("wrote", path)

		if c.Bool("git") {
			dir := filepath.Dir(path)
			hash, gitErr := scaffold.InitRepository(osfs.New(dir),
				gitName(cfg), gitEmail(cfg), "Initial blueprint", []string{filepath.Base(path)})
			if gitErr != nil {
				return gitErr
			}
			if hash != "" {
				fmt.Println("initialized git repository at", dir)
			}
		}
		return nil
	}
}

func validateCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check a blueprint against the schema and the model rules",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "blueprint", Value: cfg.Blueprint, Usage: "blueprint file to check"},
			&cli.StringFlag{Name: "format", Value: "text", Usage: "report format: text or json"},
		},
		Action: runValidate(cfg),
	}
}

func runValidate(cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		format, err := diag.ParseFormat(c.String("format"))
		if err != nil {
			return err
		}

		resolved, _, err := loadAndResolve(c.String("blueprint"))
		if err != nil {
			return err
		}

		report := resolved.Diagnostics()
		if err := diag.NewReporter(os.Stdout, format).Write(report); err != nil {
			return err
		}

		if report.HasErrors() {
			return fmt.Errorf("validate: blueprint has %d errors", len(report.Errors()))
		}
		if format == diag.FormatText {
			if n := len(report.Warnings()); n > 0 {
				fmt.Printf("blueprint is valid with %d warnings\n", n)
			} else {
				fmt.Println("blueprint is valid")
			}
		}
		return nil
	}
}

func generateCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate the full project tree from a blueprint",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "blueprint", Value: cfg.Blueprint, Usage: "blueprint file to generate from"},
			&cli.StringFlag{Name: "output", Value: cfg.OutputDir, Usage: "directory the project is written into"},
			&cli.BoolFlag{Name: "dry-run", Usage: "list the files that would be written"},
			&cli.BoolFlag{Name: "git", Usage: "initialize a git repository in the output tree"},
		},
		Action: runGenerate(cfg),
	}
}

func runGenerate(cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		resolved, doc, err := loadAndResolve(c.String("blueprint"))
		if err != nil {
			return err
		}

		report := resolved.Diagnostics()
		if report.HasErrors() {
			if werr := diag.NewReporter(os.Stderr, diag.FormatText).Write(report); werr != nil {
				return werr
			}
			return fmt.Errorf("generate: blueprint has %d errors, nothing written", len(report.Errors()))
		}
		if werr := diag.NewReporter(os.Stderr, diag.FormatText).Write(report); werr != nil {
			return werr
		}

		s, err := scaffold.New(&scaffold.Options{
			OutputDir:       c.String("output"),
			Logger:          cfg.Logger(),
			InitGit:         c.Bool("git"),
			GitName:         cfg.GitName,
			GitEmail:        cfg.GitEmail,
			BlueprintDigest: doc.Digest,
			TemplateDir:     cfg.TemplateDir,
		})
		if err != nil {
			return err
		}

		files, err := s.Plan(resolved)
		if err != nil {
			return err
		}

		if c.Bool("dry-run") {
			for _, f := range files {
				fmt.Println(f.Path)
			}
			return nil
		}

		manifest, err := s.Write(resolved, files)
		if err != nil {
			return err
		}

		out := c.String("output")
		if abs, absErr := filepath.Abs(out); absErr == nil {
			out = abs
		}
		recordRun(cfg, manifest, out)

		printKV([][2]string{
			{"module", manifest.Module},
			{"output", c.String("output")},
			{"files", strconv.Itoa(len(manifest.Files))},
			{"run", manifest.Run},
		})
		return nil
	}
}

// recordRun appends the generation run to the run log under the state
// directory. Recording is best effort and never fails the run.
func recordRun(cfg *config.Config, m *scaffold.Manifest, outputDir string) {
	if cfg.StateDir == "" {
		return
	}
	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		cfg.Logger().Warn("cannot record run", "error", err)
		return
	}

	line := fmt.Sprintf("%s %s %s %s\n",
		m.GeneratedAt.Format(time.RFC3339), m.Run, m.Module, outputDir)
	logPath := filepath.Join(cfg.StateDir, "runs.log")
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		cfg.Logger().Warn("cannot record run", "error", err)
		return
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		cfg.Logger().Warn("cannot record run", "error", err)
	}
}

func modelCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "model",
		Usage: "Dump the resolved model for template debugging",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "blueprint", Value: cfg.Blueprint, Usage: "blueprint file to resolve"},
			&cli.StringFlag{Name: "format", Value: "yaml", Usage: "output format: yaml or json"},
		},
		Action: runModel(cfg),
	}
}

func runModel(cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		resolved, _, err := loadAndResolve(c.String("blueprint"))
		if err != nil {
			return err
		}

		report := resolved.Diagnostics()
		if report.HasErrors() {
			if werr := diag.NewReporter(os.Stderr, diag.FormatText).Write(report); werr != nil {
				return werr
			}
			return fmt.Errorf("model: blueprint has %d errors", len(report.Errors()))
		}

		switch c.String("format") {
		case "json":
			return printJSON(resolved)
		case "yaml":
			out, err := yaml.Marshal(resolved)
			if err != nil {
				return fmt.Errorf("model: encode: %w", err)
			}
			fmt.Print(string(out))
			return nil
		default:
			return fmt.Errorf("model: unsupported format %q", c.String("format"))
		}
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, c *cli.Command) error {
			printKV([][2]string{
				{"version", version},
				{"commit", commit},
				{"schema", schema.SchemaVersion},
				{"go", runtime.Version()},
			})
			return nil
		},
	}
}

// loadAndResolve reads a blueprint and runs it through the resolver.
// Validation findings are not an error here: the model still comes back
// carrying its diagnostics report, and each command decides how to show
// it.
func loadAndResolve(path string) (*model.ResolvedModel, *blueprint.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve path %s: %w", path, err)
	}

	doc, err := blueprint.Load(abs)
	if err != nil {
		return nil, nil, err
	}

	resolved, err := model.Resolve(doc.ModuleSpec())
	if err != nil && !model.IsValidationFailed(err) {
		return nil, nil, err
	}
	return resolved, doc, nil
}

func gitName(cfg *config.Config) string {
	if cfg.GitName != "" {
		return cfg.GitName
	}
	return scaffold.DefaultGitName
}

func gitEmail(cfg *config.Config) string {
	if cfg.GitEmail != "" {
		return cfg.GitEmail
	}
	return scaffold.DefaultGitEmail
}
