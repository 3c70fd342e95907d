package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ardnew/rdmx/log"
	"github.com/ardnew/rdmx/render"
	"github.com/ardnew/rdmx/update"
	"github.com/ardnew/rdmx/vars"
)

// Update renders the directives of each file and rewrites it in place.
type Update struct {
	Backup    bool   `default:"true"         help:"Back up each file before rewriting it." negatable:""`
	BackupDir string `default:"${backupDir}" help:"Directory under which backups are stored." type:"path"`

	Vars Vars `embed:""`

	Files []string `arg:"" help:"Markdown files to update." name:"file" type:"path"`
}

// Run executes the update command.
func (u *Update) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	table, err := u.Vars.Table(ctx)
	if err != nil {
		return err
	}

	reg, err := Registry()
	if err != nil {
		return err
	}

	logger := log.Default()

	logger.DebugContext(ctx, "variables", slog.Any("names", table.Names()))

	pipeline := render.New(render.Config{
		Registry: reg,
		Vars:     table,
		Logger:   logger,
	})

	updater := update.New(pipeline,
		update.WithBackup(u.Backup),
		update.WithBackupDir(u.BackupDir),
		update.WithLogger(logger),
	)

	results, err := updater.UpdateAll(ctx, u.Files...)

	w := stdout(ctx)
	for _, r := range results {
		if r.Backup != "" {
			fmt.Fprintf(w, "%-9s %s (backup %s)\n", r.Status, r.Path, r.Backup)
		} else {
			fmt.Fprintf(w, "%-9s %s\n", r.Status, r.Path)
		}
	}

	return err
}

// Vars selects the variables available to directives.
//
// Sources are consulted in order: variable files, the Go module, and the
// environment; the first to define a name wins. Assignments with --var
// override all of them.
type Vars struct {
	Var       []string `help:"Define a variable; overrides every other source."          placeholder:"NAME=VALUE" sep:"none" short:"D"`
	VarsFile  []string `help:"Read variables from a YAML (.yaml, .yml) or HCL (.hcl) file." placeholder:"FILE"       sep:"none" type:"existingfile"`
	Module    string   `help:"Read module variables from a go.mod file."                placeholder:"GO.MOD"                type:"existingfile"`
	EnvPrefix string   `default:"${envPrefix}" help:"Export environment variables with this prefix (empty to disable)."`
}

// Table collects the variables.
func (v *Vars) Table(ctx context.Context) (vars.Table, error) {
	override, err := vars.ParseAssignments(v.Var)
	if err != nil {
		return nil, err
	}

	sources, err := v.sources()
	if err != nil {
		return nil, err
	}

	return vars.Merge(ctx, override, sources...)
}

func (v *Vars) sources() ([]vars.Source, error) {
	logger := log.Default()
	sources := make([]vars.Source, 0, len(v.VarsFile)+2)

	for _, path := range v.VarsFile {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			sources = append(sources, vars.YAMLFile{Path: path, Logger: logger})
		case ".hcl":
			sources = append(sources, vars.HCLFile{Path: path, Logger: logger})
		default:
			return nil, ErrVarsFileType.With(slog.String("file", path))
		}
	}

	if v.Module != "" {
		sources = append(sources, vars.GoModule{Path: v.Module})
	}

	if v.EnvPrefix != "" {
		sources = append(sources, vars.Env{Prefix: v.EnvPrefix})
	}

	return sources, nil
}
