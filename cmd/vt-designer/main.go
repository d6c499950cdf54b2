package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/ritzau/vt-designer/pkg/config"
	"github.com/ritzau/vt-designer/pkg/editor"
	"github.com/ritzau/vt-designer/pkg/graph"
	"github.com/ritzau/vt-designer/pkg/logging"
	"github.com/ritzau/vt-designer/pkg/objectid"
	"github.com/ritzau/vt-designer/pkg/output"
	"github.com/ritzau/vt-designer/pkg/projectfile"
	"github.com/ritzau/vt-designer/pkg/render"
	"github.com/ritzau/vt-designer/pkg/web"
	"github.com/spf13/cobra"
)

var version = "dev"

// errCheckFailed makes `check` exit non-zero after it printed its report.
var errCheckFailed = errors.New("object pool check failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errCheckFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "vt-designer",
		Short:         "Edit ISOBUS virtual terminal object pools",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if cfg, err = config.Load(cmd.Flags()); err != nil {
				return err
			}
			return logging.Configure(cfg.Verbosity, cfg.JSONLogs)
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "serve [project-file]",
			Short: "Serve the editor over HTTP",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if len(args) == 1 {
					cfg.Project = args[0]
				}
				return serve(cmd.Context(), cfg)
			},
		},
		&cobra.Command{
			Use:   "check <project-file>",
			Short: "Load a project file and report integrity problems",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				g, err := projectfile.Load(args[0])
				output.PrintCheckReport(cmd.OutOrStdout(), args[0], g, err)
				if err != nil {
					return errCheckFailed
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "tree <project-file>",
			Short: "Print the render hierarchy of a project",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				g, err := projectfile.Load(args[0])
				if err != nil {
					return err
				}
				output.PrintTree(cmd.OutOrStdout(), g)
				return nil
			},
		},
		newRenderCmd(func() *config.Config { return cfg }),
	)
	return root
}

func newRenderCmd(cfg func() *config.Config) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "render <project-file> <object-id>",
		Short: "Print the render data of one object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := projectfile.Load(args[0])
			if err != nil {
				return err
			}
			id, err := objectid.Parse(args[1])
			if err != nil {
				return err
			}
			if !g.Has(id) {
				return &graph.IDNotFoundError{ID: id}
			}

			// sizes the config leaves open are fitted to the pool, as when editing
			sizes := editor.New(g, cfg().EditorOptions()).Sizes()
			scene := render.Produce(g, id, sizes)
			if !asJSON {
				output.PrintScene(cmd.OutOrStdout(), g, scene)
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(scene)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the scene as JSON")
	return cmd
}

// serve edits cfg.Project, starting from an empty pool when the file does
// not exist yet.
func serve(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, err := openProject(cfg)
	if err != nil {
		return err
	}
	project := editor.New(g, cfg.EditorOptions())
	logging.Info("Project opened", "path", cfg.Project, "project", project.String())

	server := web.NewServer(project, cfg.Project)
	if cfg.Watch && cfg.Project != "" {
		if err := server.Watch(ctx); err != nil {
			return fmt.Errorf("watching %s: %w", cfg.Project, err)
		}
	}
	return server.Start(ctx, cfg.Port)
}

func openProject(cfg *config.Config) (*graph.Graph, error) {
	if cfg.Project == "" {
		return graph.New(cfg.VtVersion), nil
	}
	g, err := projectfile.Load(cfg.Project)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Info("Starting a new project", "path", cfg.Project, "version", cfg.VtVersion.String())
		return graph.New(cfg.VtVersion), nil
	}
	return g, err
}
