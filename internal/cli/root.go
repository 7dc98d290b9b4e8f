// Package cli implements the hpctl terminal front end over the comparison service.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	service "github.com/okian/horsepower/internal/app"
	"github.com/okian/horsepower/internal/config"
	"github.com/okian/horsepower/internal/domain/types"
	"github.com/okian/horsepower/pkg/logger"
	"github.com/spf13/cobra"
)

// skipDataset marks commands that run without loading the dataset.
const skipDataset = "skip-dataset"

type app struct {
	dataset  string
	sheet    string
	logLevel string
	asJSON   bool

	subject subjectFlags
	svc     *service.Service
}

// NewRootCommand builds the hpctl command tree. Output goes to cmd.OutOrStdout.
func NewRootCommand() *cobra.Command {
	a := &app{}
	defaults := config.New()
	if cfg, err := config.Load(context.Background()); err == nil {
		defaults = cfg
	}

	root := &cobra.Command{
		Use:           "hpctl",
		Short:         "Compare an athlete's strength and power tests against a reference dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.InitWithWriter(cmd.ErrOrStderr()); err != nil {
				return err
			}
			if err := logger.SetLevelString(a.logLevel); err != nil {
				return err
			}
			if cmd.Annotations[skipDataset] == "true" {
				return nil
			}
			a.svc = service.New(
				service.WithLogger(logger.Named("hpctl")),
				service.WithDatasetPath(a.dataset),
				service.WithSheet(a.sheet),
			)
			return a.svc.Start(cmd.Context())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.svc != nil {
				a.svc.Stop()
			}
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.dataset, "dataset", defaults.DatasetPath, "dataset file (.csv, .tsv or .xlsx)")
	f.StringVar(&a.sheet, "sheet", defaults.DatasetSheet, "XLSX sheet name (default first sheet)")
	f.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	f.BoolVar(&a.asJSON, "json", false, "print JSON instead of tables")

	root.AddCommand(
		a.levelCommand(),
		a.playerCommand(),
		a.closestCommand(),
		a.positionCommand(),
		a.spreadCommand(),
		a.optionsCommand(),
		a.validateCommand(),
	)
	return root
}

// Execute runs hpctl with args against ctx.
func Execute(ctx context.Context, args []string, out, errOut io.Writer) error {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(errOut, "Error:", err)
		return err
	}
	return nil
}

func (a *app) print(w io.Writer, c types.Comparison) error {
	if a.asJSON {
		return writeJSON(w, c)
	}
	_, err := fmt.Fprintln(w, renderComparison(c))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
