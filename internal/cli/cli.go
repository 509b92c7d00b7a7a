package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/vk/turbarch/internal/app"
	"github.com/vk/turbarch/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

type rootFlags struct {
	logLevel    string
	logFormat   string
	thermoData  string
	metricsFile string
}

// NewRootCommand builds the turbarch command tree. Command output goes to outW,
// logs and errors to errW.
func NewRootCommand(outW, errW io.Writer, loader config.Loader) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "turbarch",
		Short: "Build gas-turbine architectures into multi-point cycle plans",
		Long: `turbarch reads a gas-turbine architecture described in HCL, realizes it
at every operating point and reports the resulting cycle plan.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&flags.logLevel, "log-level", "info", "Logging level: debug, info, warn or error.")
	pf.StringVar(&flags.logFormat, "log-format", "text", "Log output format: text or json.")
	pf.StringVar(&flags.thermoData, "thermo", "", "Thermodynamic data for every module: CEA or TABULAR.")
	pf.StringVar(&flags.metricsFile, "metrics-file", "", "Write build metrics in the Prometheus text format to this file.")

	root.AddCommand(
		newPlanCommand(outW, errW, loader, flags),
		newValidateCommand(outW, errW, loader, flags),
	)
	return root
}

func newPlanCommand(outW, errW io.Writer, loader config.Loader, flags *rootFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "plan ARCH_PATH",
		Short: "Build the architecture and print the recorded cycle plan",
		Args:  architecturePath,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(outW, errW, loader, flags, args[0], output)
			if err != nil {
				return err
			}
			return a.Plan(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Plan output format: text or yaml.")
	return cmd
}

func newValidateCommand(outW, errW io.Writer, loader config.Loader, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate ARCH_PATH",
		Short: "Build the architecture and report whether it is consistent",
		Args:  architecturePath,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(outW, errW, loader, flags, args[0], "text")
			if err != nil {
				return err
			}
			return a.Validate(cmd.Context())
		},
	}
}

func architecturePath(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return usageError(err)
	}
	return nil
}

func newApp(outW, errW io.Writer, loader config.Loader, flags *rootFlags, path, output string) (*app.App, error) {
	cfg, err := app.NewConfig(app.Config{
		ArchitecturePath: path,
		LogLevel:         flags.logLevel,
		LogFormat:        flags.logFormat,
		OutputFormat:     output,
		ThermoData:       flags.thermoData,
		MetricsFile:      flags.metricsFile,
	})
	if err != nil {
		return nil, usageError(err)
	}
	return app.NewApp(outW, errW, cfg, loader), nil
}

// Execute runs the command tree against args.
func Execute(ctx context.Context, args []string, outW, errW io.Writer, loader config.Loader) error {
	root := NewRootCommand(outW, errW, loader)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
