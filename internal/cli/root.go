// Package cli implements the netsuite command-line tool.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tphakala/go-netsuite"
	"github.com/tphakala/go-netsuite/internal/config"
	"github.com/tphakala/go-netsuite/internal/logger"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
)

// Options are the global flags handed to a ClientFactory.
type Options struct {
	ConfigPath string
	Verbose    bool
}

// ClientFactory builds the SDK client used by commands.
type ClientFactory func(opts Options) (*netsuite.Client, error)

// DefaultFactory loads the YAML config and builds a SOAP-backed client.
func DefaultFactory(opts Options) (*netsuite.Client, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if opts.Verbose {
		level = "debug"
	}
	log, err := logger.NewLogger(level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}

	return netsuite.NewClient(append(cfg.ClientOptions(), netsuite.WithLogger(log))...)
}

type app struct {
	factory ClientFactory
	opts    Options
	client  *netsuite.Client
}

func (a *app) getClient() (*netsuite.Client, error) {
	if a.client == nil {
		c, err := a.factory(a.opts)
		if err != nil {
			return nil, fmt.Errorf("create client: %w", err)
		}
		a.client = c
	}
	return a.client, nil
}

func (a *app) records(typeName string) (netsuite.RecordService, error) {
	c, err := a.getClient()
	if err != nil {
		return nil, err
	}
	return c.Records(typeName)
}

// NewRootCmd assembles the command tree.
func NewRootCmd(version string, factory ClientFactory) *cobra.Command {
	if factory == nil {
		factory = DefaultFactory
	}
	a := &app{factory: factory}

	root := &cobra.Command{
		Use:           "netsuite",
		Short:         "Query and update NetSuite records over SuiteTalk",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	root.PersistentFlags().StringVar(&a.opts.ConfigPath, "config", config.DefaultPath, "Path to YAML config")
	root.PersistentFlags().BoolVarP(&a.opts.Verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newGetCmd(a),
		newRefCmd(a),
		newListCmd(a),
		newAllCmd(a),
		newCountCmd(a),
		newSearchCmd(a),
		newDeleteCmd(a),
		newTypesCmd(),
		newVersionCmd(version),
	)
	return root
}

// Execute runs the root command and prints a failure in red.
func Execute(root *cobra.Command) error {
	err := root.Execute()
	if err != nil {
		errorColor.Fprintln(root.ErrOrStderr(), "Error:", err)
	}
	return err
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version info",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "netsuite %s (SuiteTalk %s)\n", version, netsuite.APIVersion)
		},
	}
}
