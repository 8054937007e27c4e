package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	Trace      string // overrides the trace level of the configuration
	Mode       string // overrides the application mode of the configuration

	session *Session
}

// Session returns the rule session, built from the configuration during
// pre-run.
func (opts *RootOptions) Session() *Session {
	return opts.session
}

// NewRootCommand creates the root command for the morphon CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "morphon",
		Short: "morphon - phonological rewrite rules",
		Long:  "Applies a cascade of phonological rewrite rules to words written as segment sequences.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.Trace, "trace", "", "trace level [Debug|Info|Error]")
	cmd.PersistentFlags().StringVar(&opts.Mode, "mode", "", "application mode for all rules [iterative|simultaneous]")

	cmd.AddCommand(NewApplyCommand(opts))
	cmd.AddCommand(NewReplCommand(opts))
	cmd.AddCommand(NewRulesCommand(opts))

	return cmd
}

func (opts *RootOptions) setup() error {
	cfg, err := LoadConfig(opts.ConfigFile)
	if err != nil {
		return err
	}
	if opts.Trace != "" {
		cfg.Trace = opts.Trace
	}
	if opts.Mode != "" {
		cfg.Mode = opts.Mode
	}
	setTraceLevel(cfg.Trace)
	tracer().Infof("trace level is %s", cfg.Trace)
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("invalid option: %w", err)
	}
	opts.session, err = NewSession(cfg)
	return err
}

// NewRulesCommand creates the rules command, listing the rule cascade.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the rules in order of application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := rootOpts.Session()
			for i, rr := range sess.Rules() {
				r := rr.Rule()
				state := ""
				if !sess.selector(r) {
					state = " (disabled)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s [%s, %s, %v]%s\n",
					i+1, r.Name, r.Direction, r.Mode, rr.Variants(), state)
			}
			return nil
		},
	}
}
