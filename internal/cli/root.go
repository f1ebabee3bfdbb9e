package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/pdfsplit/internal/config"
	"github.com/danieljhkim/pdfsplit/internal/engine"
	"github.com/danieljhkim/pdfsplit/internal/logging"
)

var (
	// Split flags
	filePath   string
	parts      int
	introStart int
	introEnd   int
	verbose    bool
	dryRun     bool

	// Settings flags, resolved through config.Load
	cfgFile string

	// Colors for help output sections
	groupTitleColor   = color.New(color.FgCyan, color.Bold)
	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

// rootCmd is the root command for pdfsplit.
var rootCmd = &cobra.Command{
	Use:     "pdfsplit",
	Version: "dev",
	Short:   "Split a PDF into equal parts with a shared intro",
	Long: `pdfsplit splits one PDF into N parts of roughly equal length.

An optional intro page range is prepended to every part. Body pages that do
not divide evenly go to the earliest parts.`,
	Example: `  pdfsplit --file-path book.pdf --parts 4
  pdfsplit -f book.pdf -p 3 --intro-start 1 --intro-end 2 --output-dir out
  pdfsplit -f book.pdf -p 3 --dry-run --output yaml`,
	Args:          argsAsInvalid(cobra.NoArgs),
	RunE:          runSplit,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// argsAsInvalid classifies positional argument errors as invalid arguments.
func argsAsInvalid(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", engine.ErrInvalidArgument, err)
		}
		return nil
	}
}

func runSplit(cmd *cobra.Command, args []string) error {
	paths, err := config.DefaultPaths()
	if err != nil {
		return fmt.Errorf("failed to get config paths: %w", err)
	}
	cfg, err := config.Load(cfgFile, paths, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("%w: %v", engine.ErrInvalidArgument, err)
	}
	if cfg.File != "" {
		logger.Debug("loaded config", "file", cfg.File)
	}

	opts := &splitOptions{
		FilePath: filePath,
		Parts:    parts,
		Verbose:  verbose,
		DryRun:   dryRun,
	}
	if cmd.Flags().Changed("intro-start") {
		v := introStart
		opts.IntroStart = &v
	}
	if cmd.Flags().Changed("intro-end") {
		v := introEnd
		opts.IntroEnd = &v
	}
	if err := opts.validate(); err != nil {
		return err
	}
	req := opts.request(cfg)

	var emitter engine.Emitter
	if req.Verbose {
		emitter = engine.NewJSONLinesEmitter(cmd.OutOrStdout())
	}

	result, err := newEngine(logger).Split(cmd.Context(), req, emitter)
	if err != nil {
		return err
	}

	switch {
	case result.DryRun:
		return outputTo(cmd.OutOrStdout(), OutputFormat(cfg.Output), result)
	case req.Verbose:
		// The event stream already reported every part.
		return nil
	default:
		printSummary(cmd.OutOrStdout(), req, result)
		return nil
	}
}

// customHelpFunc returns a custom help function that colors group titles
func customHelpFunc(cmd *cobra.Command, args []string) {
	var help strings.Builder

	if cmd.Long != "" {
		help.WriteString(cmd.Long)
		help.WriteString("\n\n")
	}

	help.WriteString(sectionTitleColor.Sprint("Usage:"))
	help.WriteString("\n")
	fmt.Fprintf(&help, "  %s\n\n", cmd.UseLine())

	if cmd.Example != "" {
		help.WriteString(sectionTitleColor.Sprint("Examples:"))
		help.WriteString("\n")
		help.WriteString(cmd.Example)
		help.WriteString("\n\n")
	}

	for _, group := range cmd.Groups() {
		help.WriteString(groupTitleColor.Sprint(group.Title))
		help.WriteString("\n")

		for _, c := range cmd.Commands() {
			if c.GroupID == group.ID && !c.Hidden {
				fmt.Fprintf(&help, "  %-11s %s\n", c.Name(), c.Short)
			}
		}
		help.WriteString("\n")
	}

	if cmd.HasAvailableLocalFlags() || cmd.HasAvailablePersistentFlags() {
		help.WriteString(sectionTitleColor.Sprint("Flags:"))
		help.WriteString("\n")
		help.WriteString(cmd.LocalFlags().FlagUsages())
		help.WriteString(cmd.InheritedFlags().FlagUsages())
		help.WriteString("\n")
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(&help, "Use \"%s [command] --help\" for more information about a command.\n", cmd.CommandPath())
	}

	fmt.Fprint(cmd.OutOrStdout(), help.String())
}

func init() {
	rootCmd.SetHelpFunc(customHelpFunc)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", engine.ErrInvalidArgument, err)
	})

	defaults := config.DefaultConfig()
	flags := rootCmd.Flags()
	flags.StringVarP(&filePath, "file-path", "f", "", "Source PDF to split (required)")
	flags.IntVarP(&parts, "parts", "p", 0, "Number of output parts (required, >= 1)")
	flags.IntVar(&introStart, "intro-start", 0, "First intro page, 1-based (requires --intro-end)")
	flags.IntVar(&introEnd, "intro-end", 0, "Last intro page, inclusive (requires --intro-start)")
	flags.String(config.KeyOutputDir, defaults.OutputDir, "Directory the parts are written to")
	flags.String(config.KeyOutputBasename, defaults.OutputBasename, "File name prefix of every part")
	flags.String(config.KeyExtension, defaults.Extension, "File extension of every part")
	flags.String(config.KeyEmptyParts, defaults.EmptyParts, "Parts without body pages: emit or reject")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Stream progress events as JSON lines on stdout")
	flags.BoolVar(&dryRun, "dry-run", false, "Print the split plan without writing any file")
	flags.StringVar(&cfgFile, "config", "", "Config file (default ./pdfsplit.yaml or $PDFSPLIT_ROOT/config.yaml)")
	flags.String(config.KeyLogLevel, defaults.LogLevel, "Log level: debug, info, warn or error")
	flags.StringP(config.KeyOutput, "o", defaults.Output, "Dry-run output format: json or yaml")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "cli-tooling",
		Title: "CLI & Tooling:",
	})

	versionCmd := &cobra.Command{
		Use:     "version",
		Short:   "Print the pdfsplit CLI version",
		Args:    cobra.NoArgs,
		GroupID: "cli-tooling",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), rootCmd.Version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	helpCmd := &cobra.Command{
		Use:     "help [command]",
		Short:   "Help about any command",
		GroupID: "cli-tooling",
		Run: func(cmd *cobra.Command, args []string) {
			target, _, err := rootCmd.Find(args)
			if err != nil || target == nil {
				target = rootCmd
			}
			_ = target.Help()
		},
	}
	rootCmd.SetHelpCommand(helpCmd)

	completionCmd := &cobra.Command{
		Use:     "completion",
		Short:   "Generate the autocompletion script for the specified shell",
		GroupID: "cli-tooling",
		Long: `Generate the autocompletion script for pdfsplit for the specified shell.
See each sub-command's help for details on how to use the generated script.`,
	}
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "bash",
		Short:                 "Generate the autocompletion script for bash",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		},
	})
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "zsh",
		Short:                 "Generate the autocompletion script for zsh",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		},
	})
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "fish",
		Short:                 "Generate the autocompletion script for fish",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		},
	})
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "powershell",
		Short:                 "Generate the autocompletion script for powershell",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		},
	})
	rootCmd.AddCommand(completionCmd)
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
