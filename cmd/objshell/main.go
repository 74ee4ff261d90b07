// Package main provides the objshell CLI: an interactive console for constructing objects of
// registered types and calling their methods.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"objshell/internal/coerce"
	"objshell/internal/commands"
	"objshell/internal/commands/builtin"
	"objshell/internal/config"
	"objshell/internal/demo"
	"objshell/internal/entity"
	"objshell/internal/journal"
	"objshell/internal/logger"
	"objshell/internal/output"
	"objshell/internal/registry"
	"objshell/internal/shell"
	"objshell/internal/version"
)

// scriptExtension is the required extension of batch scripts.
const scriptExtension = ".objsh"

func main() {
	if err := newRootCmd(viper.GetViper()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds the loaded configuration and the wired shell for one CLI invocation.
type app struct {
	v       *viper.Viper
	cfg     *config.Config
	shell   *shell.Shell
	set     *commands.Set
	journal journal.Journal
	echo    bool
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	a := &app{v: v}

	rootCmd := &cobra.Command{
		Use:   "objshell",
		Short: "objshell - an interactive console for registered object types",
		Long: `objshell constructs objects of registered types and calls their methods from typed
expressions such as "new Account( alice, 100 )" and "alice.deposit( 50 )".`,
		SilenceUsage:      true,
		PersistentPreRunE: a.initialize,
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
		RunE: a.runShell,
	}

	flags := rootCmd.PersistentFlags()
	flags.String(config.KeyLogLevel, "", "Set log level (debug|info|warn|error) [default: warn]")
	flags.String(config.KeyLogFile, "", "Write logs to file instead of stderr")
	flags.Bool(config.KeyTestMode, false, "Run in deterministic test mode")
	flags.String(config.KeyPrompt, "", "Interactive prompt")
	flags.String(config.KeyHistoryFile, "", "Readline history file")
	flags.String(config.KeyJournalPath, "", "SQLite file journaling every executed expression")
	flags.String(config.KeyArgumentSeparator, "", "Separator between call arguments [default: ,]")
	flags.Bool(config.KeyPlain, false, "Disable colors and styling")

	for _, key := range []string{
		config.KeyLogLevel, config.KeyLogFile, config.KeyTestMode, config.KeyPrompt,
		config.KeyHistoryFile, config.KeyJournalPath, config.KeyArgumentSeparator, config.KeyPlain,
	} {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", key, err)
			os.Exit(1)
		}
	}

	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Start interactive shell mode",
		RunE:  a.runShell,
	}

	batchCmd := &cobra.Command{
		Use:   "batch <script" + scriptExtension + ">",
		Short: "Execute a script file in batch mode",
		Long: `Execute every expression of a script file without entering interactive mode.
Lines starting with %% are comments. The command fails if any line does not invoke successfully.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runBatch,
	}
	batchCmd.Flags().BoolVar(&a.echo, "echo", false, "Echo each expression before running it")

	completeCmd := &cobra.Command{
		Use:   "complete <text>",
		Short: "Print the autocompletion of a partial expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.shell.Complete(strings.Join(args, " ")))
			return nil
		},
	}

	var detailed bool
	versionCmd := &cobra.Command{
		Use:               "version",
		Short:             "Show version information",
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			if detailed {
				fmt.Fprintln(cmd.OutOrStdout(), version.GetDetailedVersion())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.GetFormattedVersion())
			return nil
		},
	}
	versionCmd.Flags().BoolVar(&detailed, "detailed", false, "Show build details")

	rootCmd.AddCommand(shellCmd, batchCmd, completeCmd, versionCmd)
	return rootCmd
}

// initialize loads the configuration, configures logging and wires the shell.
func (a *app) initialize(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, config.Options{})
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile, cfg.TestMode); err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}

	return a.wire(cmd)
}

func (a *app) wire(cmd *cobra.Command) error {
	types := registry.New()
	if err := demo.Register(types); err != nil {
		return fmt.Errorf("register types: %w", err)
	}
	entities := entity.NewStore()
	env := builtin.NewEnvironment(types, entities, coerce.NewRegistry())
	env.ArgumentDelimiter = a.cfg.Delimiter()

	a.journal = journal.Nop{}
	if a.cfg.JournalPath != "" {
		store, err := journal.Open(a.cfg.JournalPath)
		if err != nil {
			return err
		}
		a.journal = store
	}
	env.History = a.journal

	a.set = commands.NewSet()
	if err := builtin.Register(a.set, env); err != nil {
		return fmt.Errorf("register commands: %w", err)
	}

	a.shell = shell.New(a.set, entities,
		shell.WithJournal(a.journal),
		shell.WithPrinter(a.newPrinter(cmd)),
		shell.WithEcho(a.echo),
	)
	logger.Debug("Shell wired", "types", types.Len(), "commands", len(a.set.All()))
	return nil
}

func (a *app) newPrinter(cmd *cobra.Command) *output.Printer {
	opts := []output.Option{output.WithWriter(cmd.OutOrStdout())}
	switch {
	case a.cfg.TestMode:
		opts = append(opts, output.TestMode())
	case a.cfg.Plain:
		opts = append(opts, output.PlainText())
	default:
		opts = append(opts, output.WithStyles(output.DefaultTheme()))
	}
	return output.NewPrinter(opts...)
}

func (a *app) close() error {
	if a.journal == nil {
		return nil
	}
	return a.journal.Close()
}

func (a *app) runShell(cmd *cobra.Command, _ []string) error {
	logger.Info("Starting objshell", "version", version.Version)

	rl, err := shell.NewReadline(a.set, a.cfg.Prompt, a.cfg.HistoryFile)
	if err != nil {
		return fmt.Errorf("start readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, version.GetFormattedVersion())
	fmt.Fprintln(out, "Type 'help' for commands, Tab to complete, 'exit' to quit.")

	return a.shell.Run(cmd.Context(), rl)
}

func (a *app) runBatch(cmd *cobra.Command, args []string) error {
	scriptPath := args[0]
	logger.Info("Starting objshell batch mode", "version", version.Version, "script", scriptPath)

	if err := validateScriptFile(scriptPath); err != nil {
		return err
	}
	file, err := os.Open(scriptPath)
	if err != nil {
		return fmt.Errorf("open script: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := a.shell.RunScript(cmd.Context(), file); err != nil {
		return fmt.Errorf("script %s: %w", scriptPath, err)
	}
	logger.Info("Script executed successfully", "script", scriptPath)
	return nil
}

func validateScriptFile(scriptPath string) error {
	info, err := os.Stat(scriptPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("script file does not exist: %s", scriptPath)
	}
	if err != nil {
		return fmt.Errorf("script file %s: %w", scriptPath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("script path is a directory: %s", scriptPath)
	}
	if ext := filepath.Ext(scriptPath); ext != scriptExtension {
		return fmt.Errorf("script file must have %s extension, got: %s", scriptExtension, ext)
	}
	return nil
}
