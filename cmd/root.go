package cmd

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/tide/internal/app"
	"github.com/zjrosen/tide/internal/config"
	"github.com/zjrosen/tide/internal/fileio"
	"github.com/zjrosen/tide/internal/flags"
	"github.com/zjrosen/tide/internal/log"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts, so the terminal's OSC 11 response
	// cannot race with the input loop and land in the buffer.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version       = "dev"
	cfgFile       string
	debugFlag     bool
	noLineNumbers bool

	cfg     config.Config
	cfgErr  error
	cfgPath string

	// fsys backs config lookup; tests swap in an in-memory filesystem.
	fsys afero.Fs = afero.NewOsFs()
)

var errNotTerminal = errors.New("tide needs an interactive terminal on stdin and stdout")

var rootCmd = &cobra.Command{
	Use:   "tide [file]",
	Short: "A small modal text editor for the terminal",
	Long: `A small modal text editor for the terminal with C/C++ syntax highlighting.

Press i to insert text, esc to return to normal mode, and : to type a
command (q, w, wq, set number, set nonumber).`,
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .tide/config.yaml, then ~/.config/tide/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write a debug log (path from TIDE_LOG, default tide-debug.log)")
	rootCmd.Flags().BoolVar(&noLineNumbers, "no-line-numbers", false,
		"start with the line-number gutter hidden")
}

func initConfig() {
	cwd, _ := os.Getwd()
	home, _ := os.UserHomeDir()
	cfgPath = config.FindConfigFile(fsys, cfgFile, cwd, home)

	v := viper.New()
	v.SetFs(fsys)
	cfg, cfgErr = config.Load(v, cfgPath)
}

// initLogging starts the debug log when requested by flag or TIDE_DEBUG.
// TIDE_LOG names the file and TIDE_LOG_LEVEL the minimum level.
// The returned cleanup is never nil.
func initLogging(name string) (func(), error) {
	if !debugFlag && os.Getenv("TIDE_DEBUG") == "" {
		return func() {}, nil
	}
	logPath := os.Getenv("TIDE_LOG")
	if logPath == "" {
		logPath = "tide-debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, name)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	if raw := os.Getenv("TIDE_LOG_LEVEL"); raw != "" {
		level, err := log.ParseLevel(raw)
		if err != nil {
			log.Warn(log.CatConfig, "ignoring TIDE_LOG_LEVEL", "value", raw)
		} else {
			log.SetMinLevel(level)
		}
	}
	log.Info(log.CatConfig, "tide starting", "version", version, "config", cfgPath, "logPath", logPath)
	return cleanup, nil
}

// resolvePath picks the file to edit: the positional argument, or the
// configured default filename.
func resolvePath(args []string, c config.Config) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return c.DefaultFilename
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runApp(cmd *cobra.Command, args []string) error {
	if cfgErr != nil {
		return cfgErr
	}
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errNotTerminal
	}

	cleanup, err := initLogging("tide")
	if err != nil {
		return err
	}
	defer cleanup()

	if noLineNumbers {
		cfg.ShowLineNumbers = false
	}

	model := app.New(app.Options{
		Config: cfg,
		Path:   resolvePath(args, cfg),
		Store:  fileio.NewOSStore(),
		Flags:  flags.New(cfg.Flags),
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion records build information for --version and the debug log.
func SetVersion(v, commit, date string) {
	version = fmt.Sprintf("%s (commit %s, built %s)", v, commit, date)
	rootCmd.Version = version
}
