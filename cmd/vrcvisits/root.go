package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/graaaaa/vrcvisits/internal/app"
	"github.com/graaaaa/vrcvisits/internal/appinfo"
	"github.com/graaaaa/vrcvisits/internal/config"
	"github.com/graaaaa/vrcvisits/internal/instance"
	"github.com/graaaaa/vrcvisits/internal/logscan"
	"github.com/graaaaa/vrcvisits/internal/shortcut"
	"github.com/graaaaa/vrcvisits/internal/version"
	"github.com/graaaaa/vrcvisits/internal/visit"
)

// rootFlags mirrors the command line of the root command.
type rootFlags struct {
	ignorePublic  bool
	ignoreWorlds  []string
	ignoreByTime  int
	index         int
	noGUI         bool
	quickSave     bool
	quickSaveHTTP bool
	killVRC       bool
	noDialog      bool
	logDir        string
	saveDir       string
	verbose       bool
}

// settings is the merged result of flags, environment, config file and defaults.
type settings struct {
	filter   visit.Filter
	logDir   string
	saveDir  string
	noDialog bool
}

// settings merges f over cfg. Only flags given on the command line win.
func (f *rootFlags) settings(cmd *cobra.Command, cfg config.Config) settings {
	flags := cmd.Flags()
	s := settings{
		filter: visit.Filter{
			ExcludePublic:   cfg.IgnorePublic,
			MinAge:          time.Duration(cfg.IgnoreByTimeMin) * time.Minute,
			ExcludeWorldIDs: cfg.IgnoreWorlds,
		},
		logDir:   cfg.LogPath,
		saveDir:  cfg.SaveDir,
		noDialog: cfg.NoDialog,
	}
	if flags.Changed("ignore-public") {
		s.filter.ExcludePublic = f.ignorePublic
	}
	if flags.Changed("ignore-by-time") {
		s.filter.MinAge = time.Duration(f.ignoreByTime) * time.Minute
	}
	if flags.Changed("ignore-worlds") {
		s.filter.ExcludeWorldIDs = f.ignoreWorlds
	}
	if flags.Changed("log-dir") {
		s.logDir = f.logDir
	}
	if flags.Changed("save-dir") {
		s.saveDir = f.saveDir
	}
	if flags.Changed("no-dialog") {
		s.noDialog = f.noDialog
	}
	return s
}

// validate rejects flag values the option grammar does not accept.
func (f *rootFlags) validate() error {
	if f.index < 0 {
		return &optionError{Arg: fmt.Sprintf("--index=%d", f.index)}
	}
	if f.ignoreByTime < 0 {
		return &optionError{Arg: fmt.Sprintf("--ignore-by-time=%d", f.ignoreByTime)}
	}
	for _, id := range f.ignoreWorlds {
		if !strings.HasPrefix(id, instance.WorldIDPrefix) || len(id) == len(instance.WorldIDPrefix) {
			return &optionError{Arg: "--ignore-worlds=" + strings.Join(f.ignoreWorlds, ",")}
		}
	}
	if f.quickSave && f.quickSaveHTTP {
		return errQuickSaveConflict
	}
	return nil
}

func (c *cli) rootCmd() *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "vrcvisits [log files...]",
		Short: "Browse, launch and quick-save instances from your VRChat visit history",
		Long: `vrcvisits reads the VRChat client logs, lists the instances you visited
newest first, and can relaunch one or save it as a shortcut.

Without --no-gui the filtered history is printed as a numbered list.
With --no-gui the visit at --index is launched, or saved with --quick-save
(client shortcut) or --quick-save-http (browser shortcut).`,
		Version:       version.String(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRoot(cmd, f, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVar(&f.ignorePublic, "ignore-public", false, "hide public, publicly named and unrecognized instances")
	pf.StringSliceVar(&f.ignoreWorlds, "ignore-worlds", nil, "comma-separated world ids to hide (wrld_...)")
	pf.StringVar(&f.logDir, "log-dir", "", "VRChat log directory (default: auto-detect)")
	pf.BoolVar(&f.noDialog, "no-dialog", false, "with --no-gui, ring the terminal bell instead of printing messages")
	pf.BoolVar(&f.verbose, "verbose", false, "enable debug logging")

	lf := cmd.Flags()
	lf.IntVar(&f.ignoreByTime, "ignore-by-time", 0, "hide visits older than this many minutes (0 keeps all)")
	lf.IntVar(&f.index, "index", 0, "with --no-gui, the list position to act on")
	lf.BoolVar(&f.noGUI, "no-gui", false, "act on --index instead of listing")
	lf.BoolVar(&f.quickSave, "quick-save", false, "with --no-gui, save a client shortcut")
	lf.BoolVar(&f.quickSaveHTTP, "quick-save-http", false, "with --no-gui, save a browser shortcut")
	lf.BoolVar(&f.killVRC, "kill-vrc", false, "stop a running client before launching")
	lf.StringVar(&f.saveDir, "save-dir", "", "quick-save directory (default: saves next to the executable)")

	cmd.SetOut(c.stdout)
	cmd.SetErr(c.stderr)
	cmd.SetVersionTemplate(appinfo.AppName + " {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		noGUI, _ := cmd.Flags().GetBool("no-gui")
		noDialog, _ := cmd.Flags().GetBool("no-dialog")
		oerr := &optionError{Arg: err.Error()}
		c.reporter(noGUI && noDialog, c.logger(false)).Show(describe(oerr))
		return oerr
	})

	cmd.AddCommand(c.watchCmd(f), c.configCmd())
	return cmd
}

func (c *cli) runRoot(cmd *cobra.Command, f *rootFlags, args []string) error {
	logger := c.logger(f.verbose)
	cfg := c.loadConfig()
	s := f.settings(cmd, cfg)
	rep := c.reporter(f.noGUI && s.noDialog, logger)

	if err := c.root(cmd.Context(), f, s, args, logger); err != nil {
		rep.Show(describe(err))
		return err
	}
	return nil
}

func (c *cli) root(ctx context.Context, f *rootFlags, s settings, args []string, logger *slog.Logger) error {
	if err := f.validate(); err != nil {
		return err
	}
	for _, arg := range args {
		if info, err := os.Stat(arg); err != nil || !info.Mode().IsRegular() {
			return &optionError{Arg: arg}
		}
	}

	scanner := logscan.NewScanner(logscan.WithLogger(logger))
	history := app.NewHistoryService(scanner, app.WithClock(c.clock), app.WithLogger(logger))
	result, err := history.Load(ctx, app.HistoryRequest{
		Paths:  args,
		LogDir: s.logDir,
		Filter: s.filter,
	})
	if err != nil {
		return err
	}

	if !f.noGUI {
		newPresenter(c.stdout, c.clock).list(result.Visits)
		return nil
	}

	v, err := result.Visits.At(f.index)
	if err != nil {
		return &indexError{Index: f.index, Err: err}
	}

	if f.quickSave || f.quickSaveHTTP {
		variant := shortcut.Direct
		if f.quickSaveHTTP {
			variant = shortcut.Web
		}
		return c.quickSave(ctx, v, variant, s, logger)
	}

	svc := app.LaunchService{Launcher: c.newLauncher(logger)}
	return svc.Launch(ctx, v, f.killVRC)
}

func (c *cli) quickSave(ctx context.Context, v visit.Visit, variant shortcut.Variant, s settings, logger *slog.Logger) error {
	dir, err := config.SaveDir(config.Config{SaveDir: s.saveDir})
	if err != nil {
		return &quickSaveError{Err: err}
	}
	saver := shortcut.NewSaver(dir,
		shortcut.WithClock(c.clock),
		shortcut.WithLogger(logger),
	)
	action, err := app.NewSaveService(saver).Save(ctx, v, variant)
	if err != nil {
		return &quickSaveError{Err: err}
	}
	logger.Debug("quick save done", "action", action.Kind.String(), "name", action.Name, "dir", dir)
	return nil
}
