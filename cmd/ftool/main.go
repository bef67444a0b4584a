package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ftool/internal/app"
	"ftool/internal/config"
	"ftool/internal/domain"
	appErrors "ftool/internal/errors"
	"ftool/internal/i18n"
	infrafs "ftool/internal/infra/fs"
	"ftool/internal/infra/trash"
	"ftool/internal/logging"
	"ftool/internal/presentation"
	"ftool/internal/tui"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv))
}

type cli struct {
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	getenv   func(string) string
	messages *i18n.Messages
	exitCode int
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) int {
	cfg := config.Load(getenv)
	c := &cli{
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		getenv:   getenv,
		messages: i18n.Resolve(cfg.Locale),
	}

	root := c.newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	return c.exitCode
}

func (c *cli) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ftool",
		Short:         "Unified file operation tool with auto-mkdir and progress display",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		c.newMoveCmd(),
		c.newCopyCmd(),
		c.newRenameCmd(),
		c.newRemoveCmd(),
		c.newBackupCmd(),
	)
	return root
}

type opFlags struct {
	mkdir     bool
	force     bool
	verbose   bool
	noClobber bool
}

func (f *opFlags) register(cmd *cobra.Command, withMkdir bool) {
	if withMkdir {
		cmd.Flags().BoolVarP(&f.mkdir, "mkdir", "p", false, "automatically create target directories")
	}
	cmd.Flags().BoolVarP(&f.force, "force", "f", false, "force overwrite existing files")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "show verbose operation information")
	cmd.Flags().BoolVarP(&f.noClobber, "no-clobber", "n", false, "never overwrite existing files")
}

func (c *cli) newMoveCmd() *cobra.Command {
	var flags opFlags
	cmd := &cobra.Command{
		Use:     "move SOURCE... TARGET",
		Aliases: []string{"mv"},
		Short:   "Move files or directories to a target directory",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.execute(domain.VerbMove, args[:len(args)-1], args[len(args)-1], flags)
		},
	}
	flags.register(cmd, true)
	return cmd
}

func (c *cli) newCopyCmd() *cobra.Command {
	var flags opFlags
	cmd := &cobra.Command{
		Use:     "copy SOURCE... TARGET",
		Aliases: []string{"cp"},
		Short:   "Copy files or directories to a target directory",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.execute(domain.VerbCopy, args[:len(args)-1], args[len(args)-1], flags)
		},
	}
	flags.register(cmd, true)
	return cmd
}

func (c *cli) newRenameCmd() *cobra.Command {
	var flags opFlags
	cmd := &cobra.Command{
		Use:     "rename SOURCE NEWNAME",
		Aliases: []string{"ren"},
		Short:   "Rename a file or directory within its own directory",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.execute(domain.VerbRename, args[:1], args[1], flags)
		},
	}
	flags.register(cmd, false)
	return cmd
}

func (c *cli) newRemoveCmd() *cobra.Command {
	var flags opFlags
	cmd := &cobra.Command{
		Use:     "remove SOURCE...",
		Aliases: []string{"rm"},
		Short:   "Move files or directories to the trash",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.execute(domain.VerbRemove, args, "", flags)
		},
	}
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "show verbose operation information")
	return cmd
}

func (c *cli) newBackupCmd() *cobra.Command {
	var flags opFlags
	cmd := &cobra.Command{
		Use:     "backup SOURCE...",
		Aliases: []string{"bak"},
		Short:   "Create backup copies of files or directories",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.execute(domain.VerbBackup, args, "", flags)
		},
	}
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "show verbose operation information")
	return cmd
}

// execute wires the engine collaborators and runs one batch. The exit code
// is recorded on the cli so cobra's error path stays reserved for usage
// problems.
func (c *cli) execute(verb domain.Verb, sources []string, dest string, flags opFlags) error {
	printer := presentation.Printer{
		Writer:    c.stdout,
		ErrWriter: c.stderr,
		Messages:  c.messages,
		Verbose:   flags.verbose,
		Verb:      verb,
	}

	absSources := make([]string, len(sources))
	for i, src := range sources {
		abs, err := filepath.Abs(src)
		if err != nil {
			printer.ErrorLine(appErrors.Wrap(appErrors.InvalidRequest, "resolve", src, err))
			c.exitCode = 3
			return nil
		}
		absSources[i] = abs
	}
	// Rename's destination is a bare new name, not a path.
	if verb.NeedsDestinationDir() {
		abs, err := filepath.Abs(dest)
		if err != nil {
			printer.ErrorLine(appErrors.Wrap(appErrors.InvalidRequest, "resolve", dest, err))
			c.exitCode = 3
			return nil
		}
		dest = abs
	}

	logger := logging.New(c.stderr, flags.verbose)
	renderer := tui.NewRenderer(c.stdout)
	prompter := &interruptingPrompter{
		next:     presentation.NewConsolePrompter(c.stdin, c.stdout, c.messages),
		renderer: renderer,
	}

	var trashStore app.Trash
	if verb == domain.VerbRemove {
		if root, err := trash.DefaultRoot(c.getenv); err == nil {
			trashStore = trash.New(root)
		}
	}

	orch := &app.Orchestrator{
		FS:         infrafs.OSFS{},
		Trash:      trashStore,
		Prompter:   prompter,
		Logger:     logger,
		OnProgress: renderer.Handle,
		OnEntry: func(i, n int, plan domain.TransferPlan) {
			renderer.Interrupt()
			printer.EntryLine(i, n, plan)
		},
		OnResult: func(i, n int, res domain.OperationResult) {
			renderer.Interrupt()
			printer.ResultLine(i, n, res)
		},
	}

	req := domain.OperationRequest{
		Verb:        verb,
		Sources:     absSources,
		Destination: dest,
		Options: domain.Options{
			AutoMkdir: flags.mkdir,
			Force:     flags.force,
			Verbose:   flags.verbose,
			NoClobber: flags.noClobber,
		},
	}

	summary, err := orch.Run(context.Background(), req)
	renderer.Close()
	if err != nil {
		printer.ErrorLine(err)
		if appErrors.KindOf(err) == appErrors.InvalidRequest {
			c.exitCode = 3
		} else {
			c.exitCode = 1
		}
		return nil
	}

	printer.Summary(summary)
	c.exitCode = summary.ExitCode()
	return nil
}

// interruptingPrompter clears the in-place progress line before a prompt is
// shown so the question does not collide with the bar.
type interruptingPrompter struct {
	next     app.Prompter
	renderer *tui.Renderer
}

func (p *interruptingPrompter) AskOverwrite(path string) (string, error) {
	p.renderer.Interrupt()
	return p.next.AskOverwrite(path)
}

func (p *interruptingPrompter) ConfirmMkdir(path string) (bool, error) {
	p.renderer.Interrupt()
	return p.next.ConfirmMkdir(path)
}
