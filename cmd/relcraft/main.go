// Package main implements the relcraft CLI.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dthorpe/relcraft/internal/config"
	"github.com/dthorpe/relcraft/internal/conventional"
	"github.com/dthorpe/relcraft/internal/logging"
	"github.com/dthorpe/relcraft/internal/semver"
	"github.com/dthorpe/relcraft/internal/state"
	"github.com/dthorpe/relcraft/internal/step"
)

var rootCmd = &cobra.Command{
	Use:   "relcraft",
	Short: "Release automation for versioned projects",
	Long: `Relcraft reads ` + config.FileName + ` in the current directory and runs
release workflows: bumping versions across files, building changelogs from
conventional commits and change notes, and keeping every versioned file in
agreement.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func main() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(bumpCmd)
	rootCmd.AddCommand(prepareReleaseCmd)
	rootCmd.AddCommand(documentCmd)

	rootCmd.PersistentFlags().Bool("dry-run", false, "describe file changes instead of applying them")
	rootCmd.PersistentFlags().String("prerelease-label", "", "create a pre-release version with this label (e.g. rc)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var runCmd = &cobra.Command{
	Use:   "run <workflow>",
	Short: "Run a workflow declared in " + config.FileName,
	Args:  cobra.ExactArgs(1),
	RunE:  runExecution,
}

func runExecution(cmd *cobra.Command, args []string) error {
	run, cleanup, err := newRun(cmd)
	if err != nil {
		return reportSetupError(err)
	}
	defer cleanup()

	declared, ok := run.Config.Workflow(args[0])
	if !ok {
		return reportSetupError(fmt.Errorf("no workflow named %q (declared: %s)",
			args[0], strings.Join(run.Config.WorkflowNames(), ", ")))
	}
	wf, err := step.FromConfig(declared)
	if err != nil {
		return reportSetupError(err)
	}
	return executeWorkflow(wf, run)
}

var bumpCmd = &cobra.Command{
	Use:   "bump <major|minor|patch|pre:<label>|release>",
	Short: "Bump the package version with an explicit rule",
	Args:  cobra.ExactArgs(1),
	RunE:  bumpExecution,
}

func bumpExecution(cmd *cobra.Command, args []string) error {
	rule, err := semver.ParseRule(args[0])
	if err != nil {
		return reportSetupError(err)
	}
	run, cleanup, err := newRun(cmd)
	if err != nil {
		return reportSetupError(err)
	}
	defer cleanup()

	wf := step.Workflow{Name: "bump", Steps: []step.Step{{Kind: step.KindBumpVersion, Rule: rule}}}
	return executeWorkflow(wf, run)
}

var prepareReleaseCmd = &cobra.Command{
	Use:   "prepare-release",
	Short: "Resolve the next version from changes and update files and changelog",
	Args:  cobra.NoArgs,
	RunE:  prepareReleaseExecution,
}

func prepareReleaseExecution(cmd *cobra.Command, _ []string) error {
	run, cleanup, err := newRun(cmd)
	if err != nil {
		return reportSetupError(err)
	}
	defer cleanup()

	wf := step.Workflow{Name: "prepare-release", Steps: []step.Step{{Kind: step.KindPrepareRelease}}}
	return executeWorkflow(wf, run)
}

var documentCmd = &cobra.Command{
	Use:   "document <breaking|feature|fix|other> <summary>",
	Short: "Record a change note in " + conventional.ChangesDir + "/ for the next release",
	Args:  cobra.ExactArgs(2),
	RunE:  documentExecution,
}

func documentExecution(_ *cobra.Command, args []string) error {
	category, ok := categoryFromName(args[0])
	if !ok {
		return reportSetupError(fmt.Errorf("unknown change type %q (want breaking, feature, fix, or other)", args[0]))
	}
	cwd, err := os.Getwd()
	if err != nil {
		return reportSetupError(err)
	}
	path, err := conventional.WriteChangeFile(cwd, category, args[1])
	if err != nil {
		return reportSetupError(err)
	}
	fmt.Println(renderCreated(path))
	return nil
}

// newRun loads the project configuration from the working directory and
// builds the context the workflow engine threads through its steps. The
// returned cleanup closes the run log.
func newRun(cmd *cobra.Command) (*state.RunType, func(), error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, nil, err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return nil, nil, err
	}
	label, err := cmd.Flags().GetString("prerelease-label")
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cwd)
	if err != nil {
		// The run log is a convenience, not a requirement.
		fmt.Fprintln(os.Stderr, renderWarning(err.Error()))
		logger = nil
	}
	run := state.New(cfg, state.NewSink(dryRun, os.Stdout), logger)
	if label != "" {
		run = run.WithPrereleaseLabel(label)
	}
	return run, func() { logger.Close() }, nil
}

func executeWorkflow(wf step.Workflow, run *state.RunType) error {
	final, stepErr := step.Execute(wf, run)
	if stepErr != nil {
		fmt.Fprintln(os.Stderr, renderStepError(stepErr))
		return stepErr
	}
	if final.PreparedVersion != "" {
		fmt.Println(renderPreparedVersion(final.PreparedVersion, run.Sink.DryRun()))
	}
	return nil
}

// reportSetupError prints errors that happen before any step runs. Workflow
// failures go through renderStepError instead.
func reportSetupError(err error) error {
	cwd, _ := os.Getwd()
	fmt.Fprintln(os.Stderr, renderStepError(step.Wrap(err, cwd)))
	return err
}
