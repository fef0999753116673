// Package cmd provides the root command and CLI setup for cisolate.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cisolate/cisolate/internal/adapter"
	"github.com/cisolate/cisolate/internal/controller"
	"github.com/cisolate/cisolate/internal/domain"
	m "github.com/cisolate/cisolate/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var parserAdapter adapter.CParserAdapter
var scanner *domain.Scanner
var analyzer *domain.Analyzer
var assembler *domain.Assembler
var workflow *domain.Workflow
var ui controller.UI

// outRootFlag overrides the output root for generated test packages.
var outRootFlag string

// verboseFlag raises the log level to debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	conv := domain.DefaultConventions()
	ui = controller.NewSimpleUI(rootCmd)
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	parserAdapter = adapter.NewTreeSitterCParserAdapter()
	scanner = domain.NewScanner(fsAdapter)
	analyzer = domain.NewAnalyzer(parserAdapter, fsAdapter)
	assembler = domain.NewAssembler(fsAdapter, conv)
	workflow = domain.NewWorkflow(scanner, analyzer, assembler, conv, ui)
}

const workspaceLayoutHelp = `The workspace path is the directory the build lives in; analysis scans its
sibling directories pltf/ and cfg/, and generated packages land in the
sibling unitTest/ directory unless --out-root points elsewhere.

Extra parser flags can be passed through verbatim after a "--" separator.`

const rootLongDescription = `Cisolate isolates single C functions so they can be compiled and tested
independently of their translation unit. For every function defined under
the analysis roots it generates a self-contained test package: a header,
an implementation carrying the function and its dependencies, synthesized
accessors for static state, and a stub test file.

` + workspaceLayoutHelp

const generateLongDescription = `Analyze every implementation file under the analysis roots and generate a
test package per defined function. Packages whose src/ directory already
has content are skipped so manual edits survive reruns.

` + workspaceLayoutHelp

const listLongDescription = `Analyze the workspace and list every defined function with its dependency
counts and current package state, without writing anything.

` + workspaceLayoutHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cisolate",
		Short: "C function isolation and test package generator",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(verboseConfigKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outRootFlag, outRootFlagName, "o",
			viper.GetString(outRootConfigKey),
			"output root for generated test packages (default: sibling unitTest directory)",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outRootFlagName), outRootConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(verboseConfigKey), "enable debug logging")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), verboseConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// splitWorkspaceArgs separates the positional workspace path from the parser
// flags passed through after the "--" separator.
func splitWorkspaceArgs(cmd *cobra.Command, args []string) (m.Path, []string, error) {
	positional := args
	var extra []string

	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		positional = args[:dash]
		extra = args[dash:]
	}

	if len(positional) != 1 {
		return "", nil, fmt.Errorf("expected exactly one workspace path, got %d", len(positional))
	}

	return m.Path(positional[0]), extra, nil
}
