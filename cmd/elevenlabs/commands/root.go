package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/longcipher/elevenlabs-go/pkg/cli"
)

var (
	// Global flags
	cfgFile     string
	contextName string
	outputFile  string
	inputFile   string
	outputJSON  bool
	verbose     bool

	// Global configuration
	globalConfig *cli.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "elevenlabs",
	Short: "ElevenLabs API CLI tool",
	Long: `ElevenLabs CLI - A command line interface for the ElevenLabs API.

This tool allows you to interact with ElevenLabs services including:
  - Text-to-speech synthesis (sync and streaming)
  - Voice management (list, clone, edit, delete)
  - Speech-to-text transcription
  - Sound effect generation
  - Generation history
  - Conversational AI agents

Configuration is stored in ~/.elevenlabs/config.yaml and supports multiple
contexts, similar to kubectl's context management.

Examples:
  # Set up a new context
  elevenlabs config add-context myctx --api-key YOUR_API_KEY

  # Use context to run commands
  elevenlabs -c myctx tts synthesize -f request.yaml -o out.mp3

  # Pipe output to another command
  elevenlabs -c myctx voices list --json | jq '.[0].voice_id'
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "", "", "config file (default is ~/.elevenlabs/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&contextName, "context", "c", "", "context name to use")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	rootCmd.PersistentFlags().StringVarP(&inputFile, "file", "f", "", "input request file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output as JSON (for piping)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(ttsCmd)
	rootCmd.AddCommand(voicesCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(sttCmd)
	rootCmd.AddCommand(soundCmd)
	rootCmd.AddCommand(agentsCmd)
}

func initConfig() {
	var err error
	globalConfig, err = cli.LoadConfigWithPath(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}

// getConfig returns the global configuration
func getConfig() *cli.Config {
	return globalConfig
}

// getContext returns the context configuration to use
func getContext() (*cli.Context, error) {
	cfg := getConfig()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}

	ctx, err := cfg.ResolveContext(contextName)
	if err != nil {
		if contextName == "" {
			return nil, fmt.Errorf("no context specified. Use -c flag or set a default context with 'elevenlabs config use-context'")
		}
		return nil, err
	}

	return ctx, nil
}

// getInputFile returns the input file path
func getInputFile() string {
	return inputFile
}

// getOutputFile returns the output file path
func getOutputFile() string {
	return outputFile
}

// isJSONOutput returns whether output should be JSON
func isJSONOutput() bool {
	return outputJSON
}

// outputResult outputs the result using cli package
func outputResult(result any, outputPath string, asJSON bool) error {
	format := cli.FormatYAML
	if asJSON {
		format = cli.FormatJSON
	}
	return cli.Output(result, cli.OutputOptions{
		Format: format,
		File:   outputPath,
	})
}

// printVerbose prints verbose output if enabled
func printVerbose(format string, args ...any) {
	cli.PrintVerbose(verbose, format, args...)
}
