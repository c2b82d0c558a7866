package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/akarpov/realocate/internal/model"
	"github.com/akarpov/realocate/internal/resolve"
)

var (
	resolveTimeout time.Duration
	resolveCity    string
	llmEnabled     bool
	llmModel       string
	outputFormat   string
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <text>",
	Short: "Resolve a free-form location mention into a location context",
	Long: `Resolve runs the detection pipeline against one message and prints the
winning location context: coordinates, radius, detection method, and
confidence.

Example:
  realocate resolve "55 Bamburgh Circle unit 1209"
  realocate resolve "King and Bay"
  realocate resolve "anything near M5V 4B2" --format yaml
  realocate resolve "that area by the old distillery" --llm`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().DurationVar(&resolveTimeout, "timeout", 30*time.Second, "overall resolution timeout")
	resolveCmd.Flags().StringVar(&resolveCity, "city", "", "city hint for ambiguous street names")
	resolveCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM place-phrase extraction")
	resolveCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	resolveCmd.Flags().StringVar(&outputFormat, "format", "json", "output format (json, yaml)")
}

// loadConfig builds the runtime configuration from defaults, the config
// file, and environment variables, in ascending priority.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	err := viper.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml" // Config file keys follow the yaml tags
	})
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose
	return cfg, nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	text := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if llmEnabled {
		cfg.LLM.Provider = "openai"
		cfg.LLM.Model = llmModel
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	var hint *model.LocationContext
	if resolveCity != "" {
		hint = &model.LocationContext{Neighborhood: resolveCity}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Resolving: %s\n", text)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n\n", resolveTimeout)
	}

	o := resolve.NewOrchestrator(cfg)
	loc := o.Resolve(ctx, model.LocationQuery{RawText: text, SessionHint: hint})
	if loc == nil {
		fmt.Println("No location detected.")
		return nil
	}

	return printResult(loc, outputFormat)
}

// printResult renders any result value in the requested format
func printResult(v interface{}, format string) error {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Print(string(data))
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Println(string(data))
	}
	return nil
}
