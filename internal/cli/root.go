// internal/cli/root.go
package legalrag

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/legalrag/internal/appconfig"
	"github.com/mwiater/legalrag/internal/logging"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// stringFlags and intFlags map persistent flags onto config keys.
var stringFlags = map[string]string{
	"data":           "dataPath",
	"index":          "indexPath",
	"tokenizer":      "tokenizer",
	"llmURL":         "llmURL",
	"llmModel":       "llmModel",
	"embeddingURL":   "embeddingURL",
	"embeddingModel": "embeddingModel",
	"logFile":        "logFile",
}

var intFlags = map[string]string{
	"topK":      "topK",
	"chunkSize": "chunkSizeTokens",
	"maxTokens": "maxTokens",
	"timeout":   "timeout",
}

// rootCmd answers a single question when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "legalrag [question]",
	Short: "legalrag: question answering over a French legal text",
	Long: `legalrag chunks a legal document, summarizes each chunk with a language model,
retrieves the summaries closest to a question and asks the model to answer in French
from those summaries only. The index is built on first use.`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		if err := ensureConfigLoaded(viper.GetViper(), cfgFile, cmd.Flags().Changed("config")); err != nil {
			return err
		}

		cfg, err := configFromViper(viper.GetViper())
		if err != nil {
			return err
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		currentConfig = &cfg

		logging.SetDebug(cfg.Debug)
		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAsk(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")
	flags.Bool("debug", false, "enable debug logging, including model payloads")
	flags.String("data", "", "path to the source document")
	flags.String("index", "", "path to the index JSON file")
	flags.String("tokenizer", "", "tokenizer used for chunking (tiktoken or words)")
	flags.String("llmURL", "", "chat completions endpoint")
	flags.String("llmModel", "", "chat model name")
	flags.String("embeddingURL", "", "OpenAI-compatible embeddings base URL")
	flags.String("embeddingModel", "", "embedding model name")
	flags.String("logFile", "", "path to the log file")
	flags.Int("topK", 0, "number of summaries retrieved per question")
	flags.Int("chunkSize", 0, "chunk size in tokens")
	flags.Int("maxTokens", 0, "completion token cap for summaries and answers")
	flags.Int("timeout", 0, "HTTP request timeout in seconds (0 = default)")

	_ = viper.BindPFlag("debug", flags.Lookup("debug"))
	for flag, key := range stringFlags {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
	for flag, key := range intFlags {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

// initConfig points viper at the config file and the LEGALRAG_ environment.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	viper.SetEnvPrefix("LEGALRAG")
	viper.AutomaticEnv()
}

// setDefaults registers every config key so environment variables and
// Unmarshal can see it.
func setDefaults(v *viper.Viper) {
	d := appconfig.Defaults()
	v.SetDefault("dataPath", d.DataPath)
	v.SetDefault("indexPath", d.IndexPath)
	v.SetDefault("chunkSizeTokens", d.ChunkSizeTokens)
	v.SetDefault("topK", d.TopK)
	v.SetDefault("llmURL", d.LLMURL)
	v.SetDefault("llmModel", d.LLMModel)
	v.SetDefault("maxTokens", d.MaxTokens)
	v.SetDefault("embeddingURL", d.EmbeddingURL)
	v.SetDefault("embeddingModel", d.EmbeddingModel)
	v.SetDefault("embeddingAPIKey", "")
	v.SetDefault("embeddingBatchSize", d.EmbeddingBatchSize)
	v.SetDefault("tokenizer", d.Tokenizer)
	v.SetDefault("tokenizerEncoding", d.TokenizerEncoding)
	v.SetDefault("timeout", d.TimeoutSeconds)
	v.SetDefault("logFile", "")
	v.SetDefault("debug", false)
	v.SetDefault("languageCheck", d.LanguageCheck)
	v.SetDefault("serveAddr", d.ServeAddr)
}

// ensureConfigLoaded reads the config file. A missing file is only an error
// when the path was given explicitly.
func ensureConfigLoaded(v *viper.Viper, path string, explicit bool) error {
	setDefaults(v)
	if path == "" {
		return nil
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || (errors.Is(err, fs.ErrNotExist) && !explicit) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// configFromViper materializes the merged configuration
// (flags > env > config file > defaults).
func configFromViper(v *viper.Viper) (appconfig.Config, error) {
	var cfg appconfig.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return appconfig.Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Tokenizer = strings.ToLower(strings.TrimSpace(cfg.Tokenizer))
	if err := cfg.Validate(); err != nil {
		return appconfig.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// commandContext returns a context cancelled on interrupt.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt)
}
