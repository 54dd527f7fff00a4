package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ppiankov/trustgraph/internal/evidence"
	"github.com/ppiankov/trustgraph/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags
var version = "v0.1.0"

var (
	cfgFile string
	envFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "trustgraph",
	Short: "TrustGraph - Evidence fusion and conflict scoring for claims",
	Long: `TrustGraph scores claims against supplied evidence using subjective logic.

Each piece of evidence becomes an opinion (belief, disbelief, uncertainty),
discounted by the trust placed in its source and fused with the rest.
The result is a verdict (supported, contested, refuted) plus a conflict
report when the evidence disagrees with itself.

TrustGraph measures support, not truth.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "trustgraph %s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.trustgraph/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading TRUSTGRAPH_* variables")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in the dotenv file, config file and ENV variables
func initConfig() {
	// A missing .env is normal.
	_ = godotenv.Load(envFile)

	setDefaults(viper.GetViper(), model.DefaultConfig())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".trustgraph"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	bindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// bindEnv maps TRUSTGRAPH_SCORING_CONFLICT_THRESHOLD to scoring.conflict_threshold
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("TRUSTGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// setDefaults registers every config key so environment variables can
// override keys absent from the config file
func setDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("scoring.conflict_threshold", cfg.Scoring.ConflictThreshold)
	v.SetDefault("scoring.pairwise_threshold", cfg.Scoring.PairwiseThreshold)
	v.SetDefault("scoring.default_weight", cfg.Scoring.DefaultWeight)
	v.SetDefault("scoring.per_source_trust", cfg.Scoring.PerSourceTrust)
	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.dir", cfg.Cache.Dir)
	v.SetDefault("cache.memory_ttl", cfg.Cache.MemoryTTL)
	v.SetDefault("cache.disk_ttl", cfg.Cache.DiskTTL)
	v.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	v.SetDefault("output.verbose", cfg.Output.Verbose)
	v.SetDefault("output.include_footer", cfg.Output.IncludeFooter)
	v.SetDefault("output.jsonld", cfg.Output.JSONLD)
	v.SetDefault("authority.primary_domains", cfg.Authority.PrimaryDomains)
	v.SetDefault("authority.secondary_domains", cfg.Authority.SecondaryDomains)
	v.SetDefault("authority.primary_trust", cfg.Authority.PrimaryTrust)
	v.SetDefault("authority.secondary_trust", cfg.Authority.SecondaryTrust)
	v.SetDefault("authority.tertiary_trust", cfg.Authority.TertiaryTrust)
}

// loadConfig resolves defaults, config file and environment into a Config
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *model.Config) error {
	s := cfg.Scoring
	if s.ConflictThreshold < 0 || s.ConflictThreshold > 1 {
		return fmt.Errorf("scoring.conflict_threshold must be in [0,1], got %v", s.ConflictThreshold)
	}
	if s.PairwiseThreshold < 0 || s.PairwiseThreshold > 1 {
		return fmt.Errorf("scoring.pairwise_threshold must be in [0,1], got %v", s.PairwiseThreshold)
	}
	if !(s.DefaultWeight >= evidence.MinWeight) {
		return fmt.Errorf("scoring.default_weight must be at least %v, got %v", evidence.MinWeight, s.DefaultWeight)
	}
	if cfg.Concurrency.Workers < 1 {
		return fmt.Errorf("concurrency.workers must be at least 1, got %d", cfg.Concurrency.Workers)
	}
	a := cfg.Authority
	for name, v := range map[string]float64{
		"primary_trust":   a.PrimaryTrust,
		"secondary_trust": a.SecondaryTrust,
		"tertiary_trust":  a.TertiaryTrust,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("authority.%s must be in [0,1], got %v", name, v)
		}
	}
	return nil
}

// newLogger returns a development logger at debug level when verbose,
// otherwise a production logger at info level
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	return cfg.Build()
}
