package config

import (
	"fmt"
	"os"

	"github.com/codescope/codescope/constants/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RetrievalConfig tunes the hybrid retrieval engine.
type RetrievalConfig struct {
	Strategy            string  `mapstructure:"strategy"`
	TopK                int     `mapstructure:"top_k"`
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	VectorWeight        float64 `mapstructure:"vector_weight"`
	GraphWeight         float64 `mapstructure:"graph_weight"`
	ExpandRelated       bool    `mapstructure:"expand_related"`
	MaxContentLength    int     `mapstructure:"max_content_length"`
	CacheCapacity       int     `mapstructure:"cache_capacity"`
	TokenBudget         int     `mapstructure:"token_budget"`
}

// EmbeddingConfig points at the external embedding service.
type EmbeddingConfig struct {
	Provider string `mapstructure:"provider"`
	BaseURL  string `mapstructure:"base_url"`
	Model    string `mapstructure:"model"`
	Dim      int    `mapstructure:"dim"`
}

// Config represents the structure of the configuration file
type Config struct {
	Version         string           `mapstructure:"version"`
	Theme           string           `mapstructure:"theme"`
	DisplayMode     string           `mapstructure:"display_mode"`
	IndexPath       string           `mapstructure:"index_path"`
	EnableCache     bool             `mapstructure:"enable_cache"`
	Retrieval       *RetrievalConfig `mapstructure:"retrieval"`
	EmbeddingConfig *EmbeddingConfig `mapstructure:"embedding"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:     "0.4.0",
	Theme:       "dracula",
	DisplayMode: "full",
	IndexPath:   ".codescope-cache/index.db",
	EnableCache: true,
	Retrieval: &RetrievalConfig{
		Strategy:            "hybrid",
		TopK:                5,
		SimilarityThreshold: 0.3,
		VectorWeight:        0.6,
		GraphWeight:         0.4,
		ExpandRelated:       true,
		MaxContentLength:    10000,
		CacheCapacity:       100,
		TokenBudget:         0,
	},
	EmbeddingConfig: &EmbeddingConfig{
		Provider: "ollama",
		BaseURL:  "http://localhost:11434/api",
		Model:    "nomic-embed-text",
		Dim:      768,
	},
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) *Config {
	var config *Config

	setDefaults()

	viper.AutomaticEnv()
	bindEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading config file: %v", err)))
			os.Exit(1)
		}
	} else {
		viper.SetConfigName("codescope-config")
		viper.AddConfigPath(cwd)

		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			viper.SetConfigType("json")
			if err := viper.ReadInConfig(); err != nil {
				fmt.Println(lipgloss.Yellow.Render("No configuration file found, using defaults"))
			}
		}
	}

	bindFlags(rootCmd)

	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(1)
	}

	return config
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("theme", DefaultConfig.Theme)
	viper.SetDefault("display_mode", DefaultConfig.DisplayMode)
	viper.SetDefault("index_path", DefaultConfig.IndexPath)
	viper.SetDefault("enable_cache", DefaultConfig.EnableCache)
	viper.SetDefault("retrieval.strategy", DefaultConfig.Retrieval.Strategy)
	viper.SetDefault("retrieval.top_k", DefaultConfig.Retrieval.TopK)
	viper.SetDefault("retrieval.similarity_threshold", DefaultConfig.Retrieval.SimilarityThreshold)
	viper.SetDefault("retrieval.vector_weight", DefaultConfig.Retrieval.VectorWeight)
	viper.SetDefault("retrieval.graph_weight", DefaultConfig.Retrieval.GraphWeight)
	viper.SetDefault("retrieval.expand_related", DefaultConfig.Retrieval.ExpandRelated)
	viper.SetDefault("retrieval.max_content_length", DefaultConfig.Retrieval.MaxContentLength)
	viper.SetDefault("retrieval.cache_capacity", DefaultConfig.Retrieval.CacheCapacity)
	viper.SetDefault("retrieval.token_budget", DefaultConfig.Retrieval.TokenBudget)
	viper.SetDefault("embedding.provider", DefaultConfig.EmbeddingConfig.Provider)
	viper.SetDefault("embedding.base_url", DefaultConfig.EmbeddingConfig.BaseURL)
	viper.SetDefault("embedding.model", DefaultConfig.EmbeddingConfig.Model)
	viper.SetDefault("embedding.dim", DefaultConfig.EmbeddingConfig.Dim)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("theme", "THEME")
	_ = viper.BindEnv("display_mode", "DISPLAY_MODE")
	_ = viper.BindEnv("index_path", "INDEX_PATH")
	_ = viper.BindEnv("enable_cache", "ENABLE_CACHE")
	_ = viper.BindEnv("retrieval.strategy", "STRATEGY")
	_ = viper.BindEnv("retrieval.top_k", "TOP_K")
	_ = viper.BindEnv("retrieval.token_budget", "TOKEN_BUDGET")
	_ = viper.BindEnv("embedding.base_url", "EMBEDDING_BASE_URL")
	_ = viper.BindEnv("embedding.model", "EMBEDDING_MODEL")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
	_ = viper.BindPFlag("display_mode", rootCmd.PersistentFlags().Lookup("display_mode"))
	_ = viper.BindPFlag("index_path", rootCmd.PersistentFlags().Lookup("index_path"))
	_ = viper.BindPFlag("enable_cache", rootCmd.PersistentFlags().Lookup("enable_cache"))
	_ = viper.BindPFlag("retrieval.strategy", rootCmd.PersistentFlags().Lookup("strategy"))
	_ = viper.BindPFlag("retrieval.top_k", rootCmd.PersistentFlags().Lookup("top_k"))
	_ = viper.BindPFlag("retrieval.similarity_threshold", rootCmd.PersistentFlags().Lookup("similarity_threshold"))
	_ = viper.BindPFlag("retrieval.vector_weight", rootCmd.PersistentFlags().Lookup("vector_weight"))
	_ = viper.BindPFlag("retrieval.graph_weight", rootCmd.PersistentFlags().Lookup("graph_weight"))
	_ = viper.BindPFlag("retrieval.token_budget", rootCmd.PersistentFlags().Lookup("token_budget"))
	_ = viper.BindPFlag("embedding.base_url", rootCmd.PersistentFlags().Lookup("embedding_base_url"))
	_ = viper.BindPFlag("embedding.model", rootCmd.PersistentFlags().Lookup("embedding_model"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Set customize theme for rendering retrieved code. (e.g., 'dracula', 'light', 'dark')")
	rootCmd.PersistentFlags().String("display_mode", DefaultConfig.DisplayMode, "Set file display mode: 'info' (file info only), 'relevant' (structure summary), 'full' (complete file content)")
	rootCmd.PersistentFlags().String("index_path", DefaultConfig.IndexPath, "Path of the semantic index database.")
	rootCmd.PersistentFlags().Bool("enable_cache", DefaultConfig.EnableCache, "Enable or disable scan result caching for improved performance")

	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")

	rootCmd.PersistentFlags().String("strategy", DefaultConfig.Retrieval.Strategy, "Retrieval strategy: 'vector', 'graph', 'hybrid' or 'smart'.")
	rootCmd.PersistentFlags().Int("top_k", DefaultConfig.Retrieval.TopK, "Number of files to retrieve.")
	rootCmd.PersistentFlags().Float64("similarity_threshold", DefaultConfig.Retrieval.SimilarityThreshold, "Minimum semantic similarity for a vector hit.")
	rootCmd.PersistentFlags().Float64("vector_weight", DefaultConfig.Retrieval.VectorWeight, "Weight of the semantic score in hybrid fusion.")
	rootCmd.PersistentFlags().Float64("graph_weight", DefaultConfig.Retrieval.GraphWeight, "Weight of the graph score in hybrid fusion.")
	rootCmd.PersistentFlags().Int("token_budget", DefaultConfig.Retrieval.TokenBudget, "Approximate token budget for the assembled context (0 disables trimming).")

	rootCmd.PersistentFlags().String("embedding_base_url", DefaultConfig.EmbeddingConfig.BaseURL, "Base URL of the embedding provider (e.g., default is 'http://localhost:11434/api').")
	rootCmd.PersistentFlags().String("embedding_model", DefaultConfig.EmbeddingConfig.Model, "Model used for embeddings, such as 'nomic-embed-text'.")
}
