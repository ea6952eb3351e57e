// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the review-forms CLI.
// See docs/ARCHITECTURE § CLI Surface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the review-forms CLI.
var rootCmd = &cobra.Command{
	Use:   "review-forms",
	Short: "Generate fillable end-of-year mentoring review documents",
	Long: `review-forms turns markdown content files into typeset PDF documents for
end-of-year mentoring reviews: one meeting script per participant with
fillable answer fields, and a printable skills rating sheet.

Content lives in markdown (script.md and skills.md under the content
directory); generated PDFs, kept LaTeX sources, and the field manifest land
in the output directory. Each stage is a subcommand: preview, generate,
and fields.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./review-forms.yaml or ~/.config/review-forms/config.yaml)")
	rootCmd.PersistentFlags().String("content-dir", "content", "directory holding script.md and skills.md")
	rootCmd.PersistentFlags().String("output-dir", "outputs", "directory for generated PDFs and the field manifest")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("review-forms")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "review-forms"))
		}
	}

	viper.SetEnvPrefix("REVIEW_FORMS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// Settings resolve in precedence order: an explicitly set flag wins, then a
// config file or REVIEW_FORMS_* environment value, then the flag default.

func stringSetting(cmd *cobra.Command, key string) string {
	if !cmd.Flags().Changed(key) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(key)
	return v
}

func intSetting(cmd *cobra.Command, key string) int {
	if !cmd.Flags().Changed(key) && viper.IsSet(key) {
		return viper.GetInt(key)
	}
	v, _ := cmd.Flags().GetInt(key)
	return v
}

func boolSetting(cmd *cobra.Command, key string) bool {
	if !cmd.Flags().Changed(key) && viper.IsSet(key) {
		return viper.GetBool(key)
	}
	v, _ := cmd.Flags().GetBool(key)
	return v
}

func durationSetting(cmd *cobra.Command, key string) time.Duration {
	if !cmd.Flags().Changed(key) && viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	v, _ := cmd.Flags().GetDuration(key)
	return v
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
