package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "recurtool",
	Short: "Inspect and convert calendar recurrence rules",
	Long: "Recurtool parses recurrence rules in the vCalendar 1.0 and iCalendar 2.0\n" +
		"formats, prints upcoming occurrences, and converts rules between formats.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .recurtool.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "", "input rule format: rrule or vcal")
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".recurtool")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("RECURTOOL")
	viper.AutomaticEnv()
	viper.SetDefault("format", "rrule")

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// inputFormat resolves the input format from the flag, the environment
// or the config file, in that order.
func inputFormat(cmd *cobra.Command) string {
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		return f
	}
	return viper.GetString("format")
}
