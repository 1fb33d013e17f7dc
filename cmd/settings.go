package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/repo-insights/internal/config"
)

// stringSetting returns the flag value when it was set explicitly, otherwise
// the config file value, otherwise the flag default.
func stringSetting(cmd *cobra.Command, name, fromConfig string) string {
	v, _ := cmd.Flags().GetString(name)
	if !cmd.Flags().Changed(name) && fromConfig != "" {
		return fromConfig
	}
	return v
}

// intSetting is stringSetting for integer flags; a zero config value counts as unset.
func intSetting(cmd *cobra.Command, name string, fromConfig int) int {
	v, _ := cmd.Flags().GetInt(name)
	if !cmd.Flags().Changed(name) && fromConfig != 0 {
		return fromConfig
	}
	return v
}

func durationSetting(cmd *cobra.Command, name string, cfg *config.Config) (time.Duration, error) {
	v, _ := cmd.Flags().GetDuration(name)
	if cmd.Flags().Changed(name) {
		return v, nil
	}
	fromConfig, err := cfg.TimeoutDuration()
	if err != nil {
		return 0, err
	}
	if fromConfig != 0 {
		return fromConfig, nil
	}
	return v, nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}
