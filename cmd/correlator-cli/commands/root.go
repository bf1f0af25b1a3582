// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/l3montree-dev/vulncorrelator/config"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

const defaultConfigFilename = ".correlator"

var rootCmd = NewRootCommand()

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		SilenceUsage:      true,
		Use:               "correlator-cli",
		Short:             "Inspect versions, identities and stored sbom graphs",
		Version:           config.Version,
		DisableAutoGenTag: true,
		Long: `correlator-cli compares versions, matches version ranges and inspects package
and platform identities offline. Commands touching stored advisories or sboms use the
same POSTGRES_* environment as the server. Configuration can be provided via a
./.correlator config file or environment variables (prefix CORRELATOR_).`,
		Example: `  # Compare two maven versions
  correlator-cli compare maven 1.0 1.0.1

  # Test a version against a range
  correlator-cli match npm 1.5.0 --low 1.0.0 --high 2.0.0

  # Correlate a purl against the stored advisories
  correlator-cli correlate pkg:maven/org.apache.logging.log4j/log4j-core@2.14.1`,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := cmd.Flags().GetString("logLevel")
			if err != nil {
				return err
			}
			var l slog.Level
			if err := l.UnmarshalText([]byte(level)); err != nil {
				l = slog.LevelInfo
			}
			initLogger(l)

			return initializeConfig(cmd)
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.correlator.yaml)")
	root.PersistentFlags().StringP("logLevel", "l", "info", "Set the log level. Options: debug, info, warn, error")

	root.AddCommand(
		newCompareCommand(),
		newMatchCommand(),
		newPurlCommand(),
		newCpeCommand(),
		newCorrelateCommand(),
		newGraphCommand(),
		newMigrateCommand(),
	)
	return root
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initLogger(level slog.Leveler) {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}),
	))
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(defaultConfigFilename)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/correlator/")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		slog.Debug("no config file found")
	}

	v.SetEnvPrefix("CORRELATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	bindFlags(cmd, v)

	return parseCLIConfig(v)
}

// bindFlags applies config file and environment values to flags the user did not set.
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && v.IsSet(f.Name) {
			cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))) // nolint: errcheck
		}
		if err := v.BindPFlag(f.Name, f); err != nil {
			slog.Error("could not bind flag to viper", "err", err)
		}
	})
}
