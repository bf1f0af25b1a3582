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
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type cliConfig struct {
	Output    string `mapstructure:"output"`
	Depth     int    `mapstructure:"depth"`
	Format    string `mapstructure:"format"`
	VexAuthor string `mapstructure:"vex-author"`
}

var runtimeConfig cliConfig

var validOutputs = map[string]bool{"": true, "table": true, "json": true, "openvex": true}

func parseCLIConfig(v *viper.Viper) error {
	runtimeConfig = cliConfig{Depth: -1}
	if err := v.Unmarshal(&runtimeConfig); err != nil {
		return errors.Wrap(err, "could not parse configuration")
	}
	if !validOutputs[runtimeConfig.Output] {
		return errors.Errorf("unknown output %q, expected table, json or openvex", runtimeConfig.Output)
	}
	if runtimeConfig.VexAuthor == "" {
		runtimeConfig.VexAuthor = "correlator-cli"
	}
	return nil
}
