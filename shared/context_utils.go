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

package shared

import (
	"net/url"

	"github.com/l3montree-dev/vulncorrelator/utils"
)

// GetParam returns the unescaped path parameter without surrounding slashes.
func GetParam(ctx Context, param string) string {
	v := ctx.Param(param)
	if v == "" {
		fallback, ok := ctx.Get(param).(string)
		if !ok {
			return ""
		}
		v = fallback
	}
	if unescaped, err := url.PathUnescape(v); err == nil {
		v = unescaped
	}
	return SanitizeParam(v)
}

// GetDepth reads the depth query parameter. A missing or invalid value means unbounded.
func GetDepth(ctx Context) int {
	return utils.ParseDepth(ctx.QueryParam("depth"))
}
