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

package monitoring

import (
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
)

// InitSentry configures error tracking. Without ERROR_TRACKING_DSN it is a no-op
// and Alert only logs.
func InitSentry(release string) bool {
	dsn := os.Getenv("ERROR_TRACKING_DSN")
	if dsn == "" {
		return false
	}
	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "dev"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          release,
		Debug:            environment == "dev",
		AttachStacktrace: true,
		SendDefaultPII:   false,
	})
	if err != nil {
		slog.Error("could not initialize error tracking", "err", err)
		return false
	}
	return true
}

// Alert reports an unexpected error. err may be nil.
func Alert(message string, err error) {
	if err == nil {
		err = errors.New(message)
	}
	evID := sentry.CurrentHub().CaptureException(errors.Wrap(err, message))
	slog.Error("critical error encountered", "msg", message, "error", err, "id (<nil> if not sent to error tracking)", evID)
}

func RecoverAndAlert(message string, recovered any) {
	evID := sentry.CurrentHub().Recover(recovered)
	slog.Error("critical error encountered (recover)", "msg", message, "error", recovered, "id (<nil> if not sent to error tracking)", evID)
}
