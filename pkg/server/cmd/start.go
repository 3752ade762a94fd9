/* Copyright 2025 Onlibry Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmd

import (
	"fmt"
	"net/http"

	"github.com/ElzarU/Onlibry/pkg/server/buildinfo"
	"github.com/ElzarU/Onlibry/pkg/server/config"
	"github.com/ElzarU/Onlibry/pkg/server/controllers"
	"github.com/ElzarU/Onlibry/pkg/server/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newStartCmd() *cobra.Command {
	var (
		appEnv              string
		port                string
		webURL              string
		dbPath              string
		databaseURL         string
		disableRegistration bool
		logLevel            string
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New(config.Params{
				AppEnv:              appEnv,
				Port:                port,
				WebURL:              webURL,
				DBPath:              dbPath,
				DatabaseURL:         databaseURL,
				DisableRegistration: disableRegistration,
				LogLevel:            logLevel,
			})
			if err != nil {
				return errors.Wrap(err, "loading config")
			}

			log.SetLevel(cfg.LogLevel)

			a, err := initApp(cfg)
			if err != nil {
				return err
			}
			defer func() {
				sqlDB, err := a.DB.DB()
				if err == nil {
					sqlDB.Close()
				}
			}()

			ctl := controllers.New(&a)
			rc := controllers.RouteConfig{
				APIRoutes:   controllers.NewAPIRoutes(&a, ctl),
				Controllers: ctl,
			}

			r, err := controllers.NewRouter(&a, rc)
			if err != nil {
				return errors.Wrap(err, "initializing router")
			}

			log.WithFields(log.Fields{
				"version": buildinfo.Version,
				"port":    cfg.Port,
			}).Info("Onlibry server starting")

			return http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r)
		},
	}

	cmd.Flags().StringVar(&appEnv, "appEnv", "", "Application environment (env: APP_ENV, default: PRODUCTION)")
	cmd.Flags().StringVar(&port, "port", "", "Server port (env: PORT, default: 3001)")
	cmd.Flags().StringVar(&webURL, "webUrl", "", "Full URL to server without trailing slash (env: WebURL, default: http://localhost:3001)")
	cmd.Flags().StringVar(&dbPath, "dbPath", "", "Path to SQLite database file (env: DBPath, default: $XDG_DATA_HOME/onlibry/server.db)")
	cmd.Flags().StringVar(&databaseURL, "databaseUrl", "", "PostgreSQL connection string (env: DATABASE_URL, overrides dbPath)")
	cmd.Flags().BoolVar(&disableRegistration, "disableRegistration", false, "Disable user registration (env: DisableRegistration, default: false)")
	cmd.Flags().StringVar(&logLevel, "logLevel", "", "Log level: debug, info, warn, or error (env: LOG_LEVEL, default: info)")

	return cmd
}
