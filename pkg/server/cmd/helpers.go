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
	"github.com/ElzarU/Onlibry/pkg/clock"
	"github.com/ElzarU/Onlibry/pkg/server/app"
	"github.com/ElzarU/Onlibry/pkg/server/config"
	"github.com/ElzarU/Onlibry/pkg/server/database"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func initDB(cfg config.Config) (*gorm.DB, error) {
	var db *gorm.DB
	if cfg.UsePostgres() {
		db = database.OpenPostgres(cfg.DatabaseURL)
	} else {
		db = database.Open(cfg.DBPath)
	}

	database.InitSchema(db)
	if err := database.Migrate(db); err != nil {
		return nil, errors.Wrap(err, "running migrations")
	}

	return db, nil
}

func initApp(cfg config.Config) (app.App, error) {
	db, err := initDB(cfg)
	if err != nil {
		return app.App{}, err
	}

	return app.App{
		DB:                  db,
		Clock:               clock.New(),
		AppEnv:              cfg.AppEnv,
		WebURL:              cfg.WebURL,
		DisableRegistration: cfg.DisableRegistration,
		Port:                cfg.Port,
		DBPath:              cfg.DBPath,
	}, nil
}

// setupApp creates a config from the given params, initializes the app
// and returns a cleanup function that closes the database
func setupApp(p config.Params) (*app.App, func(), error) {
	cfg, err := config.New(p)
	if err != nil {
		return nil, nil, errors.Wrap(err, "loading config")
	}

	a, err := initApp(cfg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "initializing app")
	}

	cleanup := func() {
		sqlDB, err := a.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	return &a, cleanup, nil
}
