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

package database

import (
	"github.com/ElzarU/Onlibry/pkg/server/database/migrations"
	"github.com/ElzarU/Onlibry/pkg/server/log"
	"github.com/pkg/errors"
	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/gorm"
)

var (
	// MigrationTableName is the name of the table that keeps track of migrations
	MigrationTableName = "migrations"
)

// Migrate applies the embedded SQL migrations that are not covered by
// the model definitions, such as secondary indexes.
func Migrate(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "getting sql db")
	}

	migrate.SetTable(MigrationTableName)

	source := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrations.Files,
		Root:       ".",
	}

	// sql-migrate names the sqlite dialect after the driver
	dialect := db.Dialector.Name()
	if dialect == "sqlite" {
		dialect = "sqlite3"
	}

	n, err := migrate.Exec(sqlDB, dialect, source, migrate.Up)
	if err != nil {
		return errors.Wrap(err, "running migrations")
	}

	if n > 0 {
		log.WithFields(log.Fields{
			"count": n,
		}).Info("applied migrations")
	}

	return nil
}
