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

package app

import (
	"errors"

	"github.com/ElzarU/Onlibry/pkg/server/database"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// GetGenres returns all genres ordered by name
func (a *App) GetGenres() ([]database.Genre, error) {
	var genres []database.Genre
	if err := a.DB.Order("name ASC").Find(&genres).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "finding genres")
	}

	return genres, nil
}

// GetGenre returns the genre with the given id
func (a *App) GetGenre(id int) (database.Genre, error) {
	var genre database.Genre
	err := a.DB.Where("id = ?", id).First(&genre).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Genre{}, ErrNotFound
	} else if err != nil {
		return database.Genre{}, pkgErrors.Wrap(err, "finding genre")
	}

	return genre, nil
}

// CreateGenre creates a genre with the given name
func (a *App) CreateGenre(name string) (database.Genre, error) {
	if name == "" {
		return database.Genre{}, NewValidationError("name", "is required")
	}

	genre := database.Genre{Name: name}
	err := a.DB.Create(&genre).Error

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return database.Genre{}, ErrDuplicateGenre
	} else if err != nil {
		return database.Genre{}, pkgErrors.Wrap(err, "inserting genre")
	}

	return genre, nil
}

// UpdateGenre renames the given genre
func (a *App) UpdateGenre(genre database.Genre, name string) (database.Genre, error) {
	if name == "" {
		return genre, NewValidationError("name", "is required")
	}

	genre.Name = name
	err := a.DB.Save(&genre).Error

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return genre, ErrDuplicateGenre
	} else if err != nil {
		return genre, pkgErrors.Wrap(err, "updating genre")
	}

	return genre, nil
}

// DeleteGenre deletes the given genre and unlinks it from any books
func (a *App) DeleteGenre(genre database.Genre) error {
	tx := a.DB.Begin()

	if err := tx.Exec("DELETE FROM book_genres WHERE genre_id = ?", genre.ID).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "unlinking genre from books")
	}
	if err := tx.Delete(&genre).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting genre")
	}

	tx.Commit()

	return nil
}
