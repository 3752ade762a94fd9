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

// GetAuthors returns all authors ordered by name
func (a *App) GetAuthors() ([]database.Author, error) {
	var authors []database.Author
	if err := a.DB.Order("name ASC").Find(&authors).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "finding authors")
	}

	return authors, nil
}

// GetAuthor returns the author with the given id
func (a *App) GetAuthor(id int) (database.Author, error) {
	var author database.Author
	err := a.DB.Where("id = ?", id).First(&author).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Author{}, ErrNotFound
	} else if err != nil {
		return database.Author{}, pkgErrors.Wrap(err, "finding author")
	}

	return author, nil
}

// CreateAuthor creates an author with the given name
func (a *App) CreateAuthor(name string) (database.Author, error) {
	if name == "" {
		return database.Author{}, NewValidationError("name", "is required")
	}

	author := database.Author{Name: name}
	err := a.DB.Create(&author).Error

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return database.Author{}, ErrDuplicateAuthor
	} else if err != nil {
		return database.Author{}, pkgErrors.Wrap(err, "inserting author")
	}

	return author, nil
}

// UpdateAuthor renames the given author
func (a *App) UpdateAuthor(author database.Author, name string) (database.Author, error) {
	if name == "" {
		return author, NewValidationError("name", "is required")
	}

	author.Name = name
	err := a.DB.Save(&author).Error

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return author, ErrDuplicateAuthor
	} else if err != nil {
		return author, pkgErrors.Wrap(err, "updating author")
	}

	return author, nil
}

// DeleteAuthor deletes the given author and unlinks it from any books
func (a *App) DeleteAuthor(author database.Author) error {
	tx := a.DB.Begin()

	if err := tx.Exec("DELETE FROM book_authors WHERE author_id = ?", author.ID).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "unlinking author from books")
	}
	if err := tx.Delete(&author).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting author")
	}

	tx.Commit()

	return nil
}
