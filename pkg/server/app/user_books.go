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
	"github.com/ElzarU/Onlibry/pkg/server/permissions"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetUserBooks returns the reading statuses of the given user, newest
// first. Rows of other users are never returned.
func (a *App) GetUserBooks(user database.User) ([]database.UserBook, error) {
	var userBooks []database.UserBook
	err := a.DB.Preload("Book").
		Where("user_id = ?", user.ID).
		Order("id DESC").
		Find(&userBooks).Error
	if err != nil {
		return nil, pkgErrors.Wrap(err, "finding reading statuses")
	}

	return userBooks, nil
}

// GetUserBook returns the reading status with the given id if it
// belongs to the given user. A row of another user is
// indistinguishable from a missing one.
func (a *App) GetUserBook(user database.User, id int) (database.UserBook, error) {
	var userBook database.UserBook
	err := a.DB.Where("id = ?", id).First(&userBook).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.UserBook{}, ErrNotFound
	} else if err != nil {
		return database.UserBook{}, pkgErrors.Wrap(err, "finding reading status")
	}

	if ok := permissions.ViewUserBook(&user, userBook); !ok {
		return database.UserBook{}, ErrNotFound
	}

	return userBook, nil
}

// SetUserBook records the reading status of the given book for the
// given user. If a row for the (user, book) pair already exists, its
// status is overwritten in place and the existing row is returned with
// its original id and creation time. The insert-or-update is a single
// atomic statement keyed on the pair's unique index, so concurrent
// calls cannot produce duplicate rows.
func (a *App) SetUserBook(user database.User, bookID int, status string) (database.UserBook, error) {
	if !database.ValidUserBookStatus(status) {
		return database.UserBook{}, NewValidationError("status", "must be one of TO_READ, READING, FINISHED")
	}

	var count int64
	if err := a.DB.Model(&database.Book{}).Where("id = ?", bookID).Count(&count).Error; err != nil {
		return database.UserBook{}, pkgErrors.Wrap(err, "checking book")
	}
	if count == 0 {
		return database.UserBook{}, ErrNotFound
	}

	userBook := database.UserBook{
		UserID: user.ID,
		BookID: bookID,
		Status: status,
	}
	err := a.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":     status,
			"updated_at": a.Clock.Now(),
		}),
	}).Create(&userBook).Error
	if err != nil {
		return database.UserBook{}, pkgErrors.Wrap(err, "upserting reading status")
	}

	// Reload so that the returned row carries the original id and
	// creation time when the upsert hit an existing row.
	var ret database.UserBook
	err = a.DB.Where("user_id = ? AND book_id = ?", user.ID, bookID).First(&ret).Error
	if err != nil {
		return database.UserBook{}, pkgErrors.Wrap(err, "reloading reading status")
	}

	return ret, nil
}

// UpdateUserBookStatus updates the status of the given reading status row
func (a *App) UpdateUserBookStatus(userBook database.UserBook, status string) (database.UserBook, error) {
	if !database.ValidUserBookStatus(status) {
		return userBook, NewValidationError("status", "must be one of TO_READ, READING, FINISHED")
	}

	userBook.Status = status
	if err := a.DB.Save(&userBook).Error; err != nil {
		return userBook, pkgErrors.Wrap(err, "updating reading status")
	}

	return userBook, nil
}

// DeleteUserBook deletes the given reading status row
func (a *App) DeleteUserBook(userBook database.UserBook) error {
	if err := a.DB.Delete(&userBook).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting reading status")
	}

	return nil
}
