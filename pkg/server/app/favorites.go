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
)

// GetFavorites returns the favorites of the given user, newest first.
// Rows of other users are never returned.
func (a *App) GetFavorites(user database.User) ([]database.Favorite, error) {
	var favorites []database.Favorite
	err := a.DB.Preload("Book").
		Where("user_id = ?", user.ID).
		Order("id DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, pkgErrors.Wrap(err, "finding favorites")
	}

	return favorites, nil
}

// GetFavorite returns the favorite with the given id if it belongs to
// the given user. A favorite of another user is indistinguishable from
// a missing one.
func (a *App) GetFavorite(user database.User, id int) (database.Favorite, error) {
	var favorite database.Favorite
	err := a.DB.Where("id = ?", id).First(&favorite).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Favorite{}, ErrNotFound
	} else if err != nil {
		return database.Favorite{}, pkgErrors.Wrap(err, "finding favorite")
	}

	if ok := permissions.ViewFavorite(&user, favorite); !ok {
		return database.Favorite{}, ErrNotFound
	}

	return favorite, nil
}

// CreateFavorite marks the given book as a favorite of the given user.
// The owner always comes from the caller's identity. Favoriting the
// same book twice fails with ErrDuplicateFavorite.
func (a *App) CreateFavorite(user database.User, bookID int) (database.Favorite, error) {
	var count int64
	if err := a.DB.Model(&database.Book{}).Where("id = ?", bookID).Count(&count).Error; err != nil {
		return database.Favorite{}, pkgErrors.Wrap(err, "checking book")
	}
	if count == 0 {
		return database.Favorite{}, ErrNotFound
	}

	favorite := database.Favorite{
		UserID: user.ID,
		BookID: bookID,
	}
	err := a.DB.Create(&favorite).Error

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return database.Favorite{}, ErrDuplicateFavorite
	} else if err != nil {
		return database.Favorite{}, pkgErrors.Wrap(err, "inserting favorite")
	}

	return favorite, nil
}

// DeleteFavorite deletes the given favorite
func (a *App) DeleteFavorite(favorite database.Favorite) error {
	if err := a.DB.Delete(&favorite).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting favorite")
	}

	return nil
}
