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

// Package permissions defines access checks for the catalog resources
package permissions

import (
	"github.com/ElzarU/Onlibry/pkg/server/database"
)

// IsPrivileged checks if the given role may curate the catalog.
// Only librarians and admins are privileged.
func IsPrivileged(role string) bool {
	switch role {
	case database.RoleLibrarian, database.RoleAdmin:
		return true
	default:
		return false
	}
}

// WriteCatalog checks if the given user can mutate catalog resources:
// authors, genres, and books. Reads are open to anyone.
func WriteCatalog(user *database.User) bool {
	if user == nil {
		return false
	}

	return IsPrivileged(user.Role)
}

// ViewFavorite checks if the given user can view the given favorite
func ViewFavorite(user *database.User, fav database.Favorite) bool {
	if user == nil {
		return false
	}
	if fav.UserID == 0 {
		return false
	}

	return fav.UserID == user.ID
}

// ViewUserBook checks if the given user can view the given reading status
func ViewUserBook(user *database.User, ub database.UserBook) bool {
	if user == nil {
		return false
	}
	if ub.UserID == 0 {
		return false
	}

	return ub.UserID == user.ID
}
