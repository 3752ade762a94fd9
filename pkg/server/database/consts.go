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

const (
	// RoleUser is the default role for a registered user
	RoleUser = "user"
	// RoleLibrarian is the role for a user that curates the catalog
	RoleLibrarian = "librarian"
	// RoleAdmin is the role for an administrator
	RoleAdmin = "admin"
)

const (
	// UserBookStatusToRead indicates that the user plans to read the book
	UserBookStatusToRead = "TO_READ"
	// UserBookStatusReading indicates that the user is reading the book
	UserBookStatusReading = "READING"
	// UserBookStatusFinished indicates that the user finished the book
	UserBookStatusFinished = "FINISHED"
)

// Roles is the closed set of user roles
var Roles = []string{RoleUser, RoleLibrarian, RoleAdmin}

// UserBookStatuses is the closed set of reading statuses
var UserBookStatuses = []string{
	UserBookStatusToRead,
	UserBookStatusReading,
	UserBookStatusFinished,
}

// ValidRole checks if the given string is a known role
func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}

	return false
}

// ValidUserBookStatus checks if the given string is a known reading status
func ValidUserBookStatus(status string) bool {
	for _, s := range UserBookStatuses {
		if s == status {
			return true
		}
	}

	return false
}
