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
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is an error for a nonexistent resource
	ErrNotFound = errors.New("not found")
	// ErrLoginInvalid is an error for invalid credentials
	ErrLoginInvalid = errors.New("Wrong email and password combination")
	// ErrEmailRequired is an error for missing email
	ErrEmailRequired = errors.New("Please enter an email")
	// ErrPasswordRequired is an error for missing password
	ErrPasswordRequired = errors.New("Please enter a password")
	// ErrPasswordTooShort is an error for a password that is too short
	ErrPasswordTooShort = errors.New("Password should be longer than 8 characters")
	// ErrPasswordConfirmationMismatch is an error for mismatched password confirmation
	ErrPasswordConfirmationMismatch = errors.New("Password and its confirmation do not match")
	// ErrDuplicateEmail is an error for an email that is already registered
	ErrDuplicateEmail = errors.New("Email is already registered")
	// ErrDuplicateAuthor is an error for an author name that is already taken
	ErrDuplicateAuthor = errors.New("An author with the given name already exists")
	// ErrDuplicateGenre is an error for a genre name that is already taken
	ErrDuplicateGenre = errors.New("A genre with the given name already exists")
	// ErrDuplicateReview is an error for reviewing the same book twice
	ErrDuplicateReview = errors.New("The book was already reviewed by the user")
	// ErrDuplicateFavorite is an error for favoriting the same book twice
	ErrDuplicateFavorite = errors.New("The book is already in the user's favorites")
)

// ValidationError is an error for a malformed or out-of-range field
// in an incoming request
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, reason string) ValidationError {
	return ValidationError{Field: field, Reason: reason}
}

// IsValidationError checks if the given error is a validation error
func IsValidationError(err error) bool {
	_, ok := errors.Cause(err).(ValidationError)
	return ok
}

// IsConflict checks if the given error indicates a uniqueness violation
func IsConflict(err error) bool {
	cause := errors.Cause(err)

	return cause == ErrDuplicateEmail ||
		cause == ErrDuplicateAuthor ||
		cause == ErrDuplicateGenre ||
		cause == ErrDuplicateReview ||
		cause == ErrDuplicateFavorite
}
