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
	"github.com/ElzarU/Onlibry/pkg/server/helpers"
	"github.com/ElzarU/Onlibry/pkg/server/log"
	pkgErrors "github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TouchLastLoginAt updates the last login timestamp
func (a *App) TouchLastLoginAt(user database.User, tx *gorm.DB) error {
	t := a.Clock.Now()
	if err := tx.Model(&user).Update("last_login_at", &t).Error; err != nil {
		return pkgErrors.Wrap(err, "updating last_login_at")
	}

	return nil
}

// CreateUser creates a user with the default role
func (a *App) CreateUser(email, password, passwordConfirmation string) (database.User, error) {
	return a.createUser(email, password, passwordConfirmation, database.RoleUser)
}

// CreateUserWithRole creates a user with the given role. It is used for
// out-of-band provisioning of librarians and admins; the registration
// endpoint always assigns the default role.
func (a *App) CreateUserWithRole(email, password, role string) (database.User, error) {
	if !database.ValidRole(role) {
		return database.User{}, NewValidationError("role", "must be one of user, librarian, admin")
	}

	return a.createUser(email, password, password, role)
}

func (a *App) createUser(email, password, passwordConfirmation, role string) (database.User, error) {
	if email == "" {
		return database.User{}, ErrEmailRequired
	}

	if len(password) < 8 {
		return database.User{}, ErrPasswordTooShort
	}

	if password != passwordConfirmation {
		return database.User{}, ErrPasswordConfirmationMismatch
	}

	tx := a.DB.Begin()

	var count int64
	if err := tx.Model(database.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		tx.Rollback()
		return database.User{}, pkgErrors.Wrap(err, "counting user")
	}
	if count > 0 {
		tx.Rollback()
		return database.User{}, ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		tx.Rollback()
		return database.User{}, pkgErrors.Wrap(err, "hashing password")
	}

	uuid, err := helpers.GenUUID()
	if err != nil {
		tx.Rollback()
		return database.User{}, err
	}

	user := database.User{
		UUID:     uuid,
		Email:    database.ToNullString(email),
		Password: database.ToNullString(string(hashedPassword)),
		Role:     role,
	}
	if err = tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return database.User{}, pkgErrors.Wrap(err, "saving user")
	}

	if err := a.TouchLastLoginAt(user, tx); err != nil {
		tx.Rollback()
		return database.User{}, pkgErrors.Wrap(err, "updating last login")
	}

	tx.Commit()

	return user, nil
}

// GetUserByEmail finds a user with the given email
func (a *App) GetUserByEmail(email string) (database.User, error) {
	var user database.User
	err := a.DB.Where("email = ?", email).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.User{}, ErrNotFound
	} else if err != nil {
		return database.User{}, pkgErrors.Wrap(err, "finding user")
	}

	return user, nil
}

// Authenticate authenticates a user
func (a *App) Authenticate(email, password string) (*database.User, error) {
	var user database.User
	err := a.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password.String), []byte(password))
	if err != nil {
		return nil, ErrLoginInvalid
	}

	return &user, nil
}

// SignIn signs in a user
func (a *App) SignIn(user *database.User) (*database.Session, error) {
	err := a.TouchLastLoginAt(*user, a.DB)
	if err != nil {
		log.ErrorWrap(err, "touching login timestamp")
	}

	session, err := a.CreateSession(user.ID)
	if err != nil {
		return nil, pkgErrors.Wrap(err, "creating session")
	}

	return &session, nil
}

// UpdateUserPassword updates the password of the given user
func UpdateUserPassword(tx *gorm.DB, user *database.User, password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return pkgErrors.Wrap(err, "hashing password")
	}

	if err := tx.Model(user).Update("password", database.ToNullString(string(hashedPassword))).Error; err != nil {
		return pkgErrors.Wrap(err, "updating password")
	}

	return nil
}

// DeleteUser deletes the given user along with all rows that belong to
// the user. The referential cleanup is unconditional so that no orphaned
// rows remain.
func (a *App) DeleteUser(user database.User) error {
	tx := a.DB.Begin()

	if err := tx.Where("user_id = ?", user.ID).Delete(&database.Review{}).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting user reviews")
	}
	if err := tx.Where("user_id = ?", user.ID).Delete(&database.Favorite{}).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting user favorites")
	}
	if err := tx.Where("user_id = ?", user.ID).Delete(&database.UserBook{}).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting user reading statuses")
	}
	if err := tx.Where("user_id = ?", user.ID).Delete(&database.Session{}).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting user sessions")
	}
	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting user")
	}

	tx.Commit()

	return nil
}
