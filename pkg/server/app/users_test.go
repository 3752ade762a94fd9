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
	"testing"

	"github.com/ElzarU/Onlibry/pkg/assert"
	"github.com/ElzarU/Onlibry/pkg/server/database"
	"github.com/ElzarU/Onlibry/pkg/server/helpers"
	"github.com/ElzarU/Onlibry/pkg/server/testutils"
	"github.com/pkg/errors"
)

func TestCreateUser(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	a := NewTest()
	a.DB = db

	user, err := a.CreateUser("alice@example.com", "pass1234", "pass1234")
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating user"))
	}

	var userCount int64
	testutils.MustExec(t, db.Model(&database.User{}).Count(&userCount), "counting users")

	assert.Equal(t, userCount, int64(1), "user count mismatch")
	assert.Equal(t, user.Email.String, "alice@example.com", "email mismatch")
	assert.Equal(t, user.Role, database.RoleUser, "role mismatch")
	assert.Equal(t, helpers.ValidateUUID(user.UUID), true, "uuid should have been generated")
	assert.NotEqual(t, user.Password.String, "pass1234", "password should have been hashed")
}

func TestCreateUser_Validation(t *testing.T) {
	testCases := []struct {
		email                string
		password             string
		passwordConfirmation string
		expectedErr          error
	}{
		{
			email:                "",
			password:             "pass1234",
			passwordConfirmation: "pass1234",
			expectedErr:          ErrEmailRequired,
		},
		{
			email:                "alice@example.com",
			password:             "short",
			passwordConfirmation: "short",
			expectedErr:          ErrPasswordTooShort,
		},
		{
			email:                "alice@example.com",
			password:             "pass1234",
			passwordConfirmation: "pass12345",
			expectedErr:          ErrPasswordConfirmationMismatch,
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("test case %d", idx), func(t *testing.T) {
			db := testutils.InitMemoryDB(t)

			a := NewTest()
			a.DB = db

			_, err := a.CreateUser(tc.email, tc.password, tc.passwordConfirmation)
			assert.Equal(t, errors.Cause(err), tc.expectedErr, "error mismatch")

			var userCount int64
			testutils.MustExec(t, db.Model(&database.User{}).Count(&userCount), "counting users")
			assert.Equal(t, userCount, int64(0), "user count mismatch")
		})
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	a := NewTest()
	a.DB = db

	if _, err := a.CreateUser("alice@example.com", "pass1234", "pass1234"); err != nil {
		t.Fatal(errors.Wrap(err, "creating user"))
	}

	_, err := a.CreateUser("alice@example.com", "pass1234", "pass1234")
	assert.Equal(t, errors.Cause(err), ErrDuplicateEmail, "error mismatch")

	var userCount int64
	testutils.MustExec(t, db.Model(&database.User{}).Count(&userCount), "counting users")
	assert.Equal(t, userCount, int64(1), "user count mismatch")
}

func TestCreateUserWithRole(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	a := NewTest()
	a.DB = db

	user, err := a.CreateUserWithRole("admin@example.com", "pass1234", database.RoleLibrarian)
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating user"))
	}

	assert.Equal(t, user.Role, database.RoleLibrarian, "role mismatch")
}

func TestCreateUserWithRole_InvalidRole(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	a := NewTest()
	a.DB = db

	_, err := a.CreateUserWithRole("admin@example.com", "pass1234", "superuser")
	if !IsValidationError(err) {
		t.Errorf("expected a validation error but got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	a := NewTest()
	a.DB = db

	testutils.SetupUserData(db, "alice@example.com", "pass1234")

	user, err := a.Authenticate("alice@example.com", "pass1234")
	if err != nil {
		t.Fatal(errors.Wrap(err, "authenticating"))
	}
	assert.Equal(t, user.Email.String, "alice@example.com", "email mismatch")

	_, err = a.Authenticate("alice@example.com", "wrongpass")
	assert.Equal(t, errors.Cause(err), ErrLoginInvalid, "error mismatch")

	_, err = a.Authenticate("nobody@example.com", "pass1234")
	assert.Equal(t, errors.Cause(err), ErrNotFound, "error mismatch")
}

func TestDeleteUser(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	a := NewTest()
	a.DB = db

	user := testutils.SetupUserData(db, "alice@example.com", "pass1234")
	other := testutils.SetupUserData(db, "bob@example.com", "pass1234")
	testutils.SetupSession(db, user)

	book, err := a.CreateBook(BookParams{Title: strPtr("Solaris")})
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating book"))
	}

	if _, err := a.CreateReview(user, book.ID, 4, ""); err != nil {
		t.Fatal(errors.Wrap(err, "creating review"))
	}
	if _, err := a.CreateFavorite(user, book.ID); err != nil {
		t.Fatal(errors.Wrap(err, "creating favorite"))
	}
	if _, err := a.SetUserBook(user, book.ID, database.UserBookStatusToRead); err != nil {
		t.Fatal(errors.Wrap(err, "setting reading status"))
	}
	if _, err := a.CreateReview(other, book.ID, 5, ""); err != nil {
		t.Fatal(errors.Wrap(err, "creating other review"))
	}

	if err := a.DeleteUser(user); err != nil {
		t.Fatal(errors.Wrap(err, "deleting user"))
	}

	var userCount, reviewCount, favoriteCount, userBookCount, sessionCount int64
	testutils.MustExec(t, db.Model(&database.User{}).Count(&userCount), "counting users")
	testutils.MustExec(t, db.Model(&database.Review{}).Count(&reviewCount), "counting reviews")
	testutils.MustExec(t, db.Model(&database.Favorite{}).Count(&favoriteCount), "counting favorites")
	testutils.MustExec(t, db.Model(&database.UserBook{}).Count(&userBookCount), "counting reading statuses")
	testutils.MustExec(t, db.Model(&database.Session{}).Count(&sessionCount), "counting sessions")

	assert.Equal(t, userCount, int64(1), "user count mismatch")
	assert.Equal(t, reviewCount, int64(1), "review count mismatch")
	assert.Equal(t, favoriteCount, int64(0), "favorite count mismatch")
	assert.Equal(t, userBookCount, int64(0), "reading status count mismatch")
	assert.Equal(t, sessionCount, int64(0), "session count mismatch")
}

func TestUpdateUserPassword(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	a := NewTest()
	a.DB = db

	user := testutils.SetupUserData(db, "alice@example.com", "oldpassword")

	if err := UpdateUserPassword(db, &user, "newpassword"); err != nil {
		t.Fatal(errors.Wrap(err, "updating password"))
	}

	if _, err := a.Authenticate("alice@example.com", "newpassword"); err != nil {
		t.Fatal(errors.Wrap(err, "authenticating with new password"))
	}
	_, err := a.Authenticate("alice@example.com", "oldpassword")
	assert.Equal(t, err, ErrLoginInvalid, "old password should have been invalidated")
}

func TestUpdateUserPassword_TooShort(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "alice@example.com", "oldpassword")

	err := UpdateUserPassword(db, &user, "short")
	assert.Equal(t, err, ErrPasswordTooShort, "error mismatch")
}
