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

package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/ElzarU/Onlibry/pkg/assert"
	"github.com/ElzarU/Onlibry/pkg/server/app"
	"github.com/ElzarU/Onlibry/pkg/server/database"
	"github.com/ElzarU/Onlibry/pkg/server/presenters"
	"github.com/ElzarU/Onlibry/pkg/server/testutils"
	"github.com/pkg/errors"
)

func TestGetUserBooks(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	// Setup
	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	user1 := testutils.SetupUserData(db, "user1@test.com", "pass1234")
	user2 := testutils.SetupUserData(db, "user2@test.com", "pass1234")

	book, err := a.CreateBook(app.BookParams{Title: strPtr("book 1")})
	if err != nil {
		t.Fatal(errors.Wrap(err, "preparing book"))
	}

	ub1, err := a.SetUserBook(user1, book.ID, database.UserBookStatusReading)
	if err != nil {
		t.Fatal(errors.Wrap(err, "preparing reading status for user1"))
	}
	if _, err := a.SetUserBook(user2, book.ID, database.UserBookStatusFinished); err != nil {
		t.Fatal(errors.Wrap(err, "preparing reading status for user2"))
	}

	// Only the rows of the authenticated user are returned
	req := testutils.MakeReq(server.URL, "GET", "/api/user/books", "")
	res := testutils.HTTPAuthDo(t, db, req, user1)

	assert.StatusCodeEquals(t, res, http.StatusOK, "")

	var payload []presenters.UserBook
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatal(errors.Wrap(err, "decoding payload"))
	}

	assert.Equal(t, len(payload), 1, "payload length mismatch")
	assert.Equal(t, payload[0].ID, ub1.ID, "reading status id mismatch")
	assert.Equal(t, payload[0].Status, database.UserBookStatusReading, "status mismatch")
}

func TestUpsertUserBook(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	// Setup
	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	user := testutils.SetupUserData(db, "user@test.com", "pass1234")

	book, err := a.CreateBook(app.BookParams{Title: strPtr("book 1")})
	if err != nil {
		t.Fatal(errors.Wrap(err, "preparing book"))
	}

	// First call creates the row
	dat := fmt.Sprintf(`{"book": %d, "status": "TO_READ"}`, book.ID)
	req := testutils.MakeJSONReq(server.URL, "POST", "/api/user/books", dat)
	res := testutils.HTTPAuthDo(t, db, req, user)

	assert.StatusCodeEquals(t, res, http.StatusOK, "")

	var first presenters.UserBook
	if err := json.NewDecoder(res.Body).Decode(&first); err != nil {
		t.Fatal(errors.Wrap(err, "decoding payload"))
	}

	// Second call for the same book updates the existing row
	dat = fmt.Sprintf(`{"book": %d, "status": "FINISHED"}`, book.ID)
	req = testutils.MakeJSONReq(server.URL, "POST", "/api/user/books", dat)
	res = testutils.HTTPAuthDo(t, db, req, user)

	assert.StatusCodeEquals(t, res, http.StatusOK, "")

	var second presenters.UserBook
	if err := json.NewDecoder(res.Body).Decode(&second); err != nil {
		t.Fatal(errors.Wrap(err, "decoding payload"))
	}

	var count int64
	testutils.MustExec(t, db.Model(&database.UserBook{}).Count(&count), "counting reading statuses")

	assert.Equal(t, count, int64(1), "reading status count mismatch")
	assert.Equal(t, second.ID, first.ID, "reading status id mismatch")
	assert.Equal(t, second.Status, database.UserBookStatusFinished, "status mismatch")
}

func TestUpsertUserBook_InvalidStatus(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	// Setup
	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	user := testutils.SetupUserData(db, "user@test.com", "pass1234")

	book, err := a.CreateBook(app.BookParams{Title: strPtr("book 1")})
	if err != nil {
		t.Fatal(errors.Wrap(err, "preparing book"))
	}

	// Execute
	dat := fmt.Sprintf(`{"book": %d, "status": "DROPPED"}`, book.ID)
	req := testutils.MakeJSONReq(server.URL, "POST", "/api/user/books", dat)
	res := testutils.HTTPAuthDo(t, db, req, user)

	// Test
	assert.StatusCodeEquals(t, res, http.StatusBadRequest, "")

	var count int64
	testutils.MustExec(t, db.Model(&database.UserBook{}).Count(&count), "counting reading statuses")
	assert.Equal(t, count, int64(0), "reading status count mismatch")
}

func TestUpsertUserBook_Guest(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	// Setup
	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	book, err := a.CreateBook(app.BookParams{Title: strPtr("book 1")})
	if err != nil {
		t.Fatal(errors.Wrap(err, "preparing book"))
	}

	// Execute
	dat := fmt.Sprintf(`{"book": %d, "status": "TO_READ"}`, book.ID)
	req := testutils.MakeJSONReq(server.URL, "POST", "/api/user/books", dat)
	res := testutils.HTTPDo(t, req)

	// Test
	assert.StatusCodeEquals(t, res, http.StatusUnauthorized, "")
}

func TestDeleteUserBook_OwnerScoped(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	// Setup
	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	owner := testutils.SetupUserData(db, "owner@test.com", "pass1234")
	other := testutils.SetupUserData(db, "other@test.com", "pass1234")

	book, err := a.CreateBook(app.BookParams{Title: strPtr("book 1")})
	if err != nil {
		t.Fatal(errors.Wrap(err, "preparing book"))
	}
	userBook, err := a.SetUserBook(owner, book.ID, database.UserBookStatusToRead)
	if err != nil {
		t.Fatal(errors.Wrap(err, "preparing reading status"))
	}

	// Another user cannot delete the row; it is not even visible
	req := testutils.MakeReq(server.URL, "DELETE", fmt.Sprintf("/api/user/books/%d", userBook.ID), "")
	res := testutils.HTTPAuthDo(t, db, req, other)

	assert.StatusCodeEquals(t, res, http.StatusNotFound, "")

	// The owner can
	req = testutils.MakeReq(server.URL, "DELETE", fmt.Sprintf("/api/user/books/%d", userBook.ID), "")
	res = testutils.HTTPAuthDo(t, db, req, owner)

	assert.StatusCodeEquals(t, res, http.StatusNoContent, "")

	var count int64
	testutils.MustExec(t, db.Model(&database.UserBook{}).Count(&count), "counting reading statuses")
	assert.Equal(t, count, int64(0), "reading status count mismatch")
}
