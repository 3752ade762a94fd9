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

func TestGetFavorites(t *testing.T) {
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

	fav1, err := a.CreateFavorite(user1, book.ID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "preparing favorite for user1"))
	}
	if _, err := a.CreateFavorite(user2, book.ID); err != nil {
		t.Fatal(errors.Wrap(err, "preparing favorite for user2"))
	}

	// Only the favorites of the authenticated user are returned
	req := testutils.MakeReq(server.URL, "GET", "/api/favorites", "")
	res := testutils.HTTPAuthDo(t, db, req, user1)

	assert.StatusCodeEquals(t, res, http.StatusOK, "")

	var payload []presenters.Favorite
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatal(errors.Wrap(err, "decoding payload"))
	}

	assert.Equal(t, len(payload), 1, "payload length mismatch")
	assert.Equal(t, payload[0].ID, fav1.ID, "favorite id mismatch")
	assert.Equal(t, payload[0].BookID, book.ID, "favorite book mismatch")
}

func TestGetFavorites_Guest(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	// Setup
	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	// Execute
	req := testutils.MakeReq(server.URL, "GET", "/api/favorites", "")
	res := testutils.HTTPDo(t, req)

	// Test
	assert.StatusCodeEquals(t, res, http.StatusUnauthorized, "")
}

func TestCreateFavorite(t *testing.T) {
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
	dat := fmt.Sprintf(`{"book": %d}`, book.ID)
	req := testutils.MakeJSONReq(server.URL, "POST", "/api/favorites", dat)
	res := testutils.HTTPAuthDo(t, db, req, user)

	// Test
	assert.StatusCodeEquals(t, res, http.StatusCreated, "")

	var favoriteRecord database.Favorite
	testutils.MustExec(t, db.First(&favoriteRecord), "finding favorite")
	assert.Equal(t, favoriteRecord.UserID, user.ID, "favorite user_id mismatch")
	assert.Equal(t, favoriteRecord.BookID, book.ID, "favorite book_id mismatch")
}

func TestCreateFavorite_Duplicate(t *testing.T) {
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
	if _, err := a.CreateFavorite(user, book.ID); err != nil {
		t.Fatal(errors.Wrap(err, "preparing favorite"))
	}

	// Execute
	dat := fmt.Sprintf(`{"book": %d}`, book.ID)
	req := testutils.MakeJSONReq(server.URL, "POST", "/api/favorites", dat)
	res := testutils.HTTPAuthDo(t, db, req, user)

	// Test
	assert.StatusCodeEquals(t, res, http.StatusConflict, "")

	var favoriteCount int64
	testutils.MustExec(t, db.Model(&database.Favorite{}).Count(&favoriteCount), "counting favorites")
	assert.Equal(t, favoriteCount, int64(1), "favorite count mismatch")
}

func TestDeleteFavorite_OwnerScoped(t *testing.T) {
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
	favorite, err := a.CreateFavorite(owner, book.ID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "preparing favorite"))
	}

	// Another user cannot delete the favorite; it is not even visible
	req := testutils.MakeReq(server.URL, "DELETE", fmt.Sprintf("/api/favorites/%d", favorite.ID), "")
	res := testutils.HTTPAuthDo(t, db, req, other)

	assert.StatusCodeEquals(t, res, http.StatusNotFound, "")

	var favoriteCount int64
	testutils.MustExec(t, db.Model(&database.Favorite{}).Count(&favoriteCount), "counting favorites")
	assert.Equal(t, favoriteCount, int64(1), "favorite count mismatch")

	// The owner can
	req = testutils.MakeReq(server.URL, "DELETE", fmt.Sprintf("/api/favorites/%d", favorite.ID), "")
	res = testutils.HTTPAuthDo(t, db, req, owner)

	assert.StatusCodeEquals(t, res, http.StatusNoContent, "")

	testutils.MustExec(t, db.Model(&database.Favorite{}).Count(&favoriteCount), "counting favorites")
	assert.Equal(t, favoriteCount, int64(0), "favorite count mismatch")
}
