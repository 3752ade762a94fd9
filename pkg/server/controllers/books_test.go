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
	"net/url"
	"strconv"
	"testing"

	"github.com/ElzarU/Onlibry/pkg/assert"
	"github.com/ElzarU/Onlibry/pkg/server/app"
	"github.com/ElzarU/Onlibry/pkg/server/database"
	"github.com/ElzarU/Onlibry/pkg/server/helpers"
	"github.com/ElzarU/Onlibry/pkg/server/presenters"
	"github.com/ElzarU/Onlibry/pkg/server/testutils"
	"github.com/pkg/errors"
)

func strPtr(s string) *string {
	return &s
}

func TestGetBooks(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	// Setup
	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	b1, err := a.CreateBook(app.BookParams{Title: strPtr("book 1")})
	if err != nil {
		t.Fatal(errors.Wrap(err, "preparing b1"))
	}
	b2, err := a.CreateBook(app.BookParams{Title: strPtr("book 2")})
	if err != nil {
		t.Fatal(errors.Wrap(err, "preparing b2"))
	}

	// Execute
	req := testutils.MakeReq(server.URL, "GET", "/api/books", "")
	res := testutils.HTTPDo(t, req)

	// Test
	assert.StatusCodeEquals(t, res, http.StatusOK, "")

	var payload []presenters.Book
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatal(errors.Wrap(err, "decoding payload"))
	}

	assert.Equal(t, len(payload), 2, "payload length mismatch")
	assert.Equal(t, payload[0].ID, b2.ID, "first book id mismatch")
	assert.Equal(t, payload[1].ID, b1.ID, "second book id mismatch")
}

func TestGetBook_Aggregates(t *testing.T) {
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
	if _, err := a.CreateReview(user1, book.ID, 3, ""); err != nil {
		t.Fatal(errors.Wrap(err, "preparing review"))
	}
	if _, err := a.CreateReview(user2, book.ID, 5, ""); err != nil {
		t.Fatal(errors.Wrap(err, "preparing review"))
	}

	// Execute
	req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/api/books/%d", book.ID), "")
	res := testutils.HTTPDo(t, req)

	// Test
	assert.StatusCodeEquals(t, res, http.StatusOK, "")

	var payload presenters.Book
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatal(errors.Wrap(err, "decoding payload"))
	}

	assert.Equal(t, payload.ID, book.ID, "book id mismatch")
	assert.Equal(t, payload.ReviewsCount, 2, "reviews count mismatch")
	if payload.AvgRating == nil {
		t.Fatal("avg rating should not be nil")
	}
	assert.Equal(t, *payload.AvgRating, 4.0, "avg rating mismatch")
}

func TestGetBook_NotFound(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	// Setup
	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	// Execute
	req := testutils.MakeReq(server.URL, "GET", "/api/books/999999", "")
	res := testutils.HTTPDo(t, req)

	// Test
	assert.StatusCodeEquals(t, res, http.StatusNotFound, "")
}

func TestCreateBook(t *testing.T) {
	testCases := []struct {
		role               string
		authenticated      bool
		expectedStatusCode int
	}{
		{
			role:               database.RoleLibrarian,
			authenticated:      true,
			expectedStatusCode: http.StatusCreated,
		},
		{
			role:               database.RoleAdmin,
			authenticated:      true,
			expectedStatusCode: http.StatusCreated,
		},
		{
			role:               database.RoleUser,
			authenticated:      true,
			expectedStatusCode: http.StatusForbidden,
		},
		{
			authenticated:      false,
			expectedStatusCode: http.StatusUnauthorized,
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("test case %d", idx), func(t *testing.T) {
			db := testutils.InitMemoryDB(t)

			// Setup
			a := app.NewTest()
			a.DB = db
			server := MustNewServer(t, &a)
			defer server.Close()

			author, err := a.CreateAuthor("author 1")
			if err != nil {
				t.Fatal(errors.Wrap(err, "preparing author"))
			}

			dat := fmt.Sprintf(`{"title": "book 1", "year": 1999, "author_ids": [%d]}`, author.ID)
			req := testutils.MakeJSONReq(server.URL, "POST", "/api/books", dat)

			// Execute
			var res *http.Response
			if tc.authenticated {
				user := testutils.SetupUserDataWithRole(db, "user@test.com", "pass1234", tc.role)
				res = testutils.HTTPAuthDo(t, db, req, user)
			} else {
				res = testutils.HTTPDo(t, req)
			}

			// Test
			assert.StatusCodeEquals(t, res, tc.expectedStatusCode, "")

			var bookCount int64
			testutils.MustExec(t, db.Model(&database.Book{}).Count(&bookCount), "counting books")

			if tc.expectedStatusCode == http.StatusCreated {
				assert.Equal(t, bookCount, int64(1), "book count mismatch")

				var payload presenters.Book
				if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
					t.Fatal(errors.Wrap(err, "decoding payload"))
				}
				assert.Equal(t, payload.Title, "book 1", "book title mismatch")
				assert.Equal(t, len(payload.Authors), 1, "book author count mismatch")
			} else {
				assert.Equal(t, bookCount, int64(0), "book count mismatch")
			}
		})
	}
}

func TestUpdateBook(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	// Setup
	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	librarian := testutils.SetupUserDataWithRole(db, "lib@test.com", "pass1234", database.RoleLibrarian)

	book, err := a.CreateBook(app.BookParams{Title: strPtr("old title")})
	if err != nil {
		t.Fatal(errors.Wrap(err, "preparing book"))
	}

	// Execute
	dat := `{"title": "new title"}`
	req := testutils.MakeJSONReq(server.URL, "PATCH", fmt.Sprintf("/api/books/%d", book.ID), dat)
	res := testutils.HTTPAuthDo(t, db, req, librarian)

	// Test
	assert.StatusCodeEquals(t, res, http.StatusOK, "")

	var bookRecord database.Book
	testutils.MustExec(t, db.Where("id = ?", book.ID).First(&bookRecord), "finding book")
	assert.Equal(t, bookRecord.Title, "new title", "book title mismatch")
}

func TestDeleteBook(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	// Setup
	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	librarian := testutils.SetupUserDataWithRole(db, "lib@test.com", "pass1234", database.RoleLibrarian)
	user := testutils.SetupUserData(db, "user@test.com", "pass1234")

	book, err := a.CreateBook(app.BookParams{Title: strPtr("book 1")})
	if err != nil {
		t.Fatal(errors.Wrap(err, "preparing book"))
	}
	if _, err := a.CreateReview(user, book.ID, 4, ""); err != nil {
		t.Fatal(errors.Wrap(err, "preparing review"))
	}

	// Execute
	req := testutils.MakeReq(server.URL, "DELETE", fmt.Sprintf("/api/books/%d", book.ID), "")
	res := testutils.HTTPAuthDo(t, db, req, librarian)

	// Test
	assert.StatusCodeEquals(t, res, http.StatusNoContent, "")

	var bookCount, reviewCount int64
	testutils.MustExec(t, db.Model(&database.Book{}).Count(&bookCount), "counting books")
	testutils.MustExec(t, db.Model(&database.Review{}).Count(&reviewCount), "counting reviews")
	assert.Equal(t, bookCount, int64(0), "book count mismatch")
	assert.Equal(t, reviewCount, int64(0), "review count mismatch")
}

func TestGetBooks_Filters(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	// Setup
	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	author, err := a.CreateAuthor("author 1")
	if err != nil {
		t.Fatal(errors.Wrap(err, "preparing author"))
	}

	year := 1974
	b1, err := a.CreateBook(app.BookParams{
		Title:     strPtr("book 1"),
		Year:      &year,
		AuthorIDs: &[]int{author.ID},
	})
	if err != nil {
		t.Fatal(errors.Wrap(err, "preparing b1"))
	}
	if _, err := a.CreateBook(app.BookParams{Title: strPtr("book 2")}); err != nil {
		t.Fatal(errors.Wrap(err, "preparing b2"))
	}

	testCases := []struct {
		query       url.Values
		expectedIDs []int
	}{
		{
			query:       url.Values{"authors": []string{strconv.Itoa(author.ID)}},
			expectedIDs: []int{b1.ID},
		},
		{
			query:       url.Values{"year": []string{"1974"}},
			expectedIDs: []int{b1.ID},
		},
		{
			query:       url.Values{"search": []string{"book 1"}},
			expectedIDs: []int{b1.ID},
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("test case %d", idx), func(t *testing.T) {
			path := helpers.GetPath("/api/books", &tc.query)
			req := testutils.MakeReq(server.URL, "GET", path, "")
			res := testutils.HTTPDo(t, req)

			assert.StatusCodeEquals(t, res, http.StatusOK, "")

			var payload []presenters.Book
			if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
				t.Fatal(errors.Wrap(err, "decoding payload"))
			}

			gotIDs := []int{}
			for _, b := range payload {
				gotIDs = append(gotIDs, b.ID)
			}
			assert.DeepEqual(t, gotIDs, tc.expectedIDs, "book ids mismatch")
		})
	}
}

func TestGetBooks_InvalidQuery(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	// Setup
	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	testCases := []string{
		"/api/books?year=abc",
		"/api/books?sort=title",
	}

	for _, path := range testCases {
		t.Run(path, func(t *testing.T) {
			req := testutils.MakeReq(server.URL, "GET", path, "")
			res := testutils.HTTPDo(t, req)

			assert.StatusCodeEquals(t, res, http.StatusBadRequest, "")
		})
	}
}
