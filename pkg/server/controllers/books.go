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
	"net/http"

	"github.com/ElzarU/Onlibry/pkg/server/app"
	"github.com/ElzarU/Onlibry/pkg/server/context"
	mw "github.com/ElzarU/Onlibry/pkg/server/middleware"
	"github.com/ElzarU/Onlibry/pkg/server/permissions"
	"github.com/ElzarU/Onlibry/pkg/server/presenters"
)

// NewBooks creates a new Books controller
func NewBooks(app *app.App) *Books {
	return &Books{
		app: app,
	}
}

// Books is a book controller
type Books struct {
	app *app.App
}

// BookPayload is the payload for creating or updating a book. Nil
// fields are left untouched on update.
type BookPayload struct {
	Title       *string `schema:"title" json:"title"`
	Description *string `schema:"description" json:"description"`
	Year        *int    `schema:"year" json:"year"`
	CoverURL    *string `schema:"cover_url" json:"cover_url"`
	AuthorIDs   *[]int  `schema:"author_ids" json:"author_ids"`
	GenreIDs    *[]int  `schema:"genre_ids" json:"genre_ids"`
}

func (p BookPayload) toParams() app.BookParams {
	return app.BookParams{
		Title:       p.Title,
		Description: p.Description,
		Year:        p.Year,
		CoverURL:    p.CoverURL,
		AuthorIDs:   p.AuthorIDs,
		GenreIDs:    p.GenreIDs,
	}
}

func getBookQuery(r *http.Request) (app.BookQuery, error) {
	authorID, err := getIntQuery(r, "authors")
	if err != nil {
		return app.BookQuery{}, err
	}
	genreID, err := getIntQuery(r, "genres")
	if err != nil {
		return app.BookQuery{}, err
	}
	year, err := getIntQuery(r, "year")
	if err != nil {
		return app.BookQuery{}, err
	}

	q := r.URL.Query()

	return app.BookQuery{
		AuthorID: authorID,
		GenreID:  genreID,
		Year:     year,
		Search:   q.Get("search"),
		Sort:     q.Get("sort"),
	}, nil
}

// Index lists books matching the given filters
func (c *Books) Index(w http.ResponseWriter, r *http.Request) {
	query, err := getBookQuery(r)
	if err != nil {
		handleJSONError(w, err, "parsing book query")
		return
	}

	books, err := c.app.GetBooks(query)
	if err != nil {
		handleJSONError(w, err, "getting books")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentBooks(books))
}

// Show returns a book with its review aggregates
func (c *Books) Show(w http.ResponseWriter, r *http.Request) {
	id, err := getResourceID(r)
	if err != nil {
		handleJSONError(w, err, "getting book id")
		return
	}

	book, err := c.app.GetBook(id)
	if err != nil {
		handleJSONError(w, err, "getting book")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentBook(book))
}

// Create creates a book
func (c *Books) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if !permissions.WriteCatalog(user) {
		mw.RespondForbidden(w)
		return
	}

	var payload BookPayload
	if err := parseRequestData(r, &payload); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	book, err := c.app.CreateBook(payload.toParams())
	if err != nil {
		handleJSONError(w, err, "creating book")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentBook(book))
}

// Update updates a book
func (c *Books) Update(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if !permissions.WriteCatalog(user) {
		mw.RespondForbidden(w)
		return
	}

	id, err := getResourceID(r)
	if err != nil {
		handleJSONError(w, err, "getting book id")
		return
	}

	book, err := c.app.GetBookRaw(id)
	if err != nil {
		handleJSONError(w, err, "getting book")
		return
	}

	var payload BookPayload
	if err := parseRequestData(r, &payload); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	record, err := c.app.UpdateBook(book, payload.toParams())
	if err != nil {
		handleJSONError(w, err, "updating book")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentBook(record))
}

// Delete deletes a book and everything attached to it
func (c *Books) Delete(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if !permissions.WriteCatalog(user) {
		mw.RespondForbidden(w)
		return
	}

	id, err := getResourceID(r)
	if err != nil {
		handleJSONError(w, err, "getting book id")
		return
	}

	book, err := c.app.GetBookRaw(id)
	if err != nil {
		handleJSONError(w, err, "getting book")
		return
	}

	if err := c.app.DeleteBook(book); err != nil {
		handleJSONError(w, err, "deleting book")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
