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

// NewGenres creates a new Genres controller
func NewGenres(app *app.App) *Genres {
	return &Genres{
		app: app,
	}
}

// Genres is a genre controller
type Genres struct {
	app *app.App
}

// GenrePayload is the payload for creating or updating a genre
type GenrePayload struct {
	Name string `schema:"name" json:"name"`
}

// Index lists all genres
func (c *Genres) Index(w http.ResponseWriter, r *http.Request) {
	genres, err := c.app.GetGenres()
	if err != nil {
		handleJSONError(w, err, "getting genres")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentGenres(genres))
}

// Show returns a genre
func (c *Genres) Show(w http.ResponseWriter, r *http.Request) {
	id, err := getResourceID(r)
	if err != nil {
		handleJSONError(w, err, "getting genre id")
		return
	}

	genre, err := c.app.GetGenre(id)
	if err != nil {
		handleJSONError(w, err, "getting genre")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentGenre(genre))
}

// Create creates a genre
func (c *Genres) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if !permissions.WriteCatalog(user) {
		mw.RespondForbidden(w)
		return
	}

	var payload GenrePayload
	if err := parseRequestData(r, &payload); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	genre, err := c.app.CreateGenre(payload.Name)
	if err != nil {
		handleJSONError(w, err, "creating genre")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentGenre(genre))
}

// Update updates a genre
func (c *Genres) Update(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if !permissions.WriteCatalog(user) {
		mw.RespondForbidden(w)
		return
	}

	id, err := getResourceID(r)
	if err != nil {
		handleJSONError(w, err, "getting genre id")
		return
	}

	genre, err := c.app.GetGenre(id)
	if err != nil {
		handleJSONError(w, err, "getting genre")
		return
	}

	var payload GenrePayload
	if err := parseRequestData(r, &payload); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	genre, err = c.app.UpdateGenre(genre, payload.Name)
	if err != nil {
		handleJSONError(w, err, "updating genre")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentGenre(genre))
}

// Delete deletes a genre
func (c *Genres) Delete(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if !permissions.WriteCatalog(user) {
		mw.RespondForbidden(w)
		return
	}

	id, err := getResourceID(r)
	if err != nil {
		handleJSONError(w, err, "getting genre id")
		return
	}

	genre, err := c.app.GetGenre(id)
	if err != nil {
		handleJSONError(w, err, "getting genre")
		return
	}

	if err := c.app.DeleteGenre(genre); err != nil {
		handleJSONError(w, err, "deleting genre")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
