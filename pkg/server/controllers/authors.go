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

// NewAuthors creates a new Authors controller
func NewAuthors(app *app.App) *Authors {
	return &Authors{
		app: app,
	}
}

// Authors is an author controller
type Authors struct {
	app *app.App
}

// AuthorPayload is the payload for creating or updating an author
type AuthorPayload struct {
	Name string `schema:"name" json:"name"`
}

// Index lists all authors
func (c *Authors) Index(w http.ResponseWriter, r *http.Request) {
	authors, err := c.app.GetAuthors()
	if err != nil {
		handleJSONError(w, err, "getting authors")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentAuthors(authors))
}

// Show returns an author
func (c *Authors) Show(w http.ResponseWriter, r *http.Request) {
	id, err := getResourceID(r)
	if err != nil {
		handleJSONError(w, err, "getting author id")
		return
	}

	author, err := c.app.GetAuthor(id)
	if err != nil {
		handleJSONError(w, err, "getting author")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentAuthor(author))
}

// Create creates an author
func (c *Authors) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if !permissions.WriteCatalog(user) {
		mw.RespondForbidden(w)
		return
	}

	var payload AuthorPayload
	if err := parseRequestData(r, &payload); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	author, err := c.app.CreateAuthor(payload.Name)
	if err != nil {
		handleJSONError(w, err, "creating author")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentAuthor(author))
}

// Update updates an author
func (c *Authors) Update(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if !permissions.WriteCatalog(user) {
		mw.RespondForbidden(w)
		return
	}

	id, err := getResourceID(r)
	if err != nil {
		handleJSONError(w, err, "getting author id")
		return
	}

	author, err := c.app.GetAuthor(id)
	if err != nil {
		handleJSONError(w, err, "getting author")
		return
	}

	var payload AuthorPayload
	if err := parseRequestData(r, &payload); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	author, err = c.app.UpdateAuthor(author, payload.Name)
	if err != nil {
		handleJSONError(w, err, "updating author")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentAuthor(author))
}

// Delete deletes an author
func (c *Authors) Delete(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if !permissions.WriteCatalog(user) {
		mw.RespondForbidden(w)
		return
	}

	id, err := getResourceID(r)
	if err != nil {
		handleJSONError(w, err, "getting author id")
		return
	}

	author, err := c.app.GetAuthor(id)
	if err != nil {
		handleJSONError(w, err, "getting author")
		return
	}

	if err := c.app.DeleteAuthor(author); err != nil {
		handleJSONError(w, err, "deleting author")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
