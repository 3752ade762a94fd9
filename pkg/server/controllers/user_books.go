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
	"github.com/ElzarU/Onlibry/pkg/server/presenters"
)

// NewUserBooks creates a new UserBooks controller
func NewUserBooks(app *app.App) *UserBooks {
	return &UserBooks{
		app: app,
	}
}

// UserBooks is a reading status controller. Statuses are scoped to
// their owner in every operation.
type UserBooks struct {
	app *app.App
}

// UserBookPayload is the payload for setting a reading status
type UserBookPayload struct {
	BookID int    `schema:"book" json:"book"`
	Status string `schema:"status" json:"status"`
}

// UserBookStatusPayload is the payload for updating a reading status
type UserBookStatusPayload struct {
	Status string `schema:"status" json:"status"`
}

// Index lists the reading statuses of the authenticated user
func (c *UserBooks) Index(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}

	userBooks, err := c.app.GetUserBooks(*user)
	if err != nil {
		handleJSONError(w, err, "getting reading statuses")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentUserBooks(userBooks))
}

// Show returns a reading status of the authenticated user
func (c *UserBooks) Show(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}

	id, err := getResourceID(r)
	if err != nil {
		handleJSONError(w, err, "getting reading status id")
		return
	}

	userBook, err := c.app.GetUserBook(*user, id)
	if err != nil {
		handleJSONError(w, err, "getting reading status")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentUserBook(userBook))
}

// Upsert sets the reading status of a book for the authenticated user.
// Repeated calls for the same book update the existing row.
func (c *UserBooks) Upsert(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}

	var payload UserBookPayload
	if err := parseRequestData(r, &payload); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	userBook, err := c.app.SetUserBook(*user, payload.BookID, payload.Status)
	if err != nil {
		handleJSONError(w, err, "setting reading status")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentUserBook(userBook))
}

// Update changes the status of an existing reading status row
func (c *UserBooks) Update(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}

	id, err := getResourceID(r)
	if err != nil {
		handleJSONError(w, err, "getting reading status id")
		return
	}

	userBook, err := c.app.GetUserBook(*user, id)
	if err != nil {
		handleJSONError(w, err, "getting reading status")
		return
	}

	var payload UserBookStatusPayload
	if err := parseRequestData(r, &payload); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	userBook, err = c.app.UpdateUserBookStatus(userBook, payload.Status)
	if err != nil {
		handleJSONError(w, err, "updating reading status")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentUserBook(userBook))
}

// Delete removes a reading status of the authenticated user
func (c *UserBooks) Delete(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}

	id, err := getResourceID(r)
	if err != nil {
		handleJSONError(w, err, "getting reading status id")
		return
	}

	userBook, err := c.app.GetUserBook(*user, id)
	if err != nil {
		handleJSONError(w, err, "getting reading status")
		return
	}

	if err := c.app.DeleteUserBook(userBook); err != nil {
		handleJSONError(w, err, "deleting reading status")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
