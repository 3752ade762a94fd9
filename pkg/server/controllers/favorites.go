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

// NewFavorites creates a new Favorites controller
func NewFavorites(app *app.App) *Favorites {
	return &Favorites{
		app: app,
	}
}

// Favorites is a favorite controller. Favorites are scoped to their
// owner in every operation.
type Favorites struct {
	app *app.App
}

// FavoritePayload is the payload for creating a favorite
type FavoritePayload struct {
	BookID int `schema:"book" json:"book"`
}

// Index lists the favorites of the authenticated user
func (c *Favorites) Index(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}

	favorites, err := c.app.GetFavorites(*user)
	if err != nil {
		handleJSONError(w, err, "getting favorites")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentFavorites(favorites))
}

// Show returns a favorite of the authenticated user
func (c *Favorites) Show(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}

	id, err := getResourceID(r)
	if err != nil {
		handleJSONError(w, err, "getting favorite id")
		return
	}

	favorite, err := c.app.GetFavorite(*user, id)
	if err != nil {
		handleJSONError(w, err, "getting favorite")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentFavorite(favorite))
}

// Create marks a book as a favorite of the authenticated user
func (c *Favorites) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}

	var payload FavoritePayload
	if err := parseRequestData(r, &payload); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	favorite, err := c.app.CreateFavorite(*user, payload.BookID)
	if err != nil {
		handleJSONError(w, err, "creating favorite")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentFavorite(favorite))
}

// Delete removes a favorite of the authenticated user
func (c *Favorites) Delete(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}

	id, err := getResourceID(r)
	if err != nil {
		handleJSONError(w, err, "getting favorite id")
		return
	}

	favorite, err := c.app.GetFavorite(*user, id)
	if err != nil {
		handleJSONError(w, err, "getting favorite")
		return
	}

	if err := c.app.DeleteFavorite(favorite); err != nil {
		handleJSONError(w, err, "deleting favorite")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
