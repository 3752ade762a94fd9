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

// NewReviews creates a new Reviews controller
func NewReviews(app *app.App) *Reviews {
	return &Reviews{
		app: app,
	}
}

// Reviews is a review controller
type Reviews struct {
	app *app.App
}

// ReviewPayload is the payload for creating a review
type ReviewPayload struct {
	BookID int    `schema:"book" json:"book"`
	Rating int    `schema:"rating" json:"rating"`
	Text   string `schema:"text" json:"text"`
}

// Index lists reviews, optionally scoped to a single book
func (c *Reviews) Index(w http.ResponseWriter, r *http.Request) {
	bookID, err := getIntQuery(r, "book")
	if err != nil {
		handleJSONError(w, err, "parsing review query")
		return
	}

	reviews, err := c.app.GetReviews(bookID)
	if err != nil {
		handleJSONError(w, err, "getting reviews")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentReviews(reviews))
}

// Show returns a review
func (c *Reviews) Show(w http.ResponseWriter, r *http.Request) {
	id, err := getResourceID(r)
	if err != nil {
		handleJSONError(w, err, "getting review id")
		return
	}

	review, err := c.app.GetReview(id)
	if err != nil {
		handleJSONError(w, err, "getting review")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentReview(review))
}

// Create creates a review for the authenticated user
func (c *Reviews) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}

	var payload ReviewPayload
	if err := parseRequestData(r, &payload); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	review, err := c.app.CreateReview(*user, payload.BookID, payload.Rating, payload.Text)
	if err != nil {
		handleJSONError(w, err, "creating review")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentReview(review))
}

// Delete deletes a review. Deletion is not owner scoped; any
// authenticated user may delete any review.
func (c *Reviews) Delete(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}

	id, err := getResourceID(r)
	if err != nil {
		handleJSONError(w, err, "getting review id")
		return
	}

	review, err := c.app.GetReview(id)
	if err != nil {
		handleJSONError(w, err, "getting review")
		return
	}

	if err := c.app.DeleteReview(review); err != nil {
		handleJSONError(w, err, "deleting review")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
