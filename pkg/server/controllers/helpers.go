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
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ElzarU/Onlibry/pkg/server/app"
	"github.com/ElzarU/Onlibry/pkg/server/log"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	pkgErrors "github.com/pkg/errors"
)

var formDecoder = schema.NewDecoder()

func init() {
	formDecoder.IgnoreUnknownKeys(true)
}

// errInvalidID is an error for a non-numeric resource id in the URL
var errInvalidID = errors.New("invalid resource id")

// parseRequestData decodes the request payload into the given struct.
// JSON and form-encoded bodies are supported.
func parseRequestData(r *http.Request, dst interface{}) error {
	ct := r.Header.Get("Content-Type")

	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return pkgErrors.Wrap(err, "decoding json payload")
		}

		return nil
	}

	if err := r.ParseForm(); err != nil {
		return pkgErrors.Wrap(err, "parsing form")
	}
	if err := formDecoder.Decode(dst, r.PostForm); err != nil {
		return pkgErrors.Wrap(err, "decoding form payload")
	}

	return nil
}

// getResourceID returns the numeric id from the URL of the given request
func getResourceID(r *http.Request) (int, error) {
	vars := mux.Vars(r)

	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		return 0, errInvalidID
	}

	return id, nil
}

// getIntQuery returns the numeric value of the given query parameter,
// or nil if the parameter is absent
func getIntQuery(r *http.Request, name string) (*int, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return nil, app.NewValidationError(name, "must be an integer")
	}

	return &n, nil
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondJSON responds with the JSON-encoding of the given interface
func respondJSON(w http.ResponseWriter, statusCode int, i interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(i); err != nil {
		log.ErrorWrap(err, "encoding response")
	}
}

// handleJSONError responds with the appropriate status code for the
// given error. Validation problems map to 400, uniqueness conflicts to
// 409, and missing resources to 404; everything else is a 500 and gets
// logged with the given message.
func handleJSONError(w http.ResponseWriter, err error, msg string) {
	cause := pkgErrors.Cause(err)

	var validationErr app.ValidationError
	if errors.As(cause, &validationErr) {
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Error: validationErr.Reason,
			Field: validationErr.Field,
		})
		return
	}

	if app.IsConflict(err) {
		respondJSON(w, http.StatusConflict, errorResponse{Error: cause.Error()})
		return
	}

	switch cause {
	case app.ErrNotFound, errInvalidID:
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case app.ErrLoginInvalid:
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: cause.Error()})
	case app.ErrEmailRequired, app.ErrPasswordRequired, app.ErrPasswordTooShort, app.ErrPasswordConfirmationMismatch:
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: cause.Error()})
	default:
		log.ErrorWrap(err, msg)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
