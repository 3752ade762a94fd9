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

package middleware

import (
	"net/http"

	"github.com/ElzarU/Onlibry/pkg/server/app"
	"github.com/ElzarU/Onlibry/pkg/server/log"
)

// Middleware is a middleware for a handler
type Middleware func(h http.HandlerFunc, app *app.App, rateLimit bool) http.Handler

// APIMw is the middleware for API routes
func APIMw(h http.HandlerFunc, a *app.App, rateLimit bool) http.Handler {
	ret := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		h.ServeHTTP(w, r)
	})

	return ApplyLimit(ret, rateLimit)
}

// Global applies the middlewares that are used for all routes
func Global(h http.Handler) http.Handler {
	return logging(h)
}

// logging logs the request
func logging(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r)

		log.WithFields(log.Fields{
			"remoteAddr": lookupIP(r),
			"method":     r.Method,
			"uri":        r.RequestURI,
		}).Debug("incoming request")
	})
}

// NotSupported is a handler for routes that are no longer supported
func NotSupported(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "API version is not supported. Please upgrade your client.", http.StatusGone)
}

// DoError logs the error and responds with the given status code
func DoError(w http.ResponseWriter, msg string, err error, statusCode int) {
	log.WithFields(log.Fields{
		"statusCode": statusCode,
	}).ErrorWrap(err, msg)

	http.Error(w, http.StatusText(statusCode), statusCode)
}

// RespondUnauthorized responds with 401
func RespondUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="onlibry"`)
	http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
}

// RespondForbidden responds with 403
func RespondForbidden(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
}
