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
	mw "github.com/ElzarU/Onlibry/pkg/server/middleware"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// Route represents a single route
type Route struct {
	Method    string
	Pattern   string
	Handler   http.HandlerFunc
	RateLimit bool
}

// RouteConfig is the configuration for routes
type RouteConfig struct {
	Controllers *Controllers
	APIRoutes   []Route
}

// NewAPIRoutes returns the api routes. Catalog reads are public and
// carry the user context when a session is present so that privileged
// checks happen in the handlers. Everything else requires a session.
func NewAPIRoutes(a *app.App, c *Controllers) []Route {
	ret := []Route{
		{"POST", "/signin", c.Users.Login, true},
		{"POST", "/signout", c.Users.Logout, true},

		{"GET", "/authors", mw.AuthOptional(a.DB, c.Authors.Index), true},
		{"GET", "/authors/{id}", mw.AuthOptional(a.DB, c.Authors.Show), true},
		{"POST", "/authors", mw.Auth(a.DB, c.Authors.Create), true},
		{"PATCH", "/authors/{id}", mw.Auth(a.DB, c.Authors.Update), true},
		{"DELETE", "/authors/{id}", mw.Auth(a.DB, c.Authors.Delete), true},

		{"GET", "/genres", mw.AuthOptional(a.DB, c.Genres.Index), true},
		{"GET", "/genres/{id}", mw.AuthOptional(a.DB, c.Genres.Show), true},
		{"POST", "/genres", mw.Auth(a.DB, c.Genres.Create), true},
		{"PATCH", "/genres/{id}", mw.Auth(a.DB, c.Genres.Update), true},
		{"DELETE", "/genres/{id}", mw.Auth(a.DB, c.Genres.Delete), true},

		{"GET", "/books", mw.AuthOptional(a.DB, c.Books.Index), true},
		{"GET", "/books/{id}", mw.AuthOptional(a.DB, c.Books.Show), true},
		{"POST", "/books", mw.Auth(a.DB, c.Books.Create), true},
		{"PATCH", "/books/{id}", mw.Auth(a.DB, c.Books.Update), true},
		{"DELETE", "/books/{id}", mw.Auth(a.DB, c.Books.Delete), true},

		{"GET", "/reviews", mw.AuthOptional(a.DB, c.Reviews.Index), true},
		{"GET", "/reviews/{id}", mw.AuthOptional(a.DB, c.Reviews.Show), true},
		{"POST", "/reviews", mw.Auth(a.DB, c.Reviews.Create), true},
		{"DELETE", "/reviews/{id}", mw.Auth(a.DB, c.Reviews.Delete), true},

		{"GET", "/favorites", mw.Auth(a.DB, c.Favorites.Index), true},
		{"GET", "/favorites/{id}", mw.Auth(a.DB, c.Favorites.Show), true},
		{"POST", "/favorites", mw.Auth(a.DB, c.Favorites.Create), true},
		{"DELETE", "/favorites/{id}", mw.Auth(a.DB, c.Favorites.Delete), true},

		{"GET", "/user/books", mw.Auth(a.DB, c.UserBooks.Index), true},
		{"GET", "/user/books/{id}", mw.Auth(a.DB, c.UserBooks.Show), true},
		{"POST", "/user/books", mw.Auth(a.DB, c.UserBooks.Upsert), true},
		{"PATCH", "/user/books/{id}", mw.Auth(a.DB, c.UserBooks.Update), true},
		{"DELETE", "/user/books/{id}", mw.Auth(a.DB, c.UserBooks.Delete), true},
	}

	if !a.DisableRegistration {
		ret = append(ret, Route{"POST", "/register", c.Users.Register, true})
	}

	return ret
}

func registerRoutes(router *mux.Router, wrapper mw.Middleware, app *app.App, routes []Route) {
	for _, route := range routes {
		wrappedHandler := wrapper(route.Handler, app, route.RateLimit)

		router.
			Handle(route.Pattern, wrappedHandler).
			Methods(route.Method)
	}
}

// NewRouter creates and returns a new router
func NewRouter(app *app.App, rc RouteConfig) (http.Handler, error) {
	if err := app.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating the app parameters")
	}

	router := mux.NewRouter().StrictSlash(true)

	apiRouter := router.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter, mw.APIMw, app, rc.APIRoutes)

	router.Handle("/health", mw.ApplyLimit(http.HandlerFunc(rc.Controllers.Health.Index), true)).Methods("GET")

	router.PathPrefix("/api/v1").Handler(mw.ApplyLimit(http.HandlerFunc(mw.NotSupported), true))

	return mw.Global(router), nil
}
