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

package database

import (
	"time"
)

// Model is the base model definition
type Model struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// User is a model for a user
type User struct {
	Model
	UUID        string     `json:"uuid" gorm:"type:text;uniqueIndex"`
	Email       NullString `gorm:"uniqueIndex"`
	Password    NullString `json:"-"`
	Role        string     `json:"role" gorm:"default:user"`
	LastLoginAt *time.Time `json:"-"`
}

// Session represents a user session
type Session struct {
	Model
	UserID     int    `gorm:"index"`
	Key        string `gorm:"index"`
	LastUsedAt time.Time
	ExpiresAt  time.Time
}

// Author is a model for a book author
type Author struct {
	Model
	Name  string `json:"name" gorm:"uniqueIndex;type:text"`
	Books []Book `json:"-" gorm:"many2many:book_authors"`
}

// Genre is a model for a book genre
type Genre struct {
	Model
	Name  string `json:"name" gorm:"uniqueIndex;type:text"`
	Books []Book `json:"-" gorm:"many2many:book_genres"`
}

// Book is a model for a catalog book
type Book struct {
	Model
	Title       string   `json:"title" gorm:"index;type:text"`
	Description string   `json:"description"`
	Year        *int     `json:"year"`
	CoverURL    *string  `json:"cover_url"`
	Authors     []Author `json:"authors" gorm:"many2many:book_authors"`
	Genres      []Genre  `json:"genres" gorm:"many2many:book_genres"`
	Reviews     []Review `json:"-"`
}

// Review is a model for a user review of a book. A user can review a given
// book at most once; the composite unique index enforces it.
type Review struct {
	Model
	BookID    int    `json:"book_id" gorm:"uniqueIndex:idx_reviews_book_user;index"`
	UserID    int    `json:"user_id" gorm:"uniqueIndex:idx_reviews_book_user"`
	Book      Book   `json:"-"`
	User      User   `json:"-"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
	IsVisible bool   `json:"is_visible" gorm:"default:true"`
}

// Favorite marks a book as a favorite of a user
type Favorite struct {
	Model
	UserID int  `json:"user_id" gorm:"uniqueIndex:idx_favorites_user_book"`
	BookID int  `json:"book_id" gorm:"uniqueIndex:idx_favorites_user_book"`
	Book   Book `json:"-"`
}

// UserBook tracks the reading status of a book for a user
type UserBook struct {
	Model
	UserID int    `json:"user_id" gorm:"uniqueIndex:idx_user_books_user_book"`
	BookID int    `json:"book_id" gorm:"uniqueIndex:idx_user_books_user_book"`
	Book   Book   `json:"-"`
	Status string `json:"status"`
}
