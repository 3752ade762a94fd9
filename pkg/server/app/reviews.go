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

package app

import (
	"errors"

	"github.com/ElzarU/Onlibry/pkg/server/database"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// GetReviews returns reviews, newest first. A non-nil bookID restricts
// the result to reviews of that book.
func (a *App) GetReviews(bookID *int) ([]database.Review, error) {
	conn := a.DB.Preload("User").Order("id DESC")
	if bookID != nil {
		conn = conn.Where("book_id = ?", *bookID)
	}

	var reviews []database.Review
	if err := conn.Find(&reviews).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "finding reviews")
	}

	return reviews, nil
}

// GetReview returns the review with the given id
func (a *App) GetReview(id int) (database.Review, error) {
	var review database.Review
	err := a.DB.Preload("User").Where("id = ?", id).First(&review).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Review{}, ErrNotFound
	} else if err != nil {
		return database.Review{}, pkgErrors.Wrap(err, "finding review")
	}

	return review, nil
}

// CreateReview creates a review of the given book by the given user.
// The reviewer and the visibility flag always come from the server
// side, never from the client payload. A second review for the same
// (book, user) pair fails with ErrDuplicateReview.
func (a *App) CreateReview(user database.User, bookID int, rating int, text string) (database.Review, error) {
	if rating < 1 || rating > 5 {
		return database.Review{}, NewValidationError("rating", "must be between 1 and 5")
	}

	var count int64
	if err := a.DB.Model(&database.Book{}).Where("id = ?", bookID).Count(&count).Error; err != nil {
		return database.Review{}, pkgErrors.Wrap(err, "checking book")
	}
	if count == 0 {
		return database.Review{}, ErrNotFound
	}

	review := database.Review{
		BookID:    bookID,
		UserID:    user.ID,
		Rating:    rating,
		Text:      text,
		IsVisible: true,
	}
	err := a.DB.Create(&review).Error

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return database.Review{}, ErrDuplicateReview
	} else if err != nil {
		return database.Review{}, pkgErrors.Wrap(err, "inserting review")
	}

	review.User = user

	return review, nil
}

// DeleteReview deletes the given review. Deletion requires an
// authenticated caller but is not restricted to the review's author.
func (a *App) DeleteReview(review database.Review) error {
	if err := a.DB.Delete(&review).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting review")
	}

	return nil
}
