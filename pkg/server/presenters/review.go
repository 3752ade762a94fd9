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

package presenters

import (
	"time"

	"github.com/ElzarU/Onlibry/pkg/server/database"
)

// Review is a result of PresentReview
type Review struct {
	ID        int        `json:"id"`
	BookID    int        `json:"book"`
	User      ReviewUser `json:"user"`
	Rating    int        `json:"rating"`
	Text      string     `json:"text"`
	IsVisible bool       `json:"is_visible"`
	CreatedAt time.Time  `json:"created_at"`
}

// ReviewUser is a nested user for PresentReview
type ReviewUser struct {
	UUID string `json:"uuid"`
}

// PresentReview presents a review
func PresentReview(review database.Review) Review {
	return Review{
		ID:     review.ID,
		BookID: review.BookID,
		User: ReviewUser{
			UUID: review.User.UUID,
		},
		Rating:    review.Rating,
		Text:      review.Text,
		IsVisible: review.IsVisible,
		CreatedAt: FormatTS(review.CreatedAt),
	}
}

// PresentReviews presents reviews
func PresentReviews(reviews []database.Review) []Review {
	ret := []Review{}

	for _, review := range reviews {
		p := PresentReview(review)
		ret = append(ret, p)
	}

	return ret
}
