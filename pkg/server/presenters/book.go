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

	"github.com/ElzarU/Onlibry/pkg/server/app"
)

// Book is a result of PresentBook. The read shape embeds full author
// and genre objects along with the review aggregates.
type Book struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Year         *int      `json:"year"`
	CoverURL     *string   `json:"cover_url"`
	Authors      []Author  `json:"authors"`
	Genres       []Genre   `json:"genres"`
	AvgRating    *float64  `json:"avg_rating"`
	ReviewsCount int       `json:"reviews_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// PresentBook presents a book record
func PresentBook(record app.BookRecord) Book {
	return Book{
		ID:           record.ID,
		Title:        record.Title,
		Description:  record.Description,
		Year:         record.Year,
		CoverURL:     record.CoverURL,
		Authors:      PresentAuthors(record.Authors),
		Genres:       PresentGenres(record.Genres),
		AvgRating:    record.AvgRating,
		ReviewsCount: record.ReviewsCount,
		CreatedAt:    FormatTS(record.CreatedAt),
	}
}

// PresentBooks presents book records
func PresentBooks(records []app.BookRecord) []Book {
	ret := []Book{}

	for _, record := range records {
		p := PresentBook(record)
		ret = append(ret, p)
	}

	return ret
}
