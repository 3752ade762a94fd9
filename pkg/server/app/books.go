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
	"database/sql"
	"errors"
	"strings"

	"github.com/ElzarU/Onlibry/pkg/server/database"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// BookParams is the parameters for creating or updating a book. Nil
// fields are left untouched on update.
type BookParams struct {
	Title       *string
	Description *string
	Year        *int
	CoverURL    *string
	AuthorIDs   *[]int
	GenreIDs    *[]int
}

// BookQuery is the filter parameters for listing books. Filters are
// combined with AND.
type BookQuery struct {
	AuthorID *int
	GenreID  *int
	Year     *int
	Search   string
	Sort     string
}

// BookRecord is a book decorated with review aggregates. AvgRating is
// nil when the book has no reviews.
type BookRecord struct {
	database.Book
	AvgRating    *float64
	ReviewsCount int
}

func sortClause(sort string) (string, error) {
	switch sort {
	case "", "-id":
		return "books.id DESC", nil
	case "id":
		return "books.id ASC", nil
	case "year":
		return "books.year ASC", nil
	case "-year":
		return "books.year DESC", nil
	default:
		return "", NewValidationError("sort", "must be one of id, -id, year, -year")
	}
}

// resolveAuthors finds the authors with the given ids. Unresolvable ids
// are skipped without an error.
func resolveAuthors(db *gorm.DB, ids []int) ([]database.Author, error) {
	authors := []database.Author{}
	if len(ids) == 0 {
		return authors, nil
	}

	if err := db.Where("id IN ?", ids).Find(&authors).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "finding authors")
	}

	return authors, nil
}

// resolveGenres finds the genres with the given ids. Unresolvable ids
// are skipped without an error.
func resolveGenres(db *gorm.DB, ids []int) ([]database.Genre, error) {
	genres := []database.Genre{}
	if len(ids) == 0 {
		return genres, nil
	}

	if err := db.Where("id IN ?", ids).Find(&genres).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "finding genres")
	}

	return genres, nil
}

// CreateBook creates a book and links the resolvable authors and genres
func (a *App) CreateBook(p BookParams) (BookRecord, error) {
	if p.Title == nil || *p.Title == "" {
		return BookRecord{}, NewValidationError("title", "is required")
	}

	book := database.Book{
		Title: *p.Title,
		Year:  p.Year,
	}
	if p.Description != nil {
		book.Description = *p.Description
	}
	if p.CoverURL != nil {
		book.CoverURL = p.CoverURL
	}

	tx := a.DB.Begin()

	if err := tx.Omit("Authors", "Genres").Create(&book).Error; err != nil {
		tx.Rollback()
		return BookRecord{}, pkgErrors.Wrap(err, "inserting book")
	}

	if p.AuthorIDs != nil {
		authors, err := resolveAuthors(tx, *p.AuthorIDs)
		if err != nil {
			tx.Rollback()
			return BookRecord{}, err
		}
		if err := tx.Model(&book).Association("Authors").Replace(authors); err != nil {
			tx.Rollback()
			return BookRecord{}, pkgErrors.Wrap(err, "linking authors")
		}
	}
	if p.GenreIDs != nil {
		genres, err := resolveGenres(tx, *p.GenreIDs)
		if err != nil {
			tx.Rollback()
			return BookRecord{}, err
		}
		if err := tx.Model(&book).Association("Genres").Replace(genres); err != nil {
			tx.Rollback()
			return BookRecord{}, pkgErrors.Wrap(err, "linking genres")
		}
	}

	tx.Commit()

	return a.GetBook(book.ID)
}

// UpdateBook updates the given book. Association id lists, when present,
// replace the existing links.
func (a *App) UpdateBook(book database.Book, p BookParams) (BookRecord, error) {
	if p.Title != nil {
		if *p.Title == "" {
			return BookRecord{}, NewValidationError("title", "is required")
		}
		book.Title = *p.Title
	}
	if p.Description != nil {
		book.Description = *p.Description
	}
	if p.Year != nil {
		book.Year = p.Year
	}
	if p.CoverURL != nil {
		book.CoverURL = p.CoverURL
	}

	tx := a.DB.Begin()

	if err := tx.Omit("Authors", "Genres").Save(&book).Error; err != nil {
		tx.Rollback()
		return BookRecord{}, pkgErrors.Wrap(err, "updating book")
	}

	if p.AuthorIDs != nil {
		authors, err := resolveAuthors(tx, *p.AuthorIDs)
		if err != nil {
			tx.Rollback()
			return BookRecord{}, err
		}
		if err := tx.Model(&book).Association("Authors").Replace(authors); err != nil {
			tx.Rollback()
			return BookRecord{}, pkgErrors.Wrap(err, "replacing authors")
		}
	}
	if p.GenreIDs != nil {
		genres, err := resolveGenres(tx, *p.GenreIDs)
		if err != nil {
			tx.Rollback()
			return BookRecord{}, err
		}
		if err := tx.Model(&book).Association("Genres").Replace(genres); err != nil {
			tx.Rollback()
			return BookRecord{}, pkgErrors.Wrap(err, "replacing genres")
		}
	}

	tx.Commit()

	return a.GetBook(book.ID)
}

// GetBookRaw returns the book with the given id without aggregates
func (a *App) GetBookRaw(id int) (database.Book, error) {
	var book database.Book
	err := a.DB.Preload("Authors").Preload("Genres").Where("id = ?", id).First(&book).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Book{}, ErrNotFound
	} else if err != nil {
		return database.Book{}, pkgErrors.Wrap(err, "finding book")
	}

	return book, nil
}

// GetBook returns the book with the given id along with its review aggregates
func (a *App) GetBook(id int) (BookRecord, error) {
	book, err := a.GetBookRaw(id)
	if err != nil {
		return BookRecord{}, err
	}

	records, err := a.decorateBooks([]database.Book{book})
	if err != nil {
		return BookRecord{}, err
	}

	return records[0], nil
}

// GetBooks returns the books matching the given query, decorated with
// review aggregates
func (a *App) GetBooks(q BookQuery) ([]BookRecord, error) {
	order, err := sortClause(q.Sort)
	if err != nil {
		return nil, err
	}

	conn := a.DB.Model(&database.Book{}).Preload("Authors").Preload("Genres")

	if q.AuthorID != nil {
		conn = conn.Joins("INNER JOIN book_authors fba ON fba.book_id = books.id AND fba.author_id = ?", *q.AuthorID)
	}
	if q.GenreID != nil {
		conn = conn.Joins("INNER JOIN book_genres fbg ON fbg.book_id = books.id AND fbg.genre_id = ?", *q.GenreID)
	}
	if q.Year != nil {
		conn = conn.Where("books.year = ?", *q.Year)
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		conn = conn.
			Joins("LEFT JOIN book_authors sba ON sba.book_id = books.id").
			Joins("LEFT JOIN authors sa ON sa.id = sba.author_id").
			Where("LOWER(books.title) LIKE ? OR LOWER(books.description) LIKE ? OR LOWER(sa.name) LIKE ?",
				pattern, pattern, pattern)
	}

	var books []database.Book
	if err := conn.Distinct("books.*").Order(order).Find(&books).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "finding books")
	}

	return a.decorateBooks(books)
}

type bookAggregate struct {
	BookID       int
	AvgRating    sql.NullFloat64
	ReviewsCount int
}

// decorateBooks attaches review aggregates to the given books. The
// aggregates include non-visible reviews and reflect the review table
// at the time of the call.
func (a *App) decorateBooks(books []database.Book) ([]BookRecord, error) {
	records := []BookRecord{}
	if len(books) == 0 {
		return records, nil
	}

	ids := make([]int, 0, len(books))
	for _, book := range books {
		ids = append(ids, book.ID)
	}

	var rows []bookAggregate
	err := a.DB.Model(&database.Review{}).
		Select("book_id, AVG(rating) AS avg_rating, COUNT(*) AS reviews_count").
		Where("book_id IN ?", ids).
		Group("book_id").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgErrors.Wrap(err, "aggregating reviews")
	}

	aggregates := make(map[int]bookAggregate, len(rows))
	for _, row := range rows {
		aggregates[row.BookID] = row
	}

	for _, book := range books {
		record := BookRecord{Book: book}

		if agg, ok := aggregates[book.ID]; ok {
			record.ReviewsCount = agg.ReviewsCount
			if agg.AvgRating.Valid {
				avg := agg.AvgRating.Float64
				record.AvgRating = &avg
			}
		}

		records = append(records, record)
	}

	return records, nil
}

// DeleteBook deletes the given book along with its reviews, favorites,
// reading statuses, and author/genre links. The cleanup is a single
// transaction so that no orphaned rows remain.
func (a *App) DeleteBook(book database.Book) error {
	tx := a.DB.Begin()

	if err := tx.Where("book_id = ?", book.ID).Delete(&database.Review{}).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting book reviews")
	}
	if err := tx.Where("book_id = ?", book.ID).Delete(&database.Favorite{}).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting book favorites")
	}
	if err := tx.Where("book_id = ?", book.ID).Delete(&database.UserBook{}).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting book reading statuses")
	}
	if err := tx.Exec("DELETE FROM book_authors WHERE book_id = ?", book.ID).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "unlinking book authors")
	}
	if err := tx.Exec("DELETE FROM book_genres WHERE book_id = ?", book.ID).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "unlinking book genres")
	}
	if err := tx.Delete(&book).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting book")
	}

	tx.Commit()

	return nil
}
