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
	"testing"

	"github.com/ElzarU/Onlibry/pkg/assert"
	"github.com/ElzarU/Onlibry/pkg/server/database"
	"github.com/ElzarU/Onlibry/pkg/server/testutils"
	"github.com/pkg/errors"
)

func TestCreateGenre(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	a := NewTest()
	a.DB = db

	genre, err := a.CreateGenre("Science Fiction")
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating genre"))
	}

	var count int64
	testutils.MustExec(t, db.Model(&database.Genre{}).Count(&count), "counting genres")

	assert.Equal(t, count, int64(1), "genre count mismatch")
	assert.Equal(t, genre.Name, "Science Fiction", "genre name mismatch")
}

func TestCreateGenre_Duplicate(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	a := NewTest()
	a.DB = db

	if _, err := a.CreateGenre("Science Fiction"); err != nil {
		t.Fatal(errors.Wrap(err, "creating genre"))
	}

	_, err := a.CreateGenre("Science Fiction")
	assert.Equal(t, errors.Cause(err), ErrDuplicateGenre, "error mismatch")
	if !IsConflict(err) {
		t.Errorf("expected a conflict error but got %v", err)
	}
}

func TestCreateGenre_EmptyName(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	a := NewTest()
	a.DB = db

	_, err := a.CreateGenre("")
	if !IsValidationError(err) {
		t.Errorf("expected a validation error but got %v", err)
	}
}

func TestDeleteGenre(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	a := NewTest()
	a.DB = db

	genre, err := a.CreateGenre("Science Fiction")
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating genre"))
	}

	book, err := a.CreateBook(BookParams{
		Title:    strPtr("Solaris"),
		GenreIDs: &[]int{genre.ID},
	})
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating book"))
	}

	if err := a.DeleteGenre(genre); err != nil {
		t.Fatal(errors.Wrap(err, "deleting genre"))
	}

	var count int64
	testutils.MustExec(t, db.Model(&database.Genre{}).Count(&count), "counting genres")
	assert.Equal(t, count, int64(0), "genre count mismatch")

	record, err := a.GetBook(book.ID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting book"))
	}
	assert.Equal(t, len(record.Genres), 0, "book genre count mismatch")
}
