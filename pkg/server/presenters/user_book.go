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

// UserBook is a result of PresentUserBook
type UserBook struct {
	ID        int       `json:"id"`
	BookID    int       `json:"book"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// PresentUserBook presents a reading status
func PresentUserBook(userBook database.UserBook) UserBook {
	return UserBook{
		ID:        userBook.ID,
		BookID:    userBook.BookID,
		Status:    userBook.Status,
		CreatedAt: FormatTS(userBook.CreatedAt),
	}
}

// PresentUserBooks presents reading statuses
func PresentUserBooks(userBooks []database.UserBook) []UserBook {
	ret := []UserBook{}

	for _, userBook := range userBooks {
		p := PresentUserBook(userBook)
		ret = append(ret, p)
	}

	return ret
}
