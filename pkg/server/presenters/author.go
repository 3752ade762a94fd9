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
	"github.com/ElzarU/Onlibry/pkg/server/database"
)

// Author is a result of PresentAuthor
type Author struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// PresentAuthor presents an author
func PresentAuthor(author database.Author) Author {
	return Author{
		ID:   author.ID,
		Name: author.Name,
	}
}

// PresentAuthors presents authors
func PresentAuthors(authors []database.Author) []Author {
	ret := []Author{}

	for _, author := range authors {
		p := PresentAuthor(author)
		ret = append(ret, p)
	}

	return ret
}
