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

// Favorite is a result of PresentFavorite
type Favorite struct {
	ID        int       `json:"id"`
	BookID    int       `json:"book"`
	CreatedAt time.Time `json:"created_at"`
}

// PresentFavorite presents a favorite
func PresentFavorite(favorite database.Favorite) Favorite {
	return Favorite{
		ID:        favorite.ID,
		BookID:    favorite.BookID,
		CreatedAt: FormatTS(favorite.CreatedAt),
	}
}

// PresentFavorites presents favorites
func PresentFavorites(favorites []database.Favorite) []Favorite {
	ret := []Favorite{}

	for _, favorite := range favorites {
		p := PresentFavorite(favorite)
		ret = append(ret, p)
	}

	return ret
}
