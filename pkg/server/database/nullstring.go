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
	"database/sql"
	"encoding/json"
)

// NullString is a nullable string column that serializes to JSON
// as either a string or null
type NullString struct {
	sql.NullString
}

// ToNullString creates a NullString with the given value. An empty
// string becomes null.
func ToNullString(s string) NullString {
	return NullString{
		NullString: sql.NullString{
			String: s,
			Valid:  s != "",
		},
	}
}

// MarshalJSON implements json.Marshaler
func (s NullString) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return json.Marshal(nil)
	}

	return json.Marshal(s.String)
}

// UnmarshalJSON implements json.Unmarshaler
func (s *NullString) UnmarshalJSON(data []byte) error {
	var v *string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	if v == nil {
		s.String, s.Valid = "", false
	} else {
		s.String, s.Valid = *v, true
	}

	return nil
}
