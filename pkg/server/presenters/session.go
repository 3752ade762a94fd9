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

// Session is a result of PresentSession
type Session struct {
	Key       string `json:"key"`
	ExpiresAt int64  `json:"expires_at"`
}

// PresentSession presents a session
func PresentSession(session database.Session) Session {
	return Session{
		Key:       session.Key,
		ExpiresAt: session.ExpiresAt.Unix(),
	}
}
