/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

package zoom

// scope holds listener releases acquired together, and releases them all
// exactly once.
type scope struct {
	releases []ReleaseFunc
}

func (s *scope) acquire(releases ...ReleaseFunc) {
	s.releases = append(s.releases, releases...)
}

func (s *scope) held() bool {
	return len(s.releases) > 0
}

// release invokes the held releases in reverse order of acquisition.
func (s *scope) release() {
	releases := s.releases
	s.releases = nil
	for i := len(releases) - 1; i >= 0; i-- {
		releases[i]()
	}
}
