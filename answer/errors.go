// Copyright 2025 Calder Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package answer

import "errors"

var (
	// ErrGeneratorRequired is returned when a composer is built without a generator.
	ErrGeneratorRequired = errors.New("generator required")

	// ErrGenerationDisabled is returned by Compose when generation has been
	// turned off and the caller should fall back to raw card display.
	ErrGenerationDisabled = errors.New("answer generation disabled")

	// ErrGenerationUnavailable wraps model transport failures. Callers are
	// expected to degrade to raw card display rather than fail the request.
	ErrGenerationUnavailable = errors.New("answer generation unavailable")
)
