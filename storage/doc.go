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


// Package storage defines the persistence interfaces for survival cards and
// the binary serialization used by storage backends.
//
// The interfaces are backend-agnostic; the badger sub-package provides the
// BadgerDB implementation used in production and (in-memory) in tests.
// Serialization uses the mus-go wire format defined in the core package, so
// stored bytes are stable across processes and releases.
package storage
