// Copyright 2021 - 2023 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vector

import "math/bits"

// NextCapacity returns the smallest power of two that can hold
// requested elements; NextCapacity(0) is 1.  Power-of-two growth keeps
// Append amortized O(1) at the price of up to 2x over-allocation.
func NextCapacity(requested int) int {
	if requested <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(requested-1))
}
