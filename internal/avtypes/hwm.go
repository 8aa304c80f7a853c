// Copyright © 2025 NAV (Arbeids- og velferdsetaten)
//
// SPDX-License-Identifier: Apache-2.0
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

package avtypes

import "fmt"

// HWMNone is the stored offset of a partition where nothing has been consumed yet
const HWMNone int64 = -1

// HWM is the high-water-mark of one partition of one topic, for one consumer version.
// It is the offset of the last message whose effect has been committed.
type HWM struct {
	Version   int16  `json:"version"`
	Topic     string `json:"topic"`
	Partition int32  `json:"partition"`
	Offset    int64  `json:"offset"`
}

// IsNone is true when nothing has been applied on the partition yet
func (h *HWM) IsNone() bool {
	return h.Offset == HWMNone
}

// NextOffset is the offset of the first message that has not been applied
func (h *HWM) NextOffset() int64 {
	return h.Offset + 1
}

func (h *HWM) String() string {
	return fmt.Sprintf("v%d:%s[%d]@%d", h.Version, h.Topic, h.Partition, h.Offset)
}
