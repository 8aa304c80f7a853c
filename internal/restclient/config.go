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

package restclient

import "github.com/navikt/avvist-til-oppgave/internal/config"

const (
	defaultRequestTimeout   = "10s"
	defaultRetryEnabled     = false
	defaultRetryCount       = 5
	defaultRetryWaitTime    = "250ms"
	defaultRetryMaxWaitTime = "30s"
)

const (
	// HTTPConfigURL the base URL of the remote API
	HTTPConfigURL = "url"
	// HTTPConfigHeaders static headers sent on every request
	HTTPConfigHeaders = "headers"
	// HTTPConfigRequestTimeout the timeout for each request, including reading the body
	HTTPConfigRequestTimeout = "requestTimeout"
	// HTTPConfigRetryEnabled whether to retry transport errors and 5xx responses
	HTTPConfigRetryEnabled = "retry.enabled"
	// HTTPConfigRetryCount the maximum number of retries
	HTTPConfigRetryCount = "retry.count"
	// HTTPConfigRetryWaitTime the initial delay between retries
	HTTPConfigRetryWaitTime = "retry.waitTime"
	// HTTPConfigRetryMaxWaitTime the maximum delay between retries
	HTTPConfigRetryMaxWaitTime = "retry.maxWaitTime"

	// HTTPCustomClient unit test only
	HTTPCustomClient = "customClient"
)

func InitPrefix(prefix config.Prefix) {
	prefix.AddKnownKey(HTTPConfigURL)
	prefix.AddKnownKey(HTTPConfigHeaders)
	prefix.AddKnownKey(HTTPConfigRequestTimeout, defaultRequestTimeout)
	prefix.AddKnownKey(HTTPConfigRetryEnabled, defaultRetryEnabled)
	prefix.AddKnownKey(HTTPConfigRetryCount, defaultRetryCount)
	prefix.AddKnownKey(HTTPConfigRetryWaitTime, defaultRetryWaitTime)
	prefix.AddKnownKey(HTTPConfigRetryMaxWaitTime, defaultRetryMaxWaitTime)

	prefix.AddKnownKey(HTTPCustomClient)
}
