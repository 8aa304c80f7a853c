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

package tokenclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/karlseguin/ccache"
	"github.com/navikt/avvist-til-oppgave/internal/config"
	"github.com/navikt/avvist-til-oppgave/internal/i18n"
	"github.com/navikt/avvist-til-oppgave/internal/log"
	"github.com/navikt/avvist-til-oppgave/internal/restclient"
)

const (
	// TokenConfCacheSkew how long before expiry a cached token is replaced
	TokenConfCacheSkew = "cache.skew"
	// TokenConfCacheLimit the maximum number of targets to cache tokens for
	TokenConfCacheLimit = "cache.limit"
)

const identityProviderEntraID = "entra_id"

// Client obtains machine-to-machine bearer tokens from the platform token endpoint
type Client interface {
	GetToken(ctx context.Context, target string) (string, error)
}

type tokenRequest struct {
	IdentityProvider string `json:"identity_provider"`
	Target           string `json:"target"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

type tokenClient struct {
	client *resty.Client
	cache  *ccache.Cache
	skew   time.Duration
}

func InitPrefix(prefix config.Prefix) {
	restclient.InitPrefix(prefix)
	prefix.AddKnownKey(TokenConfCacheSkew, "30s")
	prefix.AddKnownKey(TokenConfCacheLimit, 100)
}

func New(ctx context.Context, conf config.Prefix) Client {
	return &tokenClient{
		client: restclient.New(ctx, conf),
		cache:  ccache.New(ccache.Configure().MaxSize(conf.GetInt64(TokenConfCacheLimit))),
		skew:   conf.GetDuration(TokenConfCacheSkew),
	}
}

func (tc *tokenClient) GetToken(ctx context.Context, target string) (string, error) {
	if cached := tc.cache.Get(target); cached != nil && !cached.Expired() {
		return cached.Value().(string), nil
	}

	var token tokenResponse
	res, err := tc.client.R().
		SetContext(ctx).
		ExpectContentType("application/json").
		SetBody(&tokenRequest{
			IdentityProvider: identityProviderEntraID,
			Target:           target,
		}).
		SetResult(&token).
		Post("")
	if err != nil || !res.IsSuccess() {
		return "", restclient.WrapRestErr(ctx, res, err, i18n.MsgTokenRequestFailed, target)
	}
	if token.AccessToken == "" {
		return "", i18n.NewError(ctx, i18n.MsgTokenEmpty, target)
	}

	ttl := time.Duration(token.ExpiresIn)*time.Second - tc.skew
	if ttl > 0 {
		tc.cache.Set(target, token.AccessToken, ttl)
	}
	log.L(ctx).Debugf("Obtained token for %s expiring in %ds", target, token.ExpiresIn)
	return token.AccessToken, nil
}
