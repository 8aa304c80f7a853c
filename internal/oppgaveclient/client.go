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

package oppgaveclient

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/navikt/avvist-til-oppgave/internal/avtypes"
	"github.com/navikt/avvist-til-oppgave/internal/config"
	"github.com/navikt/avvist-til-oppgave/internal/i18n"
	"github.com/navikt/avvist-til-oppgave/internal/restclient"
	"github.com/navikt/avvist-til-oppgave/internal/tokenclient"
	"github.com/pkg/errors"
)

const (
	oppgaverPath        = "/api/v1/oppgaver"
	correlationIDHeader = "X-Correlation-ID"
)

// Client is the Oppgave API, where oppgaver are handled by caseworkers
type Client interface {
	CreateOppgave(ctx context.Context, req *OpprettOppgaveRequest) (*OppgaveDTO, error)
	GetOppgave(ctx context.Context, id int64) (*OppgaveDTO, error)
}

// APIError is a failed call to the Oppgave API. Status is zero when no response was received.
type APIError struct {
	Status  int
	Message string
	err     error
}

func (e *APIError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
	}
	return e.err.Error()
}

func (e *APIError) Unwrap() error {
	return e.err
}

// AsAPIError finds the APIError in the chain of err
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// IsNotFound is true when the Oppgave API does not know the oppgave
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusNotFound
}

type oppgaveClient struct {
	client *resty.Client
	tokens tokenclient.Client
	scope  string
}

func InitPrefix(prefix config.Prefix) {
	restclient.InitPrefix(prefix)
}

func New(ctx context.Context, conf config.Prefix, tokens tokenclient.Client) Client {
	return &oppgaveClient{
		client: restclient.New(ctx, conf),
		tokens: tokens,
		scope:  config.GetString(config.OppgaveTokenScope),
	}
}

func (oc *oppgaveClient) request(ctx context.Context) (*resty.Request, error) {
	token, err := oc.tokens.GetToken(ctx, oc.scope)
	if err != nil {
		return nil, &APIError{Message: err.Error(), err: err}
	}
	return oc.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader(correlationIDHeader, avtypes.NewUUID().String()).
		ExpectContentType("application/json"), nil
}

// CreateOppgave succeeds only on 201 Created
func (oc *oppgaveClient) CreateOppgave(ctx context.Context, body *OpprettOppgaveRequest) (*OppgaveDTO, error) {
	req, err := oc.request(ctx)
	if err != nil {
		return nil, err
	}
	var oppgave OppgaveDTO
	res, err := req.
		SetBody(body).
		SetResult(&oppgave).
		Post(oppgaverPath)
	if err != nil || res.StatusCode() != http.StatusCreated {
		return nil, oc.apiError(ctx, res, err)
	}
	if oppgave.ID == 0 {
		return nil, &APIError{Status: res.StatusCode(), err: i18n.NewError(ctx, i18n.MsgOppgaveAPIResponseEmpty)}
	}
	return &oppgave, nil
}

func (oc *oppgaveClient) GetOppgave(ctx context.Context, id int64) (*OppgaveDTO, error) {
	req, err := oc.request(ctx)
	if err != nil {
		return nil, err
	}
	var oppgave OppgaveDTO
	res, err := req.
		SetResult(&oppgave).
		Get(oppgaverPath + "/" + strconv.FormatInt(id, 10))
	if err == nil && res.StatusCode() == http.StatusNotFound {
		return nil, &APIError{Status: http.StatusNotFound, Message: "Oppgave ikke funnet", err: i18n.NewError(ctx, i18n.MsgOppgaveNotFound, id)}
	}
	if err != nil || res.StatusCode() != http.StatusOK {
		return nil, oc.apiError(ctx, res, err)
	}
	return &oppgave, nil
}

func (oc *oppgaveClient) apiError(ctx context.Context, res *resty.Response, err error) *APIError {
	if err != nil {
		return &APIError{Message: err.Error(), err: restclient.WrapRestErr(ctx, res, err, i18n.MsgOppgaveAPIRequestFailed)}
	}
	status := res.StatusCode()
	return &APIError{
		Status:  status,
		Message: restclient.ErrorBody(res),
		err:     restclient.WrapRestErr(ctx, res, nil, i18n.MsgOppgaveAPIError, status),
	}
}
