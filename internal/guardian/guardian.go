// Copyright © 2025 Coldledger Technologies
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

package guardian

import (
	"context"
	"fmt"

	"github.com/coldledger-io/coldledger/internal/config"
	"github.com/coldledger-io/coldledger/internal/i18n"
	"github.com/coldledger-io/coldledger/internal/log"
	"github.com/coldledger-io/coldledger/internal/restclient"
	"github.com/coldledger-io/coldledger/internal/retry"
	"github.com/coldledger-io/coldledger/pkg/cctypes"
	"github.com/go-resty/resty/v2"
)

const (
	// GuardianConfPolicyID is the policy to submit batch documents against
	GuardianConfPolicyID = "policyId"
	// GuardianConfPollInterval is the fixed delay between credential polls
	GuardianConfPollInterval = "pollInterval"
	// GuardianConfPollMaxAttempts bounds the credential polling loop
	GuardianConfPollMaxAttempts = "pollMaxAttempts"
)

const (
	defaultPollInterval    = "2s"
	defaultPollMaxAttempts = 10
)

// Guardian submits sealed batches to an external compliance policy engine,
// and polls for the credential it issues.
//
// An unconfigured engine is a legitimate deployment choice, reported as the
// "disabled" state. A configured engine that cannot be reached reports
// "failed" - the two must never be conflated, as one is a decision and the
// other is an outage.
type Guardian struct {
	ctx       context.Context
	enabled   bool
	policyID  string
	client    *resty.Client
	pollRetry retry.Retry
}

type policySubmission struct {
	PolicyID string             `json:"policyId"`
	Document cctypes.JSONObject `json:"document"`
}

// Credential is one candidate returned by the engine's credential listing
type Credential struct {
	ID       string             `json:"id"`
	Hash     string             `json:"hash,omitempty"`
	PolicyID string             `json:"policyId,omitempty"`
	Document cctypes.JSONObject `json:"document,omitempty"`
}

func (g *Guardian) InitPrefix(prefix config.Prefix) {
	restclient.InitPrefix(prefix)
	prefix.AddKnownKey(GuardianConfPolicyID)
	prefix.AddKnownKey(GuardianConfPollInterval, defaultPollInterval)
	prefix.AddKnownKey(GuardianConfPollMaxAttempts, defaultPollMaxAttempts)
}

func (g *Guardian) Init(ctx context.Context, prefix config.Prefix) error {
	g.ctx = log.WithLogField(ctx, "proto", "guardian")
	if prefix.GetString(restclient.HTTPConfigURL) == "" {
		log.L(ctx).Infof("Policy engine not configured - guardian submission disabled")
		g.enabled = false
		return nil
	}
	g.enabled = true
	g.policyID = prefix.GetString(GuardianConfPolicyID)
	g.client = restclient.New(g.ctx, prefix)
	g.pollRetry = retry.Retry{
		InitialDelay: prefix.GetDuration(GuardianConfPollInterval),
		MaximumDelay: prefix.GetDuration(GuardianConfPollInterval), // fixed backoff
		MaxAttempts:  prefix.GetInt(GuardianConfPollMaxAttempts),
	}
	return nil
}

func (g *Guardian) Name() string {
	return "guardian"
}

// Enabled is false when no policy engine configuration is present
func (g *Guardian) Enabled() bool {
	return g.enabled
}

// Submit sends the batch document to the policy engine, fire-and-forget
func (g *Guardian) Submit(ctx context.Context, document cctypes.JSONObject) error {
	res, err := g.client.R().
		SetContext(ctx).
		SetBody(&policySubmission{
			PolicyID: g.policyID,
			Document: document,
		}).
		Post(fmt.Sprintf("/api/v1/policies/%s/documents", g.policyID))
	if err != nil || !res.IsSuccess() {
		return restclient.WrapRestErr(g.ctx, res, err, i18n.MsgGuardianRESTErr)
	}
	return nil
}

// PollForCredential lists the engine's issued credentials at a fixed
// interval until the matcher accepts one, or the attempt budget is spent.
// Poll errors are collected and attached to the exhaustion error rather than
// aborting the loop - a flaky engine can still issue on a later attempt.
func (g *Guardian) PollForCredential(ctx context.Context, matcher func(*Credential) bool) (*Credential, []string, error) {
	var found *Credential
	var pollErrors []string
	err := g.pollRetry.Do(ctx, func(attempt int) (bool, error) {
		var candidates []*Credential
		res, err := g.client.R().
			SetContext(ctx).
			SetResult(&candidates).
			Get(fmt.Sprintf("/api/v1/policies/%s/credentials", g.policyID))
		if err != nil || !res.IsSuccess() {
			pollErr := restclient.WrapRestErr(g.ctx, res, err, i18n.MsgGuardianRESTErr)
			log.L(ctx).Warnf("Credential poll attempt %d failed: %s", attempt, pollErr)
			pollErrors = append(pollErrors, pollErr.Error())
			return true, i18n.NewError(ctx, i18n.MsgGuardianPollExhausted, attempt)
		}
		for _, c := range candidates {
			if matcher(c) {
				found = c // first structural match wins
				return false, nil
			}
		}
		return true, i18n.NewError(ctx, i18n.MsgGuardianPollExhausted, attempt)
	})
	if err != nil {
		return nil, pollErrors, err
	}
	return found, pollErrors, nil
}

// SubmitBatch drives the full submission state machine for one sealed batch,
// always producing a terminal GuardianInfo. It never returns an error - the
// caller records whatever state comes back.
func (g *Guardian) SubmitBatch(ctx context.Context, batch *cctypes.BatchRecord) *cctypes.GuardianInfo {
	if !g.enabled {
		return &cctypes.GuardianInfo{Status: cctypes.GuardianDisabled}
	}

	info := &cctypes.GuardianInfo{
		Status:   cctypes.GuardianPending,
		PolicyID: g.policyID,
	}

	document := cctypes.JSONObject{
		"batchNumber": batch.BatchNumber,
		"productName": batch.ProductName,
		"tokenId":     batch.TokenID,
	}
	if batch.Metadata.SHA256 != nil {
		document["sha256"] = batch.Metadata.SHA256.String()
	}

	if err := g.Submit(ctx, document); err != nil {
		log.L(ctx).Errorf("Guardian submission failed for batch %s: %s", batch.BatchNumber, err)
		info.Status = cctypes.GuardianFailed
		info.Errors = append(info.Errors, err.Error())
		return info
	}

	cred, pollErrors, err := g.PollForCredential(ctx, func(c *Credential) bool {
		if batch.Metadata.SHA256 != nil && c.Hash == batch.Metadata.SHA256.String() {
			return true
		}
		return c.Document.GetString("batchNumber") == batch.BatchNumber
	})
	info.Errors = append(info.Errors, pollErrors...)
	if err != nil {
		log.L(ctx).Errorf("Guardian credential poll exhausted for batch %s: %s", batch.BatchNumber, err)
		info.Status = cctypes.GuardianFailed
		info.Errors = append(info.Errors, err.Error())
		return info
	}

	log.L(ctx).Infof("Guardian credential %s issued for batch %s", cred.ID, batch.BatchNumber)
	info.Status = cctypes.GuardianIssued
	info.VCID = cred.ID
	info.VCHash = cred.Hash
	return info
}
