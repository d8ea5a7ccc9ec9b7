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

package orchestrator

import (
	"context"

	"github.com/coldledger-io/coldledger/internal/anchor"
	"github.com/coldledger-io/coldledger/internal/config"
	"github.com/coldledger-io/coldledger/internal/database/difactory"
	"github.com/coldledger-io/coldledger/internal/guardian"
	"github.com/coldledger-io/coldledger/internal/ledger/connector"
	"github.com/coldledger-io/coldledger/internal/log"
	"github.com/coldledger-io/coldledger/internal/objectstore/osfactory"
	"github.com/coldledger-io/coldledger/internal/registry"
	"github.com/coldledger-io/coldledger/internal/sealer"
	"github.com/coldledger-io/coldledger/internal/telemetry"
	"github.com/coldledger-io/coldledger/internal/verifier"
	"github.com/coldledger-io/coldledger/pkg/database"
	"github.com/coldledger-io/coldledger/pkg/ledger"
	"github.com/coldledger-io/coldledger/pkg/objectstore"
)

const (
	// LedgerConfConnectorSubconf is the section for the ledger REST connector
	LedgerConfConnectorSubconf = "connector"

	defaultDatabaseType = "sqlite"
)

var (
	databasePrefix    = config.NewPluginConfig("database")
	objectstorePrefix = config.NewPluginConfig("objectstore")
	ledgerPrefix      = config.NewPluginConfig("ledger")
	guardianPrefix    = config.NewPluginConfig("guardian")
	telemetryPrefix   = config.NewPluginConfig("telemetry")
)

func init() {
	difactory.InitPrefix(databasePrefix)
	osfactory.InitPrefix(objectstorePrefix)
	(&connector.Connector{}).InitPrefix(ledgerPrefix.SubPrefix(LedgerConfConnectorSubconf))
	(&guardian.Guardian{}).InitPrefix(guardianPrefix)
	(&telemetry.Manager{}).InitPrefix(telemetryPrefix)
}

// Orchestrator owns the plugin instances and the pipeline components built
// over them, for the lifetime of the node
type Orchestrator struct {
	ctx       context.Context
	database  database.Plugin
	storage   objectstore.Plugin
	ledger    ledger.Plugin
	guardian  *guardian.Guardian
	registry  *registry.Registry
	sealer    *sealer.Sealer
	anchor    *anchor.Publisher
	verifier  *verifier.Verifier
	telemetry *telemetry.Manager
}

func NewOrchestrator() *Orchestrator {
	return &Orchestrator{}
}

func (or *Orchestrator) Init(ctx context.Context) (err error) {
	or.ctx = ctx

	dbType := config.GetString(config.DatabaseType)
	if dbType == "" {
		dbType = defaultDatabaseType
	}
	if or.database, err = difactory.GetPlugin(ctx, dbType); err != nil {
		return err
	}
	if err = or.database.Init(ctx, databasePrefix.SubPrefix(or.database.Name())); err != nil {
		return err
	}

	if or.storage, err = osfactory.GetPlugin(ctx, config.GetString(config.ObjectStoreType)); err != nil {
		return err
	}
	if err = or.storage.Init(ctx, objectstorePrefix.SubPrefix(or.storage.Name())); err != nil {
		return err
	}

	ledgerConnector := &connector.Connector{}
	if err = ledgerConnector.Init(ctx, ledgerPrefix.SubPrefix(LedgerConfConnectorSubconf)); err != nil {
		return err
	}
	or.ledger = ledgerConnector

	or.guardian = &guardian.Guardian{}
	if err = or.guardian.Init(ctx, guardianPrefix); err != nil {
		return err
	}

	or.registry = registry.NewBatchRegistry(or.database)
	or.sealer = sealer.NewSealer(ctx, or.registry, or.storage, or.ledger, or.guardian)
	or.anchor = anchor.NewAnchorPublisher(or.registry, or.ledger)
	or.verifier = verifier.NewIntegrityVerifier(or.registry, or.storage, or.ledger)

	or.telemetry = telemetry.NewTelemetryManager(or.registry, or.storage, or.ledger)
	if config.GetBool(config.TelemetryEnabled) {
		if err = or.telemetry.Init(ctx, telemetryPrefix); err != nil {
			return err
		}
	}

	log.L(ctx).Infof("Orchestrator initialized: database=%s objectstore=%s ledgerSimulated=%t guardianEnabled=%t telemetryEnabled=%t",
		or.database.Name(), or.storage.Name(), or.ledger.Simulated(), or.guardian.Enabled(), or.telemetry.Enabled())
	return nil
}

func (or *Orchestrator) Start() {
	or.telemetry.Start()
}

// WaitStop drains background work and releases the plugins
func (or *Orchestrator) WaitStop() {
	or.sealer.WaitStop()
	or.telemetry.Close()
	or.database.Close()
}

func (or *Orchestrator) Registry() *registry.Registry {
	return or.registry
}

func (or *Orchestrator) Sealer() *sealer.Sealer {
	return or.sealer
}

func (or *Orchestrator) AnchorPublisher() *anchor.Publisher {
	return or.anchor
}

func (or *Orchestrator) Verifier() *verifier.Verifier {
	return or.verifier
}

func (or *Orchestrator) Ledger() ledger.Plugin {
	return or.ledger
}

func (or *Orchestrator) Guardian() *guardian.Guardian {
	return or.guardian
}

func (or *Orchestrator) Telemetry() *telemetry.Manager {
	return or.telemetry
}

func (or *Orchestrator) ObjectStore() objectstore.Plugin {
	return or.storage
}

func (or *Orchestrator) Database() database.Plugin {
	return or.database
}
