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

package sqlcommon

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/coldledger-io/coldledger/internal/i18n"
	"github.com/coldledger-io/coldledger/internal/log"
	"github.com/coldledger-io/coldledger/pkg/cctypes"
)

var (
	batchColumns = []string{
		"id",
		"batch_number",
		"product_name",
		"manufacturer",
		"expiry_date",
		"quantity",
		"token_id",
		"topic_id",
		"simulated",
		"schema_version",
		"file_ref",
		"sha256",
		"status",
		"anchor",
		"guardian",
		"errors",
		"created",
		"updated",
	}
)

func (s *SQLCommon) UpsertBatch(ctx context.Context, batch *cctypes.BatchRecord) (err error) {
	ctx, tx, autoCommit, err := s.beginOrUseTx(ctx)
	if err != nil {
		return err
	}
	defer s.rollbackTx(ctx, tx, autoCommit)

	// Do a select within the transaction to determine if the UUID already exists
	batchRows, err := s.queryTx(ctx, tx,
		sq.Select("id").
			From("batches").
			Where(sq.Eq{"id": batch.ID}),
	)
	if err != nil {
		return err
	}
	existing := batchRows.Next()
	batchRows.Close()

	if existing {
		// Update the batch
		if err = s.updateTx(ctx, tx,
			sq.Update("batches").
				Set("batch_number", batch.BatchNumber).
				Set("product_name", batch.ProductName).
				Set("manufacturer", batch.Manufacturer).
				Set("expiry_date", batch.ExpiryDate).
				Set("quantity", batch.Quantity).
				Set("token_id", batch.TokenID).
				Set("topic_id", batch.TopicID).
				Set("simulated", batch.Simulated).
				Set("schema_version", batch.SchemaVersion).
				Set("file_ref", batch.Metadata.FileRef).
				Set("sha256", batch.Metadata.SHA256).
				Set("status", string(batch.Status)).
				Set("anchor", batch.Anchor).
				Set("guardian", batch.Guardian).
				Set("errors", batch.Errors).
				Set("updated", batch.Updated).
				Where(sq.Eq{"id": batch.ID}),
		); err != nil {
			return err
		}
	} else {
		if _, err = s.insertTx(ctx, tx,
			sq.Insert("batches").
				Columns(batchColumns...).
				Values(
					batch.ID,
					batch.BatchNumber,
					batch.ProductName,
					batch.Manufacturer,
					batch.ExpiryDate,
					batch.Quantity,
					batch.TokenID,
					batch.TopicID,
					batch.Simulated,
					batch.SchemaVersion,
					batch.Metadata.FileRef,
					batch.Metadata.SHA256,
					string(batch.Status),
					batch.Anchor,
					batch.Guardian,
					batch.Errors,
					batch.Created,
					batch.Updated,
				),
		); err != nil {
			return err
		}
	}

	return s.commitTx(ctx, tx, autoCommit)
}

func (s *SQLCommon) batchResult(ctx context.Context, row *sql.Rows) (*cctypes.BatchRecord, error) {
	batch := cctypes.BatchRecord{}
	err := row.Scan(
		&batch.ID,
		&batch.BatchNumber,
		&batch.ProductName,
		&batch.Manufacturer,
		&batch.ExpiryDate,
		&batch.Quantity,
		&batch.TokenID,
		&batch.TopicID,
		&batch.Simulated,
		&batch.SchemaVersion,
		&batch.Metadata.FileRef,
		&batch.Metadata.SHA256,
		&batch.Status,
		&batch.Anchor,
		&batch.Guardian,
		&batch.Errors,
		&batch.Created,
		&batch.Updated,
	)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgDBReadErr, "batches")
	}
	return &batch, nil
}

func (s *SQLCommon) getBatchPred(ctx context.Context, desc string, pred interface{}) (*cctypes.BatchRecord, error) {
	rows, err := s.query(ctx,
		sq.Select(batchColumns...).
			From("batches").
			Where(pred).
			OrderBy("seq DESC").
			Limit(1),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		log.L(ctx).Debugf("Batch '%s' not found", desc)
		return nil, nil
	}

	return s.batchResult(ctx, rows)
}

func (s *SQLCommon) GetBatchByID(ctx context.Context, id *cctypes.UUID) (*cctypes.BatchRecord, error) {
	return s.getBatchPred(ctx, id.String(), sq.Eq{"id": id})
}

func (s *SQLCommon) GetBatchByNumber(ctx context.Context, batchNumber string) (*cctypes.BatchRecord, error) {
	return s.getBatchPred(ctx, batchNumber, sq.Eq{"batch_number": batchNumber})
}

func (s *SQLCommon) GetBatches(ctx context.Context) ([]*cctypes.BatchRecord, error) {
	rows, err := s.query(ctx,
		sq.Select(batchColumns...).
			From("batches").
			OrderBy("seq DESC"),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	batches := []*cctypes.BatchRecord{}
	for rows.Next() {
		b, err := s.batchResult(ctx, rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}

	return batches, nil
}
