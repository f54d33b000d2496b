// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_transcript

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rapidaai/pkg/commons"
	"github.com/rapidaai/pkg/connectors"
)

// Store indexes saved transcripts in Postgres. Rows are append-only: a call
// that ended is history, nothing updates it except attaching the analysis
// artifact once the scorer has run.
type Store interface {
	// Save inserts the record, generating a contextId when absent, and
	// returns the contextId.
	Save(ctx context.Context, cr *CallRecord) (string, error)

	// Get retrieves a record by contextId.
	Get(ctx context.Context, contextID string) (*CallRecord, error)

	// List returns the most recent records, newest first.
	List(ctx context.Context, limit int) ([]CallRecord, error)

	// AttachAnalysis records the analysis artifact path and overall score
	// for an already-saved call.
	AttachAnalysis(ctx context.Context, contextID, analysisPath string, overallScore float64) error
}

type postgresStore struct {
	postgres connectors.PostgresConnector
	logger   commons.Logger
}

// NewStore creates a transcript store backed by Postgres. The call_records
// table is migrated on construction so a fresh database works immediately.
func NewStore(postgres connectors.PostgresConnector, logger commons.Logger) (Store, error) {
	if err := postgres.DB(context.Background()).AutoMigrate(&CallRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate call_records: %w", err)
	}
	return &postgresStore{postgres: postgres, logger: logger}, nil
}

func (s *postgresStore) Save(ctx context.Context, cr *CallRecord) (string, error) {
	if cr.ContextID == "" {
		cr.ContextID = uuid.New().String()
	}

	db := s.postgres.DB(ctx)
	if err := db.Create(cr).Error; err != nil {
		return "", fmt.Errorf("failed to save call record %s: %w", cr.ContextID, err)
	}

	s.logger.Infof("saved call record: contextId=%s, store=%s, turns=%d",
		cr.ContextID, cr.StoreName, cr.TurnCount)
	return cr.ContextID, nil
}

func (s *postgresStore) Get(ctx context.Context, contextID string) (*CallRecord, error) {
	db := s.postgres.DB(ctx)
	var cr CallRecord
	if err := db.Where("context_id = ?", contextID).First(&cr).Error; err != nil {
		return nil, fmt.Errorf("call record not found: %s: %w", contextID, err)
	}
	return &cr, nil
}

func (s *postgresStore) List(ctx context.Context, limit int) ([]CallRecord, error) {
	db := s.postgres.DB(ctx)
	var out []CallRecord
	if err := db.Order("created_date DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list call records: %w", err)
	}
	return out, nil
}

func (s *postgresStore) AttachAnalysis(ctx context.Context, contextID, analysisPath string, overallScore float64) error {
	db := s.postgres.DB(ctx)
	result := db.Model(&CallRecord{}).
		Where("context_id = ?", contextID).
		Updates(map[string]interface{}{
			"analysis_path": analysisPath,
			"overall_score": overallScore,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to attach analysis to %s: %w", contextID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("call record not found: %s", contextID)
	}
	return nil
}
