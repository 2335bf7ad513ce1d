package db

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/balkashynov/hwk/internal/models"
)

// Record appends a suggestion decision to the feedback log.
// choice is stored as JSON.
func (s *Store) Record(ctx context.Context, taskID string, accepted bool, choice any) error {
	encoded, err := json.Marshal(choice)
	if err != nil {
		return fmt.Errorf("failed to encode choice: %w", err)
	}

	feedback := models.Feedback{
		TaskID:   taskID,
		Accepted: accepted,
		Choice:   string(encoded),
	}
	if err := s.db.WithContext(ctx).Create(&feedback).Error; err != nil {
		return err
	}

	s.log.Debug("feedback recorded", zap.String("task_id", taskID), zap.Bool("accepted", accepted))
	return nil
}

// ListFeedback returns recorded decisions, oldest first.
// An empty taskID returns feedback for all tasks.
func (s *Store) ListFeedback(ctx context.Context, taskID string) ([]models.Feedback, error) {
	query := s.db.WithContext(ctx).Order("created_at ASC, id ASC")
	if taskID != "" {
		query = query.Where("task_id = ?", taskID)
	}

	var feedback []models.Feedback
	if err := query.Find(&feedback).Error; err != nil {
		return nil, err
	}
	return feedback, nil
}
