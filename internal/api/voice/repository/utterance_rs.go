package voiceRepository

import (
	"ProjectViagem/internal/entity"
	contextPkg "ProjectViagem/pkg/context"
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func (r *utteranceRepository) CreateUtterance(ctx context.Context, utterance entity.VoiceUtterance) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":         utterance.ID,
		"user_id":    utterance.UserID,
		"session_id": utterance.SessionID,
		"transcript": utterance.Transcript,
		"intent":     utterance.Intent,
		"confidence": utterance.Confidence,
		"outcome":    utterance.Outcome,
		"created_at": utterance.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateUtterance, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateUtterance")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to insert voice utterance")
		return err
	}

	return nil
}

func (r *utteranceRepository) GetUtterancesByUserID(ctx context.Context, userID string, limit, offset int) ([]entity.VoiceUtterance, int, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
		"offset":  offset,
	}

	query, args, err := sqlx.Named(queryGetUtterancesByUserID, argsKV)
	if err != nil {
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	utterances := make([]entity.VoiceUtterance, 0, limit)
	if err := r.q.SelectContext(ctx, &utterances, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to select voice utterances")
		return nil, 0, err
	}

	countQuery, countArgs, err := sqlx.Named(queryCountUtterancesByUserID, map[string]interface{}{
		"user_id": userID,
	})
	if err != nil {
		return nil, 0, err
	}
	countQuery = r.q.Rebind(countQuery)

	var total int
	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to count voice utterances")
		return nil, 0, err
	}

	return utterances, total, nil
}
