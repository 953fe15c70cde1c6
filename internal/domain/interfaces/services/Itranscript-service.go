package Iservices

import (
	"context"

	"scribe-api/internal/domain/dto"
	"scribe-api/internal/domain/entities"
)

type ITranscriptService interface {
	List(ctx context.Context, userID string) ([]dto.TranscriptListItem, error)
	Get(ctx context.Context, userID string, id string) (entities.Transcript, error)
	Create(ctx context.Context, userID string, input dto.CreateTranscriptRequest) (entities.Transcript, error)
	Update(ctx context.Context, userID string, id string, input dto.UpdateTranscriptRequest) (entities.Transcript, error)
	Delete(ctx context.Context, userID string, id string) (entities.Transcript, error)
}
