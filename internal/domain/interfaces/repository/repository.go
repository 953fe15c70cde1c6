package repository

import "context"

type Repository[T any] interface {
	Create(ctx context.Context, collectionName string, entity T) (T, error)
	FindByID(ctx context.Context, collectionName string, id string) (T, error)
	FindByUser(ctx context.Context, collectionName string, userID string) ([]T, error)
	UpdateFields(ctx context.Context, collectionName string, id string, fields map[string]any) (T, error)
	Delete(ctx context.Context, collectionName string, id string) error
}
