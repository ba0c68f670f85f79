package intake

import (
	"context"

	"salon-wellness-backend/models"
	"salon-wellness-backend/store"
)

// StoreSubmitter saves straight into the in-memory store.
type StoreSubmitter struct {
	Store *store.Store
}

func (s StoreSubmitter) CreateClient(_ context.Context, in models.NewClientInput) (models.Client, error) {
	return s.Store.AddClient(in)
}

func (s StoreSubmitter) CreateSession(_ context.Context, session models.Session) (models.Session, error) {
	return s.Store.AddSession(session), nil
}

func (s StoreSubmitter) Sessions(_ context.Context) ([]models.Session, error) {
	return s.Store.Sessions(), nil
}
