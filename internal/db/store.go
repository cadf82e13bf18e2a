package db

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"nexta-backend-go/internal/config"
	"nexta-backend-go/pkg/database"
)

// ErrNotFound is returned when an expected document is absent.
var ErrNotFound = database.ErrNotFound

// Workflow errors raised inside transactions.
var (
	ErrAlreadyApplied    = errors.New("an application for this job is already open")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrEmptyCart         = errors.New("cart is empty")
)

// NewStore returns the document store selected by DATABASE_DRIVER.
func NewStore(appConfig *config.Config, clients *FirebaseClients, logger *zap.Logger) (database.Store, error) {
	switch appConfig.DatabaseDriver {
	case config.DriverMemory:
		logger.Warn("Using in-memory document store; data is lost on restart")
		return database.NewMemoryStore(), nil
	case config.DriverFirestore:
		if clients == nil || clients.Firestore == nil {
			return nil, errors.New("firestore driver selected but Firestore client is not initialized")
		}
		return database.NewFirestoreStore(clients.Firestore, logger), nil
	}
	return nil, fmt.Errorf("unknown database driver %q", appConfig.DatabaseDriver)
}
