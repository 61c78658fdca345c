package services

import (
	"context"

	"agrotrack/config"
	"agrotrack/internal/database"
	"agrotrack/internal/logger"
)

type Service struct {
	Transaction *TransactionService
	Auth        *AuthService
	Advice      *AdviceService
	Scheduler   *SchedulerService
	log         logger.Logger
}

func New(ctx context.Context, config config.Config, db database.DB) (*Service, error) {
	log := logger.New("services")

	auth, err := NewAuthService(config)
	if err != nil {
		return nil, log.Err("failed to create auth service", err)
	}

	advice, err := NewAdviceService(ctx, config)
	if err != nil {
		return nil, log.Err("failed to create advice service", err)
	}

	return &Service{
		Transaction: NewTransactionService(db),
		Auth:        auth,
		Advice:      advice,
		Scheduler:   NewSchedulerService(),
		log:         log,
	}, nil
}

func (s *Service) Close() error {
	log := s.log.Function("Close")

	if s.Scheduler != nil {
		if err := s.Scheduler.Stop(context.Background()); err != nil {
			log.Er("failed to stop scheduler", err)
		}
	}

	if s.Advice != nil {
		if err := s.Advice.Close(); err != nil {
			log.Er("failed to close advice client", err)
		}
	}

	return nil
}
