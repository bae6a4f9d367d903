package api

import (
	"database/sql"
	"time"

	"github.com/SteampunkGill/readmemory/internal/repository"
	"github.com/SteampunkGill/readmemory/internal/services"
)

type Server struct {
	ReviewService   services.ReviewService
	ProgressService services.ProgressService
	SettingsService services.SettingsService
	AuthRepo        repository.AuthRepository
	DB              *sql.DB
	Clock           func() time.Time
}

func (s *Server) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
