package course

import (
	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/learnbite/internal/course/inbound"
	"github.com/shandysiswandi/learnbite/internal/course/outbound/db"
	"github.com/shandysiswandi/learnbite/internal/course/usecase"
	"github.com/shandysiswandi/learnbite/internal/pkg/clock"
	"github.com/shandysiswandi/learnbite/internal/pkg/config"
	"github.com/shandysiswandi/learnbite/internal/pkg/instrument"
	"github.com/shandysiswandi/learnbite/internal/pkg/router"
	"github.com/shandysiswandi/learnbite/internal/pkg/storage"
	"github.com/shandysiswandi/learnbite/internal/pkg/uid"
	"github.com/shandysiswandi/learnbite/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Enforcer   *casbin.Enforcer           `validate:"required"`
	Storage    storage.Storage            `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:     repoDB,
		Validator:  dep.Validator,
		Config:     dep.Config,
		Storage:    dep.Storage,
		Enforcer:   dep.Enforcer,
		UID:        dep.UID,
		UUID:       dep.UUID,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
