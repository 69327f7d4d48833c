package enrollment

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/learnbite/internal/enrollment/inbound"
	"github.com/shandysiswandi/learnbite/internal/enrollment/outbound/db"
	"github.com/shandysiswandi/learnbite/internal/enrollment/outbound/mq"
	"github.com/shandysiswandi/learnbite/internal/enrollment/usecase"
	"github.com/shandysiswandi/learnbite/internal/pkg/clock"
	"github.com/shandysiswandi/learnbite/internal/pkg/config"
	"github.com/shandysiswandi/learnbite/internal/pkg/instrument"
	"github.com/shandysiswandi/learnbite/internal/pkg/messaging"
	"github.com/shandysiswandi/learnbite/internal/pkg/router"
	"github.com/shandysiswandi/learnbite/internal/pkg/uid"
	"github.com/shandysiswandi/learnbite/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        repoDB,
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Config:        dep.Config,
		UID:           dep.UID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
