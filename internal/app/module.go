package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/learnbite/internal/course"
	"github.com/shandysiswandi/learnbite/internal/enrollment"
	"github.com/shandysiswandi/learnbite/internal/identity"
	"github.com/shandysiswandi/learnbite/internal/notification"
	"github.com/shandysiswandi/learnbite/internal/payment"
	"github.com/shandysiswandi/learnbite/internal/quiz"
	"github.com/shandysiswandi/learnbite/internal/review"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.identity.enabled") {
		if err := identity.New(identity.Dependency{
			DBConn:     a.dbConn,
			CacheConn:  a.cacheConn,
			Router:     a.router,
			Messaging:  a.messaging,
			Storage:    a.storage,
			Mail:       a.mail,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			UUID:       a.uuid,
			OID:        a.oid,
			HMAC:       a.hmac,
			Password:   a.password,
			OtpCode:    a.otpCode,
			Clock:      a.clock,
			Validator:  a.validator,
			JWT:        a.jwt,
		}); err != nil {
			slog.Error("failed to init module identity", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.course.enabled") {
		if err := course.New(course.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Enforcer:   a.casbin,
			Storage:    a.storage,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			UUID:       a.uuid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module course", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.enrollment.enabled") {
		if err := enrollment.New(enrollment.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module enrollment", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.quiz.enabled") {
		if err := quiz.New(quiz.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Enforcer:   a.casbin,
			Instrument: a.ins,
			UID:        a.uid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module quiz", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.payment.enabled") {
		if err := payment.New(payment.Dependency{
			DBConn:      a.dbConn,
			Router:      a.router,
			Messaging:   a.messaging,
			Gateway:     a.paygate,
			Idempotency: a.idemp,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			RefCode:     a.refCode,
			Clock:       a.clock,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module payment", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.review.enabled") {
		if err := review.New(review.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module review", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:        a.ctx,
			Messaging:  a.messaging,
			Mail:       a.mail,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Clock:      a.clock,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
