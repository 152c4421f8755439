package router

import (
	"github.com/seva-samiti/connect-backend/internal/application"
	"github.com/seva-samiti/connect-backend/internal/container"
	"github.com/seva-samiti/connect-backend/internal/infrastructure/media"
	pginfra "github.com/seva-samiti/connect-backend/internal/infrastructure/postgres"
	"github.com/seva-samiti/connect-backend/internal/infrastructure/search"
	handlers "github.com/seva-samiti/connect-backend/internal/interface/http"
	"github.com/seva-samiti/connect-backend/internal/router/modules"
)

// InitModules wires every feature module from the container singletons and
// registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	codec := container.GetCodec()

	userSvc := application.NewUserService(pginfra.NewUserRepository(pool), codec, logger)
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), codec))

	donationSvc := application.NewDonationService(pginfra.NewDonationRepository(pool), container.GetStripe(), logger)
	r.Add(modules.NewDonationModule(handlers.NewDonationHandler(donationSvc, logger), codec))

	var index application.ActivityIndex
	if es := container.GetES(); es != nil {
		index = search.NewESActivityIndex(es, cfg.ESActivitiesIndex)
	}
	activitySvc := application.NewActivityService(
		pginfra.NewActivityRepository(pool),
		media.NewGCSStore(container.GetGCS(), cfg.GCSBucket),
		index,
		logger,
	)
	r.Add(modules.NewActivityModule(handlers.NewActivityHandler(activitySvc, logger), codec))

	announcementSvc := application.NewAnnouncementService(pginfra.NewAnnouncementRepository(pool), logger)
	r.Add(modules.NewAnnouncementModule(handlers.NewAnnouncementHandler(announcementSvc, logger), codec))

	r.Add(modules.NewContactModule(handlers.NewContactHandler(container.GetRabbitPub(), cfg.ContactTo, logger)))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
