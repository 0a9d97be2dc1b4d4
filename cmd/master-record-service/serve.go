package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/vishnuvarthan48/biomedical-cms/internal/app"
	"github.com/vishnuvarthan48/biomedical-cms/internal/constants"
	"github.com/vishnuvarthan48/biomedical-cms/internal/controllers"
	"github.com/vishnuvarthan48/biomedical-cms/internal/repositories"
	"github.com/vishnuvarthan48/biomedical-cms/internal/services"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the low-stock scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, closeLog, err := loadConfig()
			if err != nil {
				return err
			}
			defer closeLog()

			if migrate {
				if err := app.RunMigrations(cmd.Context(), cfg.DB.URL); err != nil {
					return err
				}
			}

			application, err := app.NewApp(cfg)
			if err != nil {
				return err
			}
			defer application.Close()

			return serve(cmd.Context(), application)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func serve(ctx context.Context, application *app.App) error {
	cfg := application.Config
	db := application.DB

	// Repositories
	tx := repositories.NewTxRunner(db)
	auditRepo := repositories.NewAuditLogRepository(db)
	buildingRepo := repositories.NewBuildingRepository(db)
	floorRepo := repositories.NewFloorRepository(db)
	roomRepo := repositories.NewRoomRepository(db)
	bedRepo := repositories.NewBedRepository(db)
	lookupRepo := repositories.NewLookupRepository(db)
	inletRepo := repositories.NewInletPowerRepository(db)
	voltageRepo := repositories.NewVoltageOptionRepository(db)
	classRepo := repositories.NewEquipmentClassRepository(db)
	typeRepo := repositories.NewEquipmentTypeRepository(db)
	riskRepo := repositories.NewDeviceRiskTypeRepository(db)
	rolePermRepo := repositories.NewRolePermissionRepository(db)
	catalogRepo := repositories.NewPermissionCatalogRepository(db)
	storeItemRepo := repositories.NewStoreItemConfigRepository(db)

	// Services
	audit := services.NewAuditRecorder(auditRepo)
	buildingSvc := services.NewBuildingService(buildingRepo, tx, audit)
	floorSvc := services.NewFloorService(floorRepo, buildingRepo, tx, audit)
	roomSvc := services.NewRoomService(roomRepo, floorRepo, tx, audit)
	bedSvc := services.NewBedService(bedRepo, roomRepo, tx, audit)
	lookupSvc := services.NewLookupService(lookupRepo)
	inletSvc := services.NewInletPowerService(inletRepo, tx, audit)
	voltageSvc := services.NewVoltageOptionService(voltageRepo, inletRepo, tx, audit)
	classSvc := services.NewEquipmentClassService(classRepo, inletRepo, tx, audit)
	typeSvc := services.NewEquipmentTypeService(typeRepo, inletRepo, tx, audit)
	riskSvc := services.NewDeviceRiskTypeService(riskRepo, tx, audit)
	rolePermSvc := services.NewRolePermissionService(rolePermRepo, catalogRepo, tx, audit)
	storeItemSvc := services.NewStoreItemConfigService(storeItemRepo, tx, audit)
	sweepSvc := services.NewLowStockSweepService(storeItemRepo)

	// Controllers
	handler := newRouter(cfg, handlers{
		health:          controllers.NewHealthController(application),
		building:        controllers.NewBuildingController(buildingSvc),
		floor:           controllers.NewFloorController(floorSvc),
		room:            controllers.NewRoomController(roomSvc),
		bed:             controllers.NewBedController(bedSvc),
		lookup:          controllers.NewLookupController(lookupSvc),
		inletPower:      controllers.NewInletPowerController(inletSvc),
		voltage:         controllers.NewVoltageOptionController(voltageSvc),
		equipmentClass:  controllers.NewEquipmentClassController(classSvc),
		equipmentType:   controllers.NewEquipmentTypeController(typeSvc),
		riskType:        controllers.NewDeviceRiskTypeController(riskSvc),
		rolePermission:  controllers.NewRolePermissionController(rolePermSvc),
		storeItemConfig: controllers.NewStoreItemConfigController(storeItemSvc),
	})

	// Cron job setup
	c := cron.New(cron.WithLocation(time.UTC))
	spec := cfg.Jobs.LowStockScanSpec
	if spec == "" {
		spec = constants.DefaultLowStockSweepSpec
	}
	if _, err := c.AddFunc(spec, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), constants.LowStockSweepTimeout)
		defer cancel()
		if _, err := sweepSvc.Sweep(jobCtx); err != nil {
			utils.Logger.WithError(err).Error("Low-stock sweep failed")
		}
	}); err != nil {
		return err
	}
	c.Start()
	defer func() { <-c.Stop().Done() }()
	utils.Logger.Infof("Scheduled low-stock sweep (%s)", spec)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Logger.Infof("Starting %s on port: %s", cfg.App.Name, cfg.App.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		utils.Logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
