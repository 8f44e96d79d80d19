package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"concurso-backend/internal/api/handlers"
	"concurso-backend/internal/api/routes"
	"concurso-backend/internal/camera"
	"concurso-backend/internal/middleware"
	"concurso-backend/internal/scan"
	"concurso-backend/internal/utils"
	"concurso-backend/internal/utils/storage"
	"concurso-backend/pkg/checkin"
	"concurso-backend/pkg/company"
	"concurso-backend/pkg/jwt"
	"concurso-backend/pkg/label"
	"concurso-backend/pkg/payment"
	"concurso-backend/pkg/sample"
	"concurso-backend/pkg/user"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   contestTimezone(),
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     utils.GetConfig("REDIS_ADDR"),
		Password: utils.GetConfig("REDIS_PASSWORD"),
	})

	location, err := time.LoadLocation(contestTimezone())
	if err != nil {
		location = time.Local
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	companyRepository := company.NewCompanyRepository(db)
	sampleRepository := sample.NewSampleRepository(db)
	checkinRepository := checkin.NewCheckinRepository(db)
	paymentRepository := payment.NewPaymentRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService, mailClient)
	companyService := company.NewCompanyService(companyRepository, s3)
	sampleService := sample.NewSampleService(sampleRepository, companyRepository, s3)
	checkinService := checkin.NewCheckinService(checkinRepository, location)
	labelService := label.NewLabelService(sampleRepository)
	paymentService := payment.NewPaymentService(paymentRepository, companyRepository, sampleRepository, mailClient)

	// Scan pipeline
	streams := scan.NewStreamManager(camera.Open)
	scanManager := scan.NewManager(checkinService, streams, scan.SelectStrategy)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	companyHandler := handlers.NewCompanyHandler(companyService, validator)
	sampleHandler := handlers.NewSampleHandler(sampleService, validator)
	checkinHandler := handlers.NewCheckinHandler(checkinService, scanManager, validator)
	labelHandler := handlers.NewLabelHandler(labelService, validator)
	paymentHandler := handlers.NewPaymentHandler(paymentService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		CompanyHandler: companyHandler,
		SampleHandler:  sampleHandler,
		CheckinHandler: checkinHandler,
		LabelHandler:   labelHandler,
		PaymentHandler: paymentHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

func contestTimezone() string {
	if tz := utils.GetConfig("CONTEST_TIMEZONE"); tz != "" {
		return tz
	}
	return "Europe/Madrid"
}
