package routes

import (
	"github.com/gofiber/fiber/v2"

	"concurso-backend/internal/api/handlers"
	"concurso-backend/internal/middleware"
	"concurso-backend/pkg/jwt"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	CompanyHandler handlers.CompanyHandler
	SampleHandler  handlers.SampleHandler
	CheckinHandler handlers.CheckinHandler
	LabelHandler   handlers.LabelHandler
	PaymentHandler handlers.PaymentHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Companies()
	c.Samples()
	c.Checkin()
	c.Labels()
	c.Payments()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
	}
}

func (c *Config) Companies() {
	companies := c.App.Group("/api/v1/companies", c.Middleware.AuthMiddleware(c.JWTService))

	companies.Post("", c.CompanyHandler.CreateCompany)
	companies.Get("", c.CompanyHandler.GetCompanies)
	companies.Get("/:id", c.CompanyHandler.GetCompanyDetails)
	companies.Put("/:id", c.CompanyHandler.UpdateCompany)
	companies.Delete("/:id", c.CompanyHandler.DeleteCompany)
	companies.Post("/logo", c.CompanyHandler.UploadLogo)
}

func (c *Config) Samples() {
	samples := c.App.Group("/api/v1/samples", c.Middleware.AuthMiddleware(c.JWTService))

	samples.Get("/stats", c.Middleware.AdminOnly(), c.SampleHandler.GetReceptionStats)
	samples.Get("/export", c.Middleware.AdminOnly(), c.SampleHandler.ExportCSV)

	samples.Post("", c.SampleHandler.CreateSample)
	samples.Get("", c.SampleHandler.GetSamples)
	samples.Get("/:id", c.SampleHandler.GetSampleDetails)
	samples.Put("/:id", c.SampleHandler.UpdateSample)
	samples.Delete("/:id", c.SampleHandler.DeleteSample)

	samples.Post("/:id/barcode", c.Middleware.AdminOnly(), c.SampleHandler.AssignBarcode)
	samples.Post("/tech-sheet", c.SampleHandler.UploadTechSheet)
}

// Checkin routes drive the reception station: the scan session lifecycle and
// manual code resolution. Admin only, they mutate reception state.
func (c *Config) Checkin() {
	checkin := c.App.Group("/api/v1/checkin", c.Middleware.AuthMiddleware(c.JWTService), c.Middleware.AdminOnly())

	checkin.Post("/resolve", c.CheckinHandler.ResolveCode)
	checkin.Post("/session", c.CheckinHandler.StartScan)
	checkin.Get("/session", c.CheckinHandler.ScanStatus)
	checkin.Delete("/session", c.CheckinHandler.StopScan)
	checkin.Post("/torch", c.CheckinHandler.ToggleTorch)
}

func (c *Config) Labels() {
	labels := c.App.Group("/api/v1/labels", c.Middleware.AuthMiddleware(c.JWTService))

	labels.Get("/:id", c.LabelHandler.RenderLabel)
	labels.Post("/print-sheet", c.LabelHandler.PrintSheet)
}

func (c *Config) Payments() {
	payments := c.App.Group("/api/v1/payments", c.Middleware.AuthMiddleware(c.JWTService))

	payments.Post("", c.PaymentHandler.CreatePayment)
	payments.Get("", c.PaymentHandler.GetPayments)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Post("/webhook/midtrans", c.PaymentHandler.MidtransWebhookHandler)
}
