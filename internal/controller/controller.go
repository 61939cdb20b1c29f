package controller

import (
	"github.com/LeandroManna/gimnasio-reservas/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionCookie = "admin_session"

// Controller glues the HTTP surface to the services. It holds no state
// of its own beyond the upload directory served for local receipts.
type Controller struct {
	schedule     *service.ScheduleService
	availability *service.AvailabilityService
	auth         *service.AuthService
	logger       *zap.Logger

	// uploadsDir is empty when receipts live in object storage.
	uploadsDir string
}

func New(
	schedule *service.ScheduleService,
	availability *service.AvailabilityService,
	auth *service.AuthService,
	uploadsDir string,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		schedule:     schedule,
		availability: availability,
		auth:         auth,
		uploadsDir:   uploadsDir,
		logger:       logger,
	}
}

// RegisterRoutes wires every route. Admin mutations sit behind the
// session guard; the login page is the only unguarded admin route.
func (ct *Controller) RegisterRoutes(r *gin.Engine) {
	r.GET("/", ct.Index)
	r.GET("/reservar/:disciplina_id", ct.BookingGrid)
	r.GET("/check_disponibilidad/:horario_id/:fecha", ct.CheckAvailability)
	r.POST("/confirmar_reserva", ct.ConfirmReservation)

	if ct.uploadsDir != "" {
		r.Static("/uploads", ct.uploadsDir)
	}

	r.GET("/admin/login", ct.LoginForm)
	r.POST("/admin/login", ct.Login)
	r.GET("/admin/logout", ct.Logout)

	admin := r.Group("/admin", ct.RequireSession())
	{
		admin.GET("/dashboard", ct.Dashboard)

		admin.GET("/reservas", ct.Reservations)
		admin.GET("/reservas/eliminar/:reserva_id", ct.DeleteReservation)

		admin.GET("/disciplinas", ct.Disciplines)
		admin.POST("/disciplinas/agregar", ct.AddDiscipline)
		admin.GET("/disciplinas/toggle/:disciplina_id", ct.ToggleDiscipline)
		admin.GET("/disciplinas/eliminar/:disciplina_id", ct.DeleteDiscipline)

		admin.GET("/horarios/:disciplina_id", ct.Slots)
		admin.POST("/horarios/agregar/:disciplina_id", ct.AddSlot)
		admin.GET("/horarios/eliminar/:horario_id/:disciplina_id", ct.DeleteSlot)
	}
}
