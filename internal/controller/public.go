package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/LeandroManna/gimnasio-reservas/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Index lists the disciplines visitors can book.
func (ct *Controller) Index(c *gin.Context) {
	disciplines, err := ct.schedule.ActiveDisciplines(c.Request.Context())
	if err != nil {
		ct.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Disciplines": disciplines,
		"Flash":       flashFrom(c),
	})
}

// BookingGrid renders the weekly slot grid for one discipline.
func (ct *Controller) BookingGrid(c *gin.Context) {
	disciplineID, err := strconv.ParseInt(c.Param("disciplina_id"), 10, 64)
	if err != nil {
		redirectWithFlash(c, "/", "danger", "Disciplina no encontrada")
		return
	}

	discipline, week, err := ct.schedule.WeekScheduleFor(c.Request.Context(), disciplineID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			redirectWithFlash(c, "/", "danger", "Disciplina no encontrada")
			return
		}
		ct.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "reservar.html", gin.H{
		"Discipline": discipline,
		"Week":       week,
		"Now":        time.Now(),
		"Flash":      flashFrom(c),
	})
}

// CheckAvailability is the JSON seat-count endpoint polled by the grid.
func (ct *Controller) CheckAvailability(c *gin.Context) {
	slotID, err := strconv.ParseInt(c.Param("horario_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Horario no encontrado"})
		return
	}

	date, err := time.Parse(dateLayout, c.Param("fecha"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha inválida"})
		return
	}

	availability, err := ct.availability.CheckAvailability(c.Request.Context(), slotID, date)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Horario no encontrado"})
			return
		}
		ct.logger.Error("check availability failed", zap.Int64("slot_id", slotID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"disponible":      availability.Available,
		"cupos_restantes": availability.Remaining,
		"cupo_maximo":     availability.MaxCapacity,
	})
}

// ConfirmReservation consumes the booking form. Every failure redirects
// back to the originating page with a reason; success redirects home
// with the reservation number.
func (ct *Controller) ConfirmReservation(c *gin.Context) {
	slotID, err := strconv.ParseInt(c.PostForm("horario_id"), 10, 64)
	if err != nil {
		redirectWithFlash(c, backURL(c), "danger", "Todos los campos son obligatorios")
		return
	}

	classDate, err := time.Parse(dateLayout, c.PostForm("fecha_clase"))
	if err != nil {
		redirectWithFlash(c, backURL(c), "danger", "Fecha inválida")
		return
	}

	req := service.AdmissionRequest{
		SlotID:    slotID,
		ClassDate: classDate,
		FirstName: c.PostForm("nombre"),
		LastName:  c.PostForm("apellido"),
		DNI:       c.PostForm("dni"),
	}

	// The receipt is optional; a missing file is not an error.
	if header, err := c.FormFile("comprobante"); err == nil && header != nil {
		f, err := header.Open()
		if err != nil {
			redirectWithFlash(c, backURL(c), "danger", "No se pudo leer el comprobante")
			return
		}
		defer f.Close()

		req.Receipt = &service.ReceiptUpload{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Content:     f,
		}
	}

	res, err := ct.availability.AdmitReservation(c.Request.Context(), req)
	if err != nil {
		redirectWithFlash(c, backURL(c), admissionFlashKind(err), admissionFlashMessage(err))
		if !isAdmissionRejection(err) {
			ct.logger.Error("admit reservation failed", zap.Int64("slot_id", slotID), zap.Error(err))
		}
		return
	}

	redirectWithFlash(c, "/", "success", fmt.Sprintf("¡Reserva confirmada! Número de reserva: %d", res.ID))
}

func isAdmissionRejection(err error) bool {
	return errors.Is(err, service.ErrNotFound) ||
		errors.Is(err, service.ErrValidation) ||
		errors.Is(err, service.ErrPastSlot) ||
		errors.Is(err, service.ErrDuplicateIdentity) ||
		errors.Is(err, service.ErrCapacityExceeded)
}

func admissionFlashKind(err error) string {
	switch {
	case errors.Is(err, service.ErrPastSlot), errors.Is(err, service.ErrDuplicateIdentity):
		return "warning"
	default:
		return "danger"
	}
}

func admissionFlashMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return "Horario no encontrado"
	case errors.Is(err, service.ErrPastSlot):
		return "No se puede reservar en horarios que ya pasaron"
	case errors.Is(err, service.ErrDuplicateIdentity):
		return "Ya existe una reserva con este DNI para esta clase"
	case errors.Is(err, service.ErrCapacityExceeded):
		return "Este horario ya no tiene cupos disponibles"
	case errors.Is(err, service.ErrValidation):
		return "Todos los campos son obligatorios"
	default:
		return "Error al procesar la reserva"
	}
}

// renderError hides internal detail from visitors; the log line keeps it.
func (ct *Controller) renderError(c *gin.Context, err error) {
	ct.logger.Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.String(http.StatusInternalServerError, "Ocurrió un error, intentá nuevamente")
}
