package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/LeandroManna/gimnasio-reservas/internal/service"
	"github.com/gin-gonic/gin"
)

// LoginForm shows the admin login page. Already-authenticated admins go
// straight to the dashboard.
func (ct *Controller) LoginForm(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil {
		if _, ok := ct.auth.Validate(token); ok {
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
	}

	c.HTML(http.StatusOK, "admin_login.html", gin.H{
		"Flash": flashFrom(c),
	})
}

func (ct *Controller) Login(c *gin.Context) {
	username := c.PostForm("usuario")
	password := c.PostForm("password")

	token, err := ct.auth.Login(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrAuthFailure) {
			redirectWithFlash(c, "/admin/login", "danger", "Credenciales incorrectas")
			return
		}
		ct.renderError(c, err)
		return
	}

	c.SetCookie(sessionCookie, token, 0, "/", "", false, true)
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// Logout clears the session unconditionally.
func (ct *Controller) Logout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil {
		ct.auth.Logout(token)
	}

	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/admin/login")
}

func (ct *Controller) Dashboard(c *gin.Context) {
	stats, err := ct.schedule.Dashboard(c.Request.Context())
	if err != nil {
		ct.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
		"Stats": stats,
		"Flash": flashFrom(c),
	})
}

func (ct *Controller) Reservations(c *gin.Context) {
	reservations, err := ct.schedule.Reservations(c.Request.Context())
	if err != nil {
		ct.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "admin_reservas.html", gin.H{
		"Reservations": reservations,
		"Flash":        flashFrom(c),
	})
}

func (ct *Controller) DeleteReservation(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("reserva_id"), 10, 64)
	if err := ct.schedule.DeleteReservation(c.Request.Context(), id); err != nil {
		ct.renderError(c, err)
		return
	}

	redirectWithFlash(c, "/admin/reservas", "success", "Reserva eliminada correctamente")
}

func (ct *Controller) Disciplines(c *gin.Context) {
	disciplines, err := ct.schedule.AllDisciplines(c.Request.Context())
	if err != nil {
		ct.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "admin_disciplinas.html", gin.H{
		"Disciplines": disciplines,
		"Flash":       flashFrom(c),
	})
}

func (ct *Controller) AddDiscipline(c *gin.Context) {
	_, err := ct.schedule.CreateDiscipline(c.Request.Context(), c.PostForm("nombre"), c.PostForm("descripcion"))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			redirectWithFlash(c, "/admin/disciplinas", "danger", "El nombre es obligatorio")
			return
		}
		ct.renderError(c, err)
		return
	}

	redirectWithFlash(c, "/admin/disciplinas", "success", "Disciplina agregada correctamente")
}

func (ct *Controller) ToggleDiscipline(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("disciplina_id"), 10, 64)
	if err := ct.schedule.ToggleDiscipline(c.Request.Context(), id); err != nil {
		ct.renderError(c, err)
		return
	}

	redirectWithFlash(c, "/admin/disciplinas", "success", "Estado de disciplina actualizado")
}

func (ct *Controller) DeleteDiscipline(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("disciplina_id"), 10, 64)
	if err := ct.schedule.DeleteDiscipline(c.Request.Context(), id); err != nil {
		ct.renderError(c, err)
		return
	}

	redirectWithFlash(c, "/admin/disciplinas", "success", "Disciplina eliminada correctamente")
}

func (ct *Controller) Slots(c *gin.Context) {
	disciplineID, _ := strconv.ParseInt(c.Param("disciplina_id"), 10, 64)

	discipline, err := ct.schedule.GetDiscipline(c.Request.Context(), disciplineID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			redirectWithFlash(c, "/admin/disciplinas", "danger", "Disciplina no encontrada")
			return
		}
		ct.renderError(c, err)
		return
	}

	slots, err := ct.schedule.DisciplineSlots(c.Request.Context(), disciplineID)
	if err != nil {
		ct.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "admin_horarios.html", gin.H{
		"Discipline": discipline,
		"Slots":      slots,
		"Flash":      flashFrom(c),
	})
}

func (ct *Controller) AddSlot(c *gin.Context) {
	disciplineID, _ := strconv.ParseInt(c.Param("disciplina_id"), 10, 64)
	listURL := fmt.Sprintf("/admin/horarios/%d", disciplineID)

	// The form may omit the capacity; 10 seats is the house default.
	capacity := 10
	if v := c.PostForm("cupo_maximo"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			redirectWithFlash(c, listURL, "danger", "Cupo máximo inválido")
			return
		}
		capacity = n
	}

	_, err := ct.schedule.CreateSlot(c.Request.Context(), disciplineID, c.PostForm("dia_semana"), c.PostForm("hora_inicio"), capacity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			redirectWithFlash(c, "/admin/disciplinas", "danger", "Disciplina no encontrada")
		case errors.Is(err, service.ErrValidation):
			redirectWithFlash(c, listURL, "danger", "Datos del horario inválidos")
		default:
			ct.renderError(c, err)
		}
		return
	}

	redirectWithFlash(c, listURL, "success", "Horario agregado correctamente")
}

func (ct *Controller) DeleteSlot(c *gin.Context) {
	slotID, _ := strconv.ParseInt(c.Param("horario_id"), 10, 64)
	disciplineID, _ := strconv.ParseInt(c.Param("disciplina_id"), 10, 64)

	if err := ct.schedule.DeleteSlot(c.Request.Context(), slotID); err != nil {
		ct.renderError(c, err)
		return
	}

	redirectWithFlash(c, fmt.Sprintf("/admin/horarios/%d", disciplineID), "success", "Horario eliminado correctamente")
}
