package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/careflow-api/internal/audit"
	domain "github.com/BruksfildServices01/careflow-api/internal/domain/appointment"
	"github.com/BruksfildServices01/careflow-api/internal/domain/user"
	"github.com/BruksfildServices01/careflow-api/internal/dto"
	"github.com/BruksfildServices01/careflow-api/internal/httperr"
	"github.com/BruksfildServices01/careflow-api/internal/httpresp"
	"github.com/BruksfildServices01/careflow-api/internal/middleware"
	"github.com/BruksfildServices01/careflow-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	list    *appointment.ListAppointments
	create  *appointment.CreateAppointment
	update  *appointment.UpdateAppointment
	delete  *appointment.DeleteAppointment
	comment *appointment.AddComment
}

func NewAppointmentHandler(repo domain.Repository, audit *audit.Dispatcher) *AppointmentHandler {
	return &AppointmentHandler{
		list:    appointment.NewListAppointments(repo),
		create:  appointment.NewCreateAppointment(repo, audit),
		update:  appointment.NewUpdateAppointment(repo, audit),
		delete:  appointment.NewDeleteAppointment(repo, audit),
		comment: appointment.NewAddComment(repo, audit),
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	u := middleware.CurrentUser(c)

	views, err := h.list.Execute(
		c.Request.Context(),
		domain.Caller{ID: u.ID.Hex(), Role: user.Role(u.Role)},
		domain.Filters{
			Status:  c.Query("status"),
			Patient: c.Query("patient"),
			Doctor:  c.Query("doctor"),
		},
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, views)
}

// ======================================================
// CREATE / UPDATE / DELETE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req dto.CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	v, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		ActorID:     middleware.CurrentUser(c).ID.Hex(),
		PatientID:   req.PatientID,
		PatientName: req.PatientName,
		DoctorID:    req.DoctorID,
		DoctorName:  req.DoctorName,
		Date:        req.Date,
		Time:        req.Time,
		Reason:      req.Reason,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, v)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	v, err := h.update.Execute(
		c.Request.Context(),
		middleware.CurrentUser(c).ID.Hex(),
		id,
		domain.Patch{
			PatientID:   req.PatientID,
			PatientName: req.PatientName,
			DoctorID:    req.DoctorID,
			DoctorName:  req.DoctorName,
			Date:        req.Date,
			Time:        req.Time,
			Reason:      req.Reason,
			Status:      req.Status,
		},
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, v)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.CurrentUser(c).ID.Hex(), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Success(c, "Appointment deleted successfully")
}

// ======================================================
// COMMENTS
// ======================================================

func (h *AppointmentHandler) AddComment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	u := middleware.CurrentUser(c)
	comment, err := h.comment.Execute(
		c.Request.Context(),
		appointment.Author{ID: u.ID.Hex(), Name: u.Name, Role: u.Role},
		id,
		req.Content,
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, comment)
}
