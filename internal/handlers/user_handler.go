package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/careflow-api/internal/domain/user"
	"github.com/BruksfildServices01/careflow-api/internal/dto"
	"github.com/BruksfildServices01/careflow-api/internal/httperr"
	"github.com/BruksfildServices01/careflow-api/internal/httpresp"
	"github.com/BruksfildServices01/careflow-api/internal/middleware"
	"github.com/BruksfildServices01/careflow-api/internal/models"
	usecase "github.com/BruksfildServices01/careflow-api/internal/usecase/user"
)

// ======================================================
// HANDLER
// ======================================================

type UserHandler struct {
	manage *usecase.Manage
}

func NewUserHandler(manage *usecase.Manage) *UserHandler {
	return &UserHandler{manage: manage}
}

// ======================================================
// LIST / GET
// ======================================================

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.manage.List(c.Request.Context(), c.Query("role"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out := make([]models.UserPublic, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	httpresp.OK(c, out)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	u, err := h.manage.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, u.Public())
}

// ======================================================
// ADMIN
// ======================================================

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.manage.Create(c.Request.Context(), usecase.CreateUserInput{
		ActorID:  middleware.CurrentUser(c).ID.Hex(),
		Email:    strings.TrimSpace(req.Email),
		Name:     strings.TrimSpace(req.Name),
		Password: req.Password,
		Role:     user.Role(req.Role),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, u.Public())
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.manage.UpdateRole(c.Request.Context(), middleware.CurrentUser(c).ID.Hex(), id, req.Role)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, u.Public())
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.manage.Delete(c.Request.Context(), middleware.CurrentUser(c).ID.Hex(), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Success(c, "User deleted successfully")
}
