package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password, returns a JWT
// @Tags Users
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Credentials"
// @Success 200 {object} object{success=bool,message=string,data=object{token=string,user=object}}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/users/login [post]
func (h *UserHandler) LoginDoc() {}

// CreateUser godoc
// @Summary Create an account
// @Description Create a new admin or cashier account (Admin only)
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,email=string,password=string,role=string} true "Account data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/users [post]
func (h *UserHandler) CreateUserDoc() {}

// ListUsers godoc
// @Summary List accounts
// @Description List all accounts ordered by role then name (Admin only)
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/users [get]
func (h *UserHandler) ListUsersDoc() {}

// DeactivateUser godoc
// @Summary Deactivate an account
// @Description Disable an account, refusing self-deactivation and removal of the last active admin (Admin only)
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/users/{id}/deactivate [patch]
func (h *UserHandler) DeactivateUserDoc() {}

// DeleteUser godoc
// @Summary Delete an account
// @Description Soft-delete an account with the same guards as deactivation (Admin only)
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/users/{id} [delete]
func (h *UserHandler) DeleteUserDoc() {}

// GetStats godoc
// @Summary Account statistics
// @Description Totals by role and active count (Admin only)
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/users/stats [get]
func (h *UserHandler) GetStatsDoc() {}
