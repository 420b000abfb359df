package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/healthassist-server/internal/auth"
	"github.com/healthassist-server/internal/domain"
)

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type appointmentRequest struct {
	DoctorID   string `json:"doctor_id" binding:"required"`
	DoctorName string `json:"doctor_name"`
	Specialty  string `json:"specialty"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
	Reason     string `json:"reason"`
}

// accountsEnabled reports whether the postgres-backed account layer is up.
// The sqlite driver runs assessments only.
func (s *Server) accountsEnabled(c *gin.Context) bool {
	if s.deps.Users == nil || s.deps.Appointments == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "accounts require the postgres storage driver",
		})
		return false
	}
	return true
}

func (s *Server) handleSignup(c *gin.Context) {
	if !s.accountsEnabled(c) {
		return
	}

	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	user := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.deps.Users.Create(c.Request.Context(), user); err != nil {
		s.respondError(c, err)
		return
	}

	token, err := s.deps.Tokens.Issue(user)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.deps.Logger.WithField("user_id", user.ID).Info("Account created")
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

func (s *Server) handleLogin(c *gin.Context) {
	if !s.accountsEnabled(c) {
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	user, err := s.deps.Users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		// Do not reveal whether the account exists.
		s.respondError(c, domain.ErrInvalidCredentials)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.respondError(c, domain.ErrInvalidCredentials)
		return
	}

	token, err := s.deps.Tokens.Issue(user)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (s *Server) handleMe(c *gin.Context) {
	if !s.accountsEnabled(c) {
		return
	}

	user, err := s.deps.Users.GetByID(c.Request.Context(), callerID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleCreateAppointment(c *gin.Context) {
	if !s.accountsEnabled(c) {
		return
	}

	var req appointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	appt := &domain.Appointment{
		UserID:     callerID(c),
		DoctorID:   req.DoctorID,
		DoctorName: req.DoctorName,
		Specialty:  req.Specialty,
		Date:       req.Date,
		Time:       req.Time,
		Reason:     req.Reason,
	}
	if err := s.deps.Appointments.Create(c.Request.Context(), appt); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

func (s *Server) handleListAppointments(c *gin.Context) {
	if !s.accountsEnabled(c) {
		return
	}

	appts, err := s.deps.Appointments.ListByUser(c.Request.Context(), callerID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

func (s *Server) handleUpdateAppointment(c *gin.Context) {
	if !s.accountsEnabled(c) {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	status, err := domain.ParseAppointmentStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if err := s.deps.Appointments.UpdateStatus(c.Request.Context(), id, callerID(c), status); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}

func (s *Server) handleDeleteAppointment(c *gin.Context) {
	if !s.accountsEnabled(c) {
		return
	}

	id := c.Param("id")
	if err := s.deps.Appointments.Delete(c.Request.Context(), id, callerID(c)); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
