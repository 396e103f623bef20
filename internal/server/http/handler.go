package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edukit/rollbook/internal/common"
	"github.com/edukit/rollbook/internal/server/auth"
	"github.com/edukit/rollbook/internal/server/models"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type studentRequest struct {
	RollNum int64  `json:"roll_num" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Age     int    `json:"age" binding:"required,gt=0"`
	Course  string `json:"course" binding:"required"`
}

type studentUpdateRequest struct {
	Name   string `json:"name" binding:"required"`
	Age    int    `json:"age" binding:"required,gt=0"`
	Course string `json:"course" binding:"required"`
}

func (s *Server) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "username already taken"})
		case errors.Is(err, auth.ErrPasswordTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": "password exceeds 72 bytes"})
		default:
			s.logger.Error(c.Request.Context(), "registration failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	s.logger.Info(c.Request.Context(), "registered", "username", user.Username)
	c.JSON(http.StatusCreated, gin.H{"username": user.Username})
}

func (s *Server) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		s.logger.Error(c.Request.Context(), "login failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "token_type": "bearer"})
}

func (s *Server) createStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student payload"})
		return
	}

	student := &models.Student{RollNum: req.RollNum, Name: req.Name, Age: req.Age, Course: req.Course}
	created, err := s.students.Create(c.Request.Context(), student)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "student already exists"})
			return
		}
		s.serverError(c, "creating student", err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (s *Server) listStudents(c *gin.Context) {
	list, err := s.students.List(c.Request.Context())
	if err != nil {
		s.serverError(c, "listing students", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) getStudent(c *gin.Context) {
	rollNum, ok := rollNumParam(c)
	if !ok {
		return
	}

	student, err := s.students.Get(c.Request.Context(), rollNum)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return
		}
		s.serverError(c, "getting student", err)
		return
	}
	c.JSON(http.StatusOK, student)
}

func (s *Server) updateStudent(c *gin.Context) {
	rollNum, ok := rollNumParam(c)
	if !ok {
		return
	}

	var req studentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student payload"})
		return
	}

	student := &models.Student{RollNum: rollNum, Name: req.Name, Age: req.Age, Course: req.Course}
	updated, err := s.students.Update(c.Request.Context(), student)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return
		}
		s.serverError(c, "updating student", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteStudent(c *gin.Context) {
	rollNum, ok := rollNumParam(c)
	if !ok {
		return
	}

	if err := s.students.Delete(c.Request.Context(), rollNum); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return
		}
		s.serverError(c, "deleting student", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) courseStats(c *gin.Context) {
	stats, err := s.students.StatsByCourse(c.Request.Context())
	if err != nil {
		s.serverError(c, "aggregating students", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) serverError(c *gin.Context, op string, err error) {
	s.logger.Error(c.Request.Context(), op, "error", err.Error())
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func rollNumParam(c *gin.Context) (int64, bool) {
	rollNum, err := strconv.ParseInt(c.Param("roll_num"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "roll_num must be an integer"})
		return 0, false
	}
	return rollNum, true
}
