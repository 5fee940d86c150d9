package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/healthkey/healthkey-api/pkg/auth"
)

// AuthUser is a row in the authd user table. Unlike the demo record
// store, passwords here are bcrypt hashes.
type AuthUser struct {
	ID           string `db:"id" json:"id"`
	Email        string `db:"email" json:"email"`
	Name         string `db:"name" json:"name"`
	PasswordHash string `db:"password_hash" json:"-"`
}

var errUserNotFound = errors.New("user not found")

// UserStore is the lookup surface the login handler needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*AuthUser, error)
}

type sqlUserStore struct {
	db *sqlx.DB
}

func newUserStore(db *sqlx.DB) UserStore {
	return &sqlUserStore{db: db}
}

func (s *sqlUserStore) GetByEmail(ctx context.Context, email string) (*AuthUser, error) {
	var user AuthUser
	err := s.db.GetContext(ctx, &user, `SELECT id, email, name, password_hash FROM auth_users WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

type server struct {
	engine *gin.Engine
	users  UserStore
	jwtSvc auth.JWTService
}

func newServer(users UserStore, jwtSvc auth.JWTService) *server {
	gin.SetMode(gin.ReleaseMode)
	s := &server{
		engine: gin.New(),
		users:  users,
		jwtSvc: jwtSvc,
	}
	s.engine.Use(gin.Recovery())
	s.engine.POST("/api/auth/login", s.login)
	s.engine.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	return s
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login implements the stub contract: 400 when a field is missing, 404
// when the email is not registered, 401 on a wrong password.
func (s *server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_fields",
			"message": "email and password are required",
		})
		return
	}

	user, err := s.users.GetByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, errUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_registered",
			"message": "no account exists for this email",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal",
			"message": "something went wrong",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "wrong_password",
			"message": "incorrect password",
		})
		return
	}

	token, err := s.jwtSvc.GenerateToken(user.ID, "user", "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal",
			"message": "failed to issue token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
