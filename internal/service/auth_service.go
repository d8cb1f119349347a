package service

import (
	"academic_portal_backend/internal/model"
	"academic_portal_backend/internal/repository"
	"academic_portal_backend/internal/util"
	"academic_portal_backend/pkg/logger"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo  *repository.UserRepository
	JWTSecret string
	JWTExpire time.Duration
}

func NewAuthService(userRepo *repository.UserRepository, secret string, expire time.Duration) *AuthService {
	return &AuthService{UserRepo: userRepo, JWTSecret: secret, JWTExpire: expire}
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=student teacher admin"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Register creates a user with a bcrypt password hash. A duplicate email is
// reported as a conflict, not an internal error.
func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	existing, err := s.UserRepo.FindByEmail(input.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.Internal(err)
	}
	if existing != nil {
		return nil, util.ErrEmailRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, util.Internal(err)
	}

	role := model.UserRole(input.Role)
	if role == "" {
		role = model.Student
	}
	user := &model.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hash),
		Role:     role,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, util.Internal(err)
	}

	token, err := util.GenerateJWT(user, s.JWTSecret, s.JWTExpire)
	if err != nil {
		return nil, util.Internal(err)
	}
	logger.Log.Info("user registered", zap.Uint("userId", user.ID), zap.String("role", string(user.Role)))
	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials against the stored bcrypt hash. An unknown
// email and a wrong password both map to the same unauthorized error.
func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	user, err := s.UserRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, util.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("last login update failed", zap.Error(err), zap.Uint("userId", user.ID))
	}

	token, err := util.GenerateJWT(user, s.JWTSecret, s.JWTExpire)
	if err != nil {
		return nil, util.Internal(err)
	}
	return &AuthResult{Token: token, User: user}, nil
}
