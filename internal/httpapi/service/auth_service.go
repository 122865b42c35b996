package service

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"storehub/internal/auth"
	"storehub/internal/config"
	"storehub/internal/httpapi/dto"
	"storehub/internal/httpapi/models"
	"storehub/internal/httpapi/repository"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var (
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrWeakPassword       = errors.New("password must contain an uppercase letter and a special character")
)

// Claims is the resolved caller identity carried through the request.
type Claims struct {
	UserID string
	Role   string
}

type AuthService interface {
	Register(req dto.RegisterRequest) (*models.User, string, error)
	Login(email, password string) (string, *models.User, error)
	Profile(userID string) (*dto.ProfileResponse, error)
	UpdatePassword(userID, currentPassword, newPassword string) error
	ValidateToken(tokenString string) (*Claims, error)
	Authenticate(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: cfg.JWTSecret,
		jwtExpiry: cfg.JWTExpiry,
	}
}

// Register creates a USER account and returns it with a fresh token.
func (s *authService) Register(req dto.RegisterRequest) (*models.User, string, error) {
	if !passwordStrongEnough(req.Password) {
		return nil, "", ErrWeakPassword
	}

	email := strings.ToLower(req.Email)
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, "", ErrEmailInUse
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    email,
		Password: hashedPassword,
		Address:  req.Address,
		Role:     models.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrEmailInUse
		}
		return nil, "", err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(email))
	if err != nil {
		// dummy compare to mitigate timing attacks (always take same time)
		auth.VerifyPassword("$2a$12$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return "", nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *authService) Profile(userID string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	resp := &dto.ProfileResponse{UserResponse: dto.FromUserModel(user)}
	if user.OwnedStore != nil {
		summary := Summarize(user.OwnedStore.Ratings, "")
		resp.OwnedStore = &dto.OwnedStoreDetail{
			ID:            user.OwnedStore.ID,
			Name:          user.OwnedStore.Name,
			Email:         user.OwnedStore.Email,
			Address:       user.OwnedStore.Address,
			AverageRating: summary.Average,
			TotalRatings:  summary.Count,
		}
	}
	return resp, nil
}

func (s *authService) UpdatePassword(userID, currentPassword, newPassword string) error {
	if !passwordStrongEnough(newPassword) {
		return ErrWeakPassword
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := auth.VerifyPassword(user.Password, currentPassword); err != nil {
		return ErrWrongPassword
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(userID, hashed)
}

func (s *authService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(s.jwtExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, _ := mapClaims["user_id"].(string)
	role, _ := mapClaims["role"].(string)
	if userID == "" || role == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{UserID: userID, Role: role}, nil
}

// Authenticate validates the token and resolves the caller against the
// database, so a role change (owner promotion) takes effect on the next
// request rather than at the next login.
func (s *authService) Authenticate(tokenString string) (*Claims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &Claims{UserID: user.ID, Role: user.Role}, nil
}

// passwordStrongEnough enforces the rules length tags can't express:
// at least one uppercase letter and one special character.
func passwordStrongEnough(password string) bool {
	hasUpper := false
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
			break
		}
	}
	return hasUpper && strings.ContainsAny(password, `!@#$%^&*(),.?":{}|<>`)
}
