// Package auth login, registro y recuperación de contraseña.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pecas-api/internal/application/dto"
	"github.com/jhoicas/pecas-api/internal/domain"
	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
	"github.com/jhoicas/pecas-api/pkg/jwt"
	"github.com/jhoicas/pecas-api/pkg/logger"
)

// MinPasswordLen longitud mínima de contraseña.
const MinPasswordLen = 6

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación.
type AuthUseCase struct {
	userRepo repository.UserRepository
	codes    ResetCodeStore
	notifier CodeNotifier
	jwtCfg   JWTConfig
	codeTTL  time.Duration
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, codes ResetCodeStore, notifier CodeNotifier, jwtCfg JWTConfig, codeTTL time.Duration, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, codes: codes, notifier: notifier, jwtCfg: jwtCfg, codeTTL: codeTTL, log: log}
}

// RegisterUser crea un usuario con password bcrypt. ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := dto.Email("email", &in.Email, true); err != nil {
		return nil, err
	}
	if err := dto.Optional("nombre", &in.Name, dto.MaxNameLen); err != nil {
		return nil, err
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleSeller
	}
	if role != entity.RoleAdmin && role != entity.RoleSeller {
		return nil, domain.Invalid("rol inválido: %s (admin|seller)", role)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Email
	}
	now := time.Now()
	user := &entity.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Str("role", role).Msg("usuario registrado")
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := in.Email
	if err := dto.Email("email", &email, true); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &domain.Error{Kind: domain.ErrUnauthorized, Message: "credenciales inválidas"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, &domain.Error{Kind: domain.ErrUnauthorized, Message: "credenciales inválidas"}
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// ForgotPassword genera un código de 6 dígitos con expiración y lo entrega vía notifier.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, in dto.ForgotPasswordRequest) error {
	if err := dto.Email("email", &in.Email, true); err != nil {
		return err
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NotFound("email no encontrado")
	}
	code, err := newResetCode()
	if err != nil {
		return err
	}
	if err := uc.codes.Save(ctx, in.Email, ResetCode{Code: code, UserID: user.ID}, uc.codeTTL); err != nil {
		return fmt.Errorf("guardar código de recuperación: %w", err)
	}
	return uc.notifier.SendResetCode(ctx, in.Email, code)
}

// ResetPassword valida el código vigente, cambia la contraseña y consume el código.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	if err := dto.Email("email", &in.Email, true); err != nil {
		return err
	}
	in.Code = dto.Clean(in.Code)
	if in.Code == "" {
		return domain.Invalid("código es obligatorio")
	}
	if err := checkPassword(in.NewPassword); err != nil {
		return err
	}
	stored, err := uc.codes.Get(ctx, in.Email)
	if err != nil {
		return fmt.Errorf("leer código de recuperación: %w", err)
	}
	if stored == nil {
		return domain.Invalid("código no encontrado o expirado")
	}
	if subtle.ConstantTimeCompare([]byte(stored.Code), []byte(in.Code)) != 1 {
		return domain.Invalid("código inválido")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := uc.userRepo.UpdatePassword(ctx, stored.UserID, string(hash)); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.NotFound("usuario no encontrado")
		}
		return err
	}
	if err := uc.codes.Delete(ctx, in.Email); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo borrar el código de recuperación")
	}
	uc.log.Info().Int64("user_id", stored.UserID).Msg("contraseña restablecida")
	return nil
}

// SeedAdmin crea el primer administrador. Sin force falla si ya hay usuarios.
func (uc *AuthUseCase) SeedAdmin(ctx context.Context, in dto.RegisterRequest, force bool) (*dto.UserResponse, error) {
	if !force {
		n, err := uc.userRepo.Count(ctx)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, domain.InvalidState("ya existen %d usuarios; use --force para crear otro administrador", n)
		}
	}
	in.Role = entity.RoleAdmin
	return uc.RegisterUser(ctx, in)
}

// GetUser devuelve el usuario autenticado.
func (uc *AuthUseCase) GetUser(ctx context.Context, id int64) (*dto.UserResponse, error) {
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(u), nil
}

func checkPassword(p string) error {
	if len([]rune(p)) < MinPasswordLen {
		return domain.Invalid("la contraseña debe tener al menos %d caracteres", MinPasswordLen)
	}
	// bcrypt ignora lo que pase de 72 bytes
	if len(p) > 72 {
		return domain.Invalid("la contraseña no puede superar 72 bytes")
	}
	return nil
}

func newResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
