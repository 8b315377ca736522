package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pecas-api/internal/application/auth"
	"github.com/jhoicas/pecas-api/internal/application/dto"
	"github.com/jhoicas/pecas-api/internal/domain"
	"github.com/jhoicas/pecas-api/internal/infrastructure/memory"
	"github.com/jhoicas/pecas-api/pkg/jwt"
	"github.com/jhoicas/pecas-api/pkg/logger"
)

type codeStore struct {
	mu    sync.Mutex
	codes map[string]auth.ResetCode
	ttl   time.Duration
}

func (s *codeStore) Save(_ context.Context, email string, code auth.ResetCode, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = code
	s.ttl = ttl
	return nil
}

func (s *codeStore) Get(_ context.Context, email string) (*auth.ResetCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.codes[email]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *codeStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, email)
	return nil
}

// expire simula que venció el TTL.
func (s *codeStore) expire(email string) { _ = s.Delete(context.Background(), email) }

type notifier struct {
	sent map[string]string
}

func (n *notifier) SendResetCode(_ context.Context, email, code string) error {
	n.sent[email] = code
	return nil
}

const secret = "test-secret"

func newUseCase() (*auth.AuthUseCase, *codeStore, *notifier) {
	store := &codeStore{codes: map[string]auth.ResetCode{}}
	n := &notifier{sent: map[string]string{}}
	uc := auth.NewAuthUseCase(
		memory.NewUserRepository(memory.NewStore()), store, n,
		auth.JWTConfig{Secret: secret, ExpMinutes: 30, Issuer: "pecas-api"},
		15*time.Minute, logger.Nop(),
	)
	return uc, store, n
}

func TestRegisterYLogin(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: " Ana@Loja.com ", Password: "segredo1", Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "ana@loja.com", u.Email)
	assert.Equal(t, "seller", u.Role)
	assert.True(t, u.Active)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@loja.com", Password: "segredo1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ANA@loja.com", Password: "segredo1"})
	require.NoError(t, err)
	id, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
	assert.Equal(t, "seller", role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@loja.com", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@loja.com", Password: "segredo1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	me, err := uc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.Name)
}

func TestRegister_Validaciones(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()
	cases := []dto.RegisterRequest{
		{Email: "", Password: "segredo1"},
		{Email: "sin-arroba", Password: "segredo1"},
		{Email: "a@b.com", Password: "123"},
		{Email: "a@b.com", Password: "segredo1", Role: "root"},
	}
	for _, in := range cases {
		_, err := uc.RegisterUser(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
}

func TestForgotYResetPassword(t *testing.T) {
	uc, store, n := newUseCase()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@loja.com", Password: "segredo1"})
	require.NoError(t, err)

	require.NoError(t, uc.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: "Ana@Loja.com"}))
	code := n.sent["ana@loja.com"]
	assert.Regexp(t, `^[1-9][0-9]{5}$`, code)
	assert.Equal(t, 15*time.Minute, store.ttl)

	err = uc.ResetPassword(ctx, dto.ResetPasswordRequest{Email: "ana@loja.com", Code: "000000", NewPassword: "novasenha"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.ResetPassword(ctx, dto.ResetPasswordRequest{Email: "ana@loja.com", Code: code, NewPassword: "novasenha"}))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@loja.com", Password: "segredo1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@loja.com", Password: "novasenha"})
	assert.NoError(t, err)

	err = uc.ResetPassword(ctx, dto.ResetPasswordRequest{Email: "ana@loja.com", Code: code, NewPassword: "outrasenha"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el código se consume")
}

func TestResetPassword_CodigoExpirado(t *testing.T) {
	uc, store, n := newUseCase()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@loja.com", Password: "segredo1"})
	require.NoError(t, err)
	require.NoError(t, uc.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: "ana@loja.com"}))

	store.expire("ana@loja.com")
	err = uc.ResetPassword(ctx, dto.ResetPasswordRequest{Email: "ana@loja.com", Code: n.sent["ana@loja.com"], NewPassword: "novasenha"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestForgotPassword_EmailDesconocido(t *testing.T) {
	uc, _, n := newUseCase()
	err := uc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "nadie@loja.com"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, n.sent)
}

func TestSeedAdmin(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()

	admin, err := uc.SeedAdmin(ctx, dto.RegisterRequest{Email: "admin@pecas.test", Password: "admin123", Role: "seller"}, false)
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Role, "seed siempre crea administradores")

	_, err = uc.SeedAdmin(ctx, dto.RegisterRequest{Email: "otro@pecas.test", Password: "admin123"}, false)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	second, err := uc.SeedAdmin(ctx, dto.RegisterRequest{Email: "otro@pecas.test", Password: "admin123"}, true)
	require.NoError(t, err)
	assert.Equal(t, "admin", second.Role)
}
