package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trazabilidad-api/internal/application/auth"
	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/cache"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/Trazabilidad-api/pkg/jwt"
)

var testJWT = auth.JWTConfig{Secret: "secret-para-tests", ExpMinutes: 60, Issuer: "trazabilidad-test"}

func newAuthUC() *auth.UseCase {
	return auth.NewUseCase(memory.NewUserStore(), cache.NewMemory(), testJWT)
}

// El registro normaliza el email, asigna rol operario por defecto y nunca
// expone el hash.
func TestRegister_AltaConRolPorDefecto(t *testing.T) {
	uc := newAuthUC()

	user, err := uc.Register(dto.RegisterRequest{
		Email:    "  Marie@Patisserie.FR ",
		Password: "hojaldre-2024",
		Name:     "Marie",
	})
	require.NoError(t, err)

	assert.Equal(t, "marie@patisserie.fr", user.Email, "el email debe normalizarse a minúsculas")
	assert.Equal(t, entity.RoleOperario, user.Role, "sin rol explícito debe asignarse operario")
	assert.NotEmpty(t, user.ID)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := newAuthUC()

	_, err := uc.Register(dto.RegisterRequest{Email: "marie@patisserie.fr", Password: "hojaldre-2024"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Email: "MARIE@patisserie.fr", Password: "otra-clave-123"})
	assert.ErrorIs(t, err, domain.ErrEmailExists,
		"el mismo email con otra capitalización debe rechazarse")
}

// fallaGetByEmail simula un almacén caído en la consulta de duplicados.
type fallaGetByEmail struct {
	*memory.UserStore
}

func (s *fallaGetByEmail) GetByEmail(string) (*entity.User, error) {
	return nil, errors.New("almacén no disponible")
}

// Un fallo transitorio al consultar el email no puede leerse como "email
// libre": el registro debe devolver el error, no crear el usuario.
func TestRegister_FalloDeConsultaNoRegistra(t *testing.T) {
	store := memory.NewUserStore()
	uc := auth.NewUseCase(&fallaGetByEmail{UserStore: store}, cache.NewMemory(), testJWT)

	_, err := uc.Register(dto.RegisterRequest{Email: "marie@patisserie.fr", Password: "hojaldre-2024"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEmailExists)

	users, lerr := store.ListAll()
	require.NoError(t, lerr)
	assert.Empty(t, users, "con el almacén caído no debe persistirse nada")
}

func TestLogin_EmiteTokenConRol(t *testing.T) {
	uc := newAuthUC()

	registered, err := uc.Register(dto.RegisterRequest{
		Email:    "admin@patisserie.fr",
		Password: "croissant-9000",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "admin@patisserie.fr", Password: "croissant-9000"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, role, err := pkgjwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err, "el token emitido debe validar con el mismo secret")
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuthUC()

	_, err := uc.Register(dto.RegisterRequest{Email: "marie@patisserie.fr", Password: "hojaldre-2024"})
	require.NoError(t, err)

	// Password incorrecto
	_, err = uc.Login(dto.LoginRequest{Email: "marie@patisserie.fr", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Usuario inexistente: misma respuesta, sin filtrar si el email existe
	_, err = uc.Login(dto.LoginRequest{Email: "nadie@patisserie.fr", Password: "hojaldre-2024"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
