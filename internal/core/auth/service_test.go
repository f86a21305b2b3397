package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/storage"
)

func novoServico(t *testing.T) *Service {
	t.Helper()
	svc := NewService(storage.NewMemory(), []byte("segredo-de-teste"), zap.NewNop())
	require.NoError(t, svc.AddUser(context.Background(), "maria", "senha123", false))
	return svc
}

func TestLoginEValidacaoDeToken(t *testing.T) {
	svc := novoServico(t)
	ctx := context.Background()

	token, user, err := svc.Login(ctx, "maria", "senha123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "maria", user.Username)
	assert.False(t, user.Admin)

	claims, err := svc.ValidarToken(token)
	require.NoError(t, err)
	assert.Equal(t, "maria", claims.Username)
	assert.False(t, claims.Admin)
}

func TestLoginCredenciaisInvalidas(t *testing.T) {
	svc := novoServico(t)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "maria", "senha-errada")
	assert.ErrorIs(t, err, ErrCredenciais)

	// usuário inexistente devolve a mesma mensagem
	_, _, err = svc.Login(ctx, "ninguem", "senha123")
	assert.ErrorIs(t, err, ErrCredenciais)
}

func TestValidarTokenRejeitaAssinaturaErrada(t *testing.T) {
	svc := novoServico(t)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "maria", "senha123")
	require.NoError(t, err)

	outro := NewService(storage.NewMemory(), []byte("outro-segredo"), zap.NewNop())
	_, err = outro.ValidarToken(token)
	assert.Error(t, err)
}

func TestAddUserValidacoes(t *testing.T) {
	svc := novoServico(t)
	ctx := context.Background()

	err := svc.AddUser(ctx, "maria", "senha123", false)
	assert.ErrorContains(t, err, "já existe")

	err = svc.AddUser(ctx, "joao", "123", false)
	assert.ErrorContains(t, err, "ao menos 4")

	err = svc.AddUser(ctx, "  ", "senha123", false)
	assert.ErrorContains(t, err, "obrigatório")
}

func TestRemoveUserProtegeAdmin(t *testing.T) {
	svc := novoServico(t)
	ctx := context.Background()

	require.NoError(t, svc.AddUser(ctx, "admin", "senha-admin", true))
	err := svc.RemoveUser(ctx, "admin")
	assert.ErrorContains(t, err, "não pode ser removido")

	require.NoError(t, svc.RemoveUser(ctx, "maria"))
	err = svc.RemoveUser(ctx, "maria")
	assert.ErrorContains(t, err, "não encontrado")
}

func TestSeedAdminSoQuandoVazio(t *testing.T) {
	svc := NewService(storage.NewMemory(), []byte("segredo"), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.SeedAdmin(ctx, "inicial"))
	usuarios, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, usuarios, 1)
	assert.Equal(t, "admin", usuarios[0].Username)
	assert.True(t, usuarios[0].Admin)

	// segunda chamada não recria nem sobrescreve
	require.NoError(t, svc.SeedAdmin(ctx, "outra-senha"))
	_, _, err = svc.Login(ctx, "admin", "inicial")
	assert.NoError(t, err)
}
