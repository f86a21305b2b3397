// Package auth autentica usuários contra o banco e emite tokens JWT.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/domain"
	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/storage"
)

// ErrCredenciais é devolvido em qualquer falha de login; a mensagem
// nunca distingue usuário inexistente de senha errada.
var ErrCredenciais = errors.New("usuário ou senha inválidos")

type Service struct {
	store     storage.Store
	jwtSecret []byte
	log       *zap.Logger
	agora     func() time.Time
}

func NewService(store storage.Store, jwtSecret []byte, log *zap.Logger) *Service {
	return &Service{store: store, jwtSecret: jwtSecret, log: log, agora: time.Now}
}

// Login valida as credenciais e devolve um token HS256 válido por 24h.
func (s *Service) Login(ctx context.Context, username, password string) (string, *domain.Usuario, error) {
	username = strings.TrimSpace(username)

	user, err := s.store.GetUsuario(ctx, username)
	if err != nil {
		s.log.Error("erro ao consultar usuário", zap.Error(err))
		return "", nil, errors.New("erro ao consultar o banco de dados")
	}
	if user == nil {
		return "", nil, ErrCredenciais
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrCredenciais
	}

	claims := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"admin":    user.Admin,
		"exp":      s.agora().Add(24 * time.Hour).Unix(),
	})
	token, err := claims.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, errors.New("erro ao gerar token de acesso")
	}
	return token, user, nil
}

// Claims carrega a identidade extraída de um token válido.
type Claims struct {
	Username string
	Admin    bool
}

// ValidarToken confere assinatura e expiração e devolve a identidade.
func (s *Service) ValidarToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("token inválido ou expirado")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("token inválido ou expirado")
	}
	username, _ := mapClaims["username"].(string)
	admin, _ := mapClaims["admin"].(bool)
	return &Claims{Username: username, Admin: admin}, nil
}

// AddUser cadastra um usuário com a senha já submetida ao bcrypt.
func (s *Service) AddUser(ctx context.Context, username, password string, admin bool) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username é obrigatório")
	}
	if len(password) < 4 {
		return errors.New("a senha deve ter ao menos 4 caracteres")
	}

	existente, err := s.store.GetUsuario(ctx, username)
	if err != nil {
		return fmt.Errorf("erro ao consultar usuário: %w", err)
	}
	if existente != nil {
		return fmt.Errorf("usuário %q já existe", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("erro ao gerar hash de senha: %w", err)
	}
	return s.store.InsertUsuario(ctx, &domain.Usuario{
		Username:     username,
		PasswordHash: string(hash),
		Admin:        admin,
	})
}

// RemoveUser exclui um usuário. O usuário "admin" é protegido.
func (s *Service) RemoveUser(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "admin" {
		return errors.New("o usuário admin não pode ser removido")
	}
	user, err := s.store.GetUsuario(ctx, username)
	if err != nil {
		return fmt.Errorf("erro ao consultar usuário: %w", err)
	}
	if user == nil {
		return fmt.Errorf("usuário %q não encontrado", username)
	}
	return s.store.DeleteUsuario(ctx, username)
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.Usuario, error) {
	return s.store.ListUsuarios(ctx)
}

// SeedAdmin garante o usuário inicial quando a tabela está vazia.
func (s *Service) SeedAdmin(ctx context.Context, password string) error {
	usuarios, err := s.store.ListUsuarios(ctx)
	if err != nil {
		return fmt.Errorf("erro ao listar usuários: %w", err)
	}
	if len(usuarios) > 0 {
		return nil
	}
	if err := s.AddUser(ctx, "admin", password, true); err != nil {
		return err
	}
	s.log.Info("usuário admin inicial criado")
	return nil
}
