// Package config carrega a configuração do serviço a partir de
// variáveis de ambiente.
package config

import (
	"fmt"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// DatabaseURL é a URL de conexão do Postgres hospedado.
	// Environment variable: CONTAS_DATABASE_URL
	DatabaseURL string `koanf:"CONTAS_DATABASE_URL"`

	// JWTSecret assina os tokens de sessão.
	// Environment variable: CONTAS_JWT_SECRET
	JWTSecret string `koanf:"CONTAS_JWT_SECRET"`

	// Port é a porta HTTP do serviço.
	// Environment variable: CONTAS_PORT
	Port string `koanf:"CONTAS_PORT"`

	// AdminPassword é a senha do usuário admin criado quando a tabela
	// de usuários está vazia.
	// Environment variable: CONTAS_ADMIN_PASSWORD
	AdminPassword string `koanf:"CONTAS_ADMIN_PASSWORD"`
}

// Load lê o ambiente e aplica os padrões.
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", nil), nil); err != nil {
		return nil, fmt.Errorf("erro ao carregar configuração: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return nil, fmt.Errorf("erro ao interpretar configuração: %w", err)
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "admin"
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("CONTAS_DATABASE_URL é obrigatória")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("CONTAS_JWT_SECRET é obrigatória")
	}
	return &cfg, nil
}
