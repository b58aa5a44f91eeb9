// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0

package aliyun

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// Environment variables checked first during credential resolution.
const (
	EnvAccessKeyID     = "ALI_ACCESS_KEY_ID"
	EnvSecretAccessKey = "ALI_SECRET_ACCESS_KEY"
)

// SystemConfigFile is the system-wide fallback credentials file.
const SystemConfigFile = "/etc/aliyun.cfg"

// Credentials holds an access key pair. Immutable once resolved; never
// logged and never persisted by this library.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
}

// CredentialsProvider resolves credentials from some source. Connections
// accept a provider so tests can supply fixed credentials without touching
// the environment or filesystem.
type CredentialsProvider interface {
	Resolve() (Credentials, error)
}

// StaticProvider returns fixed credentials.
type StaticProvider struct {
	Credentials Credentials
}

func (p StaticProvider) Resolve() (Credentials, error) {
	if p.Credentials.AccessKeyID == "" || p.Credentials.SecretAccessKey == "" {
		return Credentials{}, ErrCredentialsNotFound
	}
	return p.Credentials, nil
}

// EnvProvider resolves credentials from ALI_ACCESS_KEY_ID and
// ALI_SECRET_ACCESS_KEY. Both must be set.
type EnvProvider struct{}

func (EnvProvider) Resolve() (Credentials, error) {
	id := os.Getenv(EnvAccessKeyID)
	secret := os.Getenv(EnvSecretAccessKey)
	if id == "" || secret == "" {
		return Credentials{}, ErrCredentialsNotFound
	}
	return Credentials{AccessKeyID: id, SecretAccessKey: secret}, nil
}

// FileProvider resolves credentials from an ini-style file with a [default]
// section carrying access_key_id and secret_access_key keys.
type FileProvider struct {
	Path string
}

func (p FileProvider) Resolve() (Credentials, error) {
	if _, err := os.Stat(p.Path); err != nil {
		return Credentials{}, fmt.Errorf("%s: %w", p.Path, ErrCredentialsNotFound)
	}

	cfg, err := ini.Load(p.Path)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to parse %s: %w", p.Path, err)
	}

	section := cfg.Section("default")
	creds := Credentials{
		AccessKeyID:     section.Key("access_key_id").String(),
		SecretAccessKey: section.Key("secret_access_key").String(),
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return Credentials{}, fmt.Errorf("%s has no usable [default] section: %w", p.Path, ErrCredentialsNotFound)
	}
	return creds, nil
}

// ChainProvider tries each provider in order and returns the first success.
type ChainProvider []CredentialsProvider

func (c ChainProvider) Resolve() (Credentials, error) {
	for _, p := range c {
		if creds, err := p.Resolve(); err == nil {
			return creds, nil
		}
	}
	return Credentials{}, ErrCredentialsNotFound
}

// DefaultProvider is the standard resolution chain, in priority order:
// environment variables, $HOME/.aliyun.cfg, /etc/aliyun.cfg.
func DefaultProvider() CredentialsProvider {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "/root"
	}
	return ChainProvider{
		EnvProvider{},
		FileProvider{Path: filepath.Join(home, ".aliyun.cfg")},
		FileProvider{Path: SystemConfigFile},
	}
}

// FindCredentials resolves credentials using the default chain.
func FindCredentials() (Credentials, error) {
	return DefaultProvider().Resolve()
}
