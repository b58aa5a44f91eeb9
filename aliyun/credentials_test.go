// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aliyun

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCredentialFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aliyun.cfg")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestStaticProvider(t *testing.T) {
	creds, err := StaticProvider{Credentials: testCreds}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, testCreds, creds)

	_, err = StaticProvider{}.Resolve()
	assert.ErrorIs(t, err, ErrCredentialsNotFound)

	_, err = StaticProvider{Credentials: Credentials{AccessKeyID: "id"}}.Resolve()
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
}

func TestEnvProvider(t *testing.T) {
	t.Setenv(EnvAccessKeyID, "env_key")
	t.Setenv(EnvSecretAccessKey, "env_secret")

	creds, err := EnvProvider{}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, Credentials{AccessKeyID: "env_key", SecretAccessKey: "env_secret"}, creds)
}

func TestEnvProviderRequiresBothVariables(t *testing.T) {
	t.Setenv(EnvAccessKeyID, "env_key")
	t.Setenv(EnvSecretAccessKey, "")

	_, err := EnvProvider{}.Resolve()
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
}

func TestFileProvider(t *testing.T) {
	path := writeCredentialFile(t, `[default]
access_key_id = file_key
secret_access_key = file_secret
`)

	creds, err := FileProvider{Path: path}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, Credentials{AccessKeyID: "file_key", SecretAccessKey: "file_secret"}, creds)
}

func TestFileProviderMissingFile(t *testing.T) {
	_, err := FileProvider{Path: filepath.Join(t.TempDir(), "absent.cfg")}.Resolve()
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
}

func TestFileProviderIncompleteSection(t *testing.T) {
	path := writeCredentialFile(t, `[default]
access_key_id = file_key
`)

	_, err := FileProvider{Path: path}.Resolve()
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
}

func TestFileProviderWrongSection(t *testing.T) {
	path := writeCredentialFile(t, `[other]
access_key_id = file_key
secret_access_key = file_secret
`)

	_, err := FileProvider{Path: path}.Resolve()
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
}

// TestChainProviderPrecedence pins the resolution order: the environment wins
// over a credential file that also resolves.
func TestChainProviderPrecedence(t *testing.T) {
	t.Setenv(EnvAccessKeyID, "env_key")
	t.Setenv(EnvSecretAccessKey, "env_secret")

	path := writeCredentialFile(t, `[default]
access_key_id = file_key
secret_access_key = file_secret
`)

	chain := ChainProvider{EnvProvider{}, FileProvider{Path: path}}
	creds, err := chain.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "env_key", creds.AccessKeyID)
}

func TestChainProviderFallsThrough(t *testing.T) {
	t.Setenv(EnvAccessKeyID, "")
	t.Setenv(EnvSecretAccessKey, "")

	path := writeCredentialFile(t, `[default]
access_key_id = file_key
secret_access_key = file_secret
`)

	chain := ChainProvider{EnvProvider{}, FileProvider{Path: path}}
	creds, err := chain.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "file_key", creds.AccessKeyID)
}

func TestChainProviderExhausted(t *testing.T) {
	chain := ChainProvider{StaticProvider{}, FileProvider{Path: filepath.Join(t.TempDir(), "absent.cfg")}}
	_, err := chain.Resolve()
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
}
