//go:build !darwin

package crypto

import (
	"errors"
	"fmt"
	"os"
)

// EnvKeyName is the environment variable consulted on platforms
// without a system keychain.
const EnvKeyName = "BILLFOLD_DB_KEY"

type envKeyring struct{}

func newPlatformKeyring() Keyring {
	return &envKeyring{}
}

func (k *envKeyring) GetKey() (string, error) {
	key := os.Getenv(EnvKeyName)
	if key == "" {
		return "", fmt.Errorf("encryption key not set; export %s to use the local drafts store", EnvKeyName)
	}
	return key, nil
}

func (k *envKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	return os.Setenv(EnvKeyName, password)
}

func (k *envKeyring) DeleteKey() error {
	return os.Unsetenv(EnvKeyName)
}

func (k *envKeyring) IsAvailable() bool {
	return true
}
