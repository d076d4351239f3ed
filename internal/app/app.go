package app

import (
	"fmt"
	"log/slog"
	"os"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/andy/billfold/internal/api"
	"github.com/andy/billfold/internal/config"
	"github.com/andy/billfold/internal/crypto"
	"github.com/andy/billfold/internal/db"
	"github.com/andy/billfold/internal/logging"
	"github.com/andy/billfold/internal/repository"
	"github.com/andy/billfold/internal/service"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	Log    *slog.Logger

	API            *api.Client
	InvoiceService service.InvoiceService

	// Local drafts store, opened lazily so API-only commands never
	// touch the keyring or prompt for a password
	DB        *db.DB
	DraftRepo repository.DraftRepository

	logFile *os.File
}

// New creates a new App instance from the default config path
func New() (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	log, logFile, err := logging.Open(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}

	client := api.New(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second, log)
	invoiceService := service.NewInvoiceService(client, log)

	return &App{
		Config:         cfg,
		Log:            log,
		API:            client,
		InvoiceService: invoiceService,
		logFile:        logFile,
	}, nil
}

// OpenDrafts opens the encrypted drafts database on first use. It fetches
// the encryption key from the system keyring, prompting for a password and
// storing it when none exists yet, then runs migrations.
func (a *App) OpenDrafts() error {
	if a.DraftRepo != nil {
		return nil
	}

	keyring := crypto.NewKeyring()

	password, err := keyring.GetKey()
	if err != nil {
		fmt.Println("Setting up drafts encryption for the first time...")
		password, err = promptForPassword()
		if err != nil {
			return fmt.Errorf("failed to set password: %w", err)
		}

		if err := keyring.SetKey(password); err != nil {
			return fmt.Errorf("failed to store encryption key: %w", err)
		}
	}

	database, err := db.Open(a.Config.Database.Path, password)
	if err != nil {
		return fmt.Errorf("failed to open drafts database: %w", err)
	}

	if err := database.RunMigrations(); err != nil {
		database.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	a.DB = database
	a.DraftRepo = repository.NewDraftRepo(database)
	return nil
}

// ResetDrafts deletes the drafts database file and removes the encryption
// key from the keyring.
func (a *App) ResetDrafts() error {
	if a.DB != nil {
		a.DB.Close()
		a.DB = nil
		a.DraftRepo = nil
	}

	if err := os.Remove(a.Config.Database.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove drafts database: %w", err)
	}

	keyring := crypto.NewKeyring()
	if err := keyring.DeleteKey(); err != nil {
		// Key may simply not exist; log and carry on
		a.Log.Warn("delete encryption key", "error", err)
	}

	return nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			return err
		}
	}
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}

// promptForPassword prompts user for a new drafts password (first run)
// This should be called when keyring has no stored key
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Locally stashed drafts are encrypted with a password.")
	fmt.Println("This password will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for drafts encryption: ")

	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("Drafts encryption configured successfully")
	fmt.Println()

	return string(password), nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}
