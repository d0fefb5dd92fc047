package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/hotelcal/internal/keyring"
	"github.com/julianstephens/hotelcal/internal/storage"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store the Postgres feed connection string in the OS keyring."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	Status KeyringStatusCmd `cmd:"" help:"Check the OS keyring." default:"1"`
}

// KeyringSetCmd stores the feed connection string used by --source keyring
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in the keyring."`
}

func (cmd *KeyringSetCmd) Run(ctx *Context) error {
	if err := storage.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, storage.ErrEmbeddedCredentials) {
			return err
		}
		// the keyring is encrypted, so a password is allowed here
		ctx.println("⚠️  Warning: Connection string contains embedded credentials.")
		ctx.println("   It will be stored as-is in the encrypted OS keyring.")
		ctx.println("   To keep passwords separate, use .pgpass or PGPASSWORD instead.")
	}

	if err := keyring.SetFeedDSN(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	ctx.println("✓ Connection string stored in OS keyring")
	ctx.println("  Use it with --source keyring")
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteFeedDSN(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	ctx.println("✓ Connection string deleted from OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *Context) error {
	switch keyring.Status() {
	case keyring.StateStored:
		ctx.println("✓ OS keyring is available")
		dsn, err := keyring.GetFeedDSN()
		if err != nil {
			return err
		}
		ctx.printf("✓ Connection string is stored: %s\n", maskPassword(dsn))
	case keyring.StateEmpty:
		ctx.println("✓ OS keyring is available")
		ctx.println("ℹ No connection string stored in keyring")
	default:
		ctx.println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

// maskPassword hides the password of a URL or key=value connection string.
func maskPassword(connStr string) string {
	if storage.IsPostgres(connStr) {
		idx := strings.Index(connStr, "://")
		rest := connStr[idx+3:]
		if at := strings.LastIndex(rest, "@"); at != -1 {
			userInfo := rest[:at]
			if colon := strings.Index(userInfo, ":"); colon != -1 {
				return connStr[:idx+3] + userInfo[:colon] + ":****" + rest[at:]
			}
		}
		return connStr
	}

	parts := strings.Fields(connStr)
	for i, part := range parts {
		if strings.HasPrefix(part, "password=") {
			parts[i] = "password=****"
		}
	}
	return strings.Join(parts, " ")
}
