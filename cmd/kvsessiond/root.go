package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zdnscloud/kvsession"
	"github.com/zdnscloud/kvsession/backend"
	"github.com/zdnscloud/kvsession/backend/bolt"
	"github.com/zdnscloud/kvsession/backend/memory"
	"github.com/zdnscloud/kvsession/backend/sqlite"
	"github.com/zdnscloud/kvsession/client"
	"github.com/zdnscloud/kvsession/config"
	"github.com/zdnscloud/kvsession/engine"
	"github.com/zdnscloud/kvsession/session"
)

var rootCmd = &cobra.Command{
	Use:   "kvsessiond",
	Short: "kvsessiond serves versioned key-value databases over gRPC",
	Long: `kvsessiond keeps schema-versioned databases on local storage and serves
them over gRPC. Every request opens its own connection and transaction.

Examples:
  # serve bolt databases under ./data
  kvsessiond serve --config kvsession.yaml

  # print the schema version of a database through a running server
  kvsessiond inspect users --remote 127.0.0.1:5555`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		c.InitLogger()
		cfg = c
		return nil
	},
}

var (
	configPath string
	remoteAddr string
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file, defaults and KVSESSION_* env apply without it")
	rootCmd.PersistentFlags().StringVarP(&remoteAddr, "remote", "r", "", "address of a running server, local storage is used when empty")
	rootCmd.AddCommand(serveCmd, inspectCmd, dropCmd)
}

func newDriver(c *config.Config) (backend.Driver, error) {
	switch c.Storage.Driver {
	case config.DriverBolt:
		return bolt.New(c.Storage.Dir)
	case config.DriverSqlite:
		return sqlite.New(c.Storage.Dir)
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %s", c.Storage.Driver)
	}
}

func newLocalSession(c *config.Config) (*session.Session, func() error, error) {
	driver, err := newDriver(c)
	if err != nil {
		return nil, nil, err
	}
	e := engine.New(driver)
	s := session.New(e,
		session.WithMigrationLockDir(c.Migration.LockDir),
		session.WithMigrationRetries(c.Migration.Retries))
	return s, e.Close, nil
}

//withStore runs fn against the remote server when --remote is set,
//otherwise against local storage
func withStore(fn func(ctx context.Context, store kvsession.Store) error) error {
	ctx := context.Background()
	if remoteAddr != "" {
		cli, err := client.New(remoteAddr)
		if err != nil {
			return err
		}
		defer cli.Close()
		return fn(ctx, cli)
	}

	s, closeFn, err := newLocalSession(cfg)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, s)
}
