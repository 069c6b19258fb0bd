package faucetdb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	"github.com/chainsafe/mina-faucet/pkg/grantstore"
	mghelper "github.com/chainsafe/mina-faucet/pkg/pgutil/migrations"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating grants table...")
		if err := mghelper.CreateSchema(ctx, db, &grantstore.GrantDao{}); err != nil {
			return err
		}
		return mghelper.CreateIndexes(ctx, db, "grants", "network_id")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping grants table...")
		return mghelper.DropTables(ctx, db, &grantstore.GrantDao{})
	})
}
