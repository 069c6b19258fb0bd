package faucetdb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	"github.com/chainsafe/mina-faucet/pkg/noncestore"
	mghelper "github.com/chainsafe/mina-faucet/pkg/pgutil/migrations"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating nonce_state table...")
		return mghelper.CreateSchema(ctx, db, &noncestore.NonceStateDao{})
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping nonce_state table...")
		return mghelper.DropTables(ctx, db, &noncestore.NonceStateDao{})
	})
}
