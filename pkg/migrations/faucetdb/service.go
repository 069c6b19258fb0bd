// Package faucetdb holds all the migrations for the faucet database
package faucetdb

import (
	"github.com/uptrace/bun/migrate"
)

// Migrations is the collection of all migrations for the faucet database
var Migrations = migrate.NewMigrations()
