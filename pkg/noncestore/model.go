package noncestore

import (
	"time"

	"github.com/uptrace/bun"
)

// NonceStateDao is a data access object that maps directly to the 'nonce_state' table in PostgreSQL.
type NonceStateDao struct {
	bun.BaseModel `bun:"table:nonce_state,alias:ns"`
	NetworkID     string    `bun:"network_id,pk,type:varchar(100)"`
	Nonce         int64     `bun:"nonce,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,nullzero,default:current_timestamp"`
}
