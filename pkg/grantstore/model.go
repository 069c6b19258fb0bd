package grantstore

import (
	"time"

	"github.com/uptrace/bun"
)

// GrantDao is a data access object that maps directly to the 'grants' table in PostgreSQL.
type GrantDao struct {
	bun.BaseModel `bun:"table:grants,alias:g"`
	Address       string    `bun:"address,pk,type:varchar(255)"`
	NetworkID     string    `bun:"network_id,pk,type:varchar(100)"`
	Amount        int64     `bun:"amount,notnull"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp"`
}

// toGrantDao converts a Grant to GrantDao.
func toGrantDao(grant *Grant) *GrantDao {
	return &GrantDao{
		Address:   grant.Address,
		NetworkID: grant.NetworkID,
		Amount:    grant.Amount,
		CreatedAt: grant.CreatedAt,
	}
}

// toGrant converts a GrantDao to Grant.
func toGrant(dao *GrantDao) *Grant {
	return &Grant{
		Address:   dao.Address,
		NetworkID: dao.NetworkID,
		Amount:    dao.Amount,
		CreatedAt: dao.CreatedAt,
	}
}
