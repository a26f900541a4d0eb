package tables

import (
	"time"

	"github.com/google/uuid"
)

// VerificationCode is a 6-digit email ownership check used before
// checkout and order lookup. Codes are single-use and expire.
type VerificationCode struct {
	tableName struct{}  `bun:"table:verification_codes,alias:vc"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Email     string    `bun:"email,notnull"`
	Code      string    `bun:"code,notnull"`
	ExpiresAt time.Time `bun:"expires_at,notnull"`
	Used      bool      `bun:"used,notnull,default:false"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
