package tables

import (
	"time"

	"github.com/google/uuid"
)

// Settings is a singleton row holding admin credentials and the bank
// account shown to customers at checkout. When the row is absent, the
// service layer falls back to compiled defaults.
type Settings struct {
	tableName         struct{}  `bun:"table:settings,alias:s"`
	ID                uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	AdminID           string    `bun:"admin_id,notnull" json:"adminId"`
	AdminPasswordHash string    `bun:"admin_password_hash,notnull" json:"-"`
	BankName          string    `bun:"bank_name" json:"bankName,omitempty"`
	BankAccount       string    `bun:"bank_account" json:"bankAccount,omitempty"`
	BankHolder        string    `bun:"bank_holder" json:"bankHolder,omitempty"`
	UpdatedAt         time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}
