package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		profile_photo TEXT,
		is_creator BOOLEAN,
		fcm_token TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createWalletTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE wallets (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		balance INTEGER NOT NULL DEFAULT 0,
		total_spent INTEGER NOT NULL DEFAULT 0,
		total_received INTEGER NOT NULL DEFAULT 0,
		currency TEXT NOT NULL,
		status TEXT NOT NULL,
		last_transaction_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createLedgerTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE wallet_transactions (
		id TEXT PRIMARY KEY,
		wallet_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		direction TEXT NOT NULL,
		category TEXT NOT NULL,
		amount INTEGER NOT NULL,
		currency TEXT NOT NULL,
		description TEXT,
		balance_before INTEGER NOT NULL,
		balance_after INTEGER NOT NULL,
		content_id TEXT,
		content_type TEXT,
		transfer_id TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME
	);`)
}

func createTransferTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE wallet_transfers (
		id TEXT PRIMARY KEY,
		sender_id TEXT NOT NULL,
		receiver_id TEXT NOT NULL,
		sender_wallet_id TEXT NOT NULL,
		receiver_wallet_id TEXT NOT NULL,
		total_amount INTEGER NOT NULL,
		creator_amount INTEGER NOT NULL,
		platform_amount INTEGER NOT NULL,
		currency TEXT NOT NULL,
		transfer_type TEXT NOT NULL,
		content_id TEXT,
		content_type TEXT,
		description TEXT,
		sender_balance_before INTEGER NOT NULL,
		sender_balance_after INTEGER NOT NULL,
		receiver_balance_before INTEGER NOT NULL,
		receiver_balance_after INTEGER NOT NULL,
		platform_fee_percentage INTEGER NOT NULL,
		creator_share_percentage INTEGER NOT NULL,
		status TEXT NOT NULL,
		idempotency_key TEXT,
		transfer_note TEXT,
		created_at DATETIME,
		UNIQUE (sender_id, idempotency_key)
	);`)
}

func createUserAccessTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE user_access (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		content_id TEXT NOT NULL,
		content_type TEXT NOT NULL,
		access_type TEXT NOT NULL,
		payment_id TEXT,
		payment_amount INTEGER NOT NULL DEFAULT 0,
		granted_at DATETIME NOT NULL,
		expires_at DATETIME,
		UNIQUE (user_id, content_id, content_type)
	);`)
}

func createContentTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE videos (
		id TEXT PRIMARY KEY,
		created_by TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		type TEXT NOT NULL,
		price INTEGER NOT NULL DEFAULT 0,
		is_monetized BOOLEAN,
		visibility TEXT NOT NULL,
		hidden_reason TEXT,
		series_id TEXT,
		gifts INTEGER NOT NULL DEFAULT 0,
		views INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE series (
		id TEXT PRIMARY KEY,
		created_by TEXT NOT NULL,
		title TEXT NOT NULL,
		type TEXT NOT NULL,
		price INTEGER NOT NULL DEFAULT 0,
		total_episodes INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE comments (
		id TEXT PRIMARY KEY,
		video_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		content TEXT NOT NULL,
		is_monetized BOOLEAN,
		parent_comment_id TEXT,
		created_at DATETIME
	);`)
}
