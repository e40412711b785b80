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
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
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
		email TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createAPIKeyTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE api_keys (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		key_prefix TEXT NOT NULL,
		key_hash TEXT NOT NULL UNIQUE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		last_used_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createTransactionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		transaction_ref TEXT,
		amount REAL NOT NULL,
		currency TEXT NOT NULL DEFAULT 'USD',
		user_email TEXT,
		user_ip TEXT,
		user_country TEXT,
		device_fingerprint TEXT,
		payment_method TEXT,
		merchant_category TEXT,
		fraud_score REAL NOT NULL,
		risk_level TEXT NOT NULL,
		prediction TEXT NOT NULL,
		shap_values TEXT,
		model_version TEXT NOT NULL,
		processing_time_ms INTEGER NOT NULL,
		created_at DATETIME
	);`)
}

func createUsageRecordTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE usage_records (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		api_key_id TEXT NOT NULL,
		period_start DATETIME NOT NULL,
		period_end DATETIME NOT NULL,
		request_count INTEGER NOT NULL DEFAULT 0,
		transaction_count INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME,
		UNIQUE (user_id, api_key_id, period_start)
	);`)
}
