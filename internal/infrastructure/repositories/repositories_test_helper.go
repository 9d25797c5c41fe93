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

func createMerchantTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE merchants (
		id TEXT PRIMARY KEY,
		owner_user_id TEXT NOT NULL,
		parent_id TEXT,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		name TEXT NOT NULL,
		contact_email TEXT NOT NULL,
		description TEXT,
		address TEXT,
		business_type_id TEXT,
		can_sell_products BOOLEAN NOT NULL DEFAULT 0,
		can_take_bookings BOOLEAN NOT NULL DEFAULT 0,
		can_rent_units BOOLEAN NOT NULL DEFAULT 0,
		email_verified_at DATETIME,
		status_reason TEXT,
		submitted_at DATETIME,
		approved_at DATETIME,
		rejected_at DATETIME,
		suspended_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE merchant_status_logs (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		from_status TEXT,
		to_status TEXT NOT NULL,
		reason TEXT,
		changed_by TEXT,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE merchant_documents (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		type TEXT NOT NULL,
		file_url TEXT NOT NULL,
		created_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE merchant_payment_methods (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		method TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		name TEXT,
		role TEXT NOT NULL,
		password_hash TEXT,
		is_email_verified BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createServiceTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE services (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		name TEXT NOT NULL,
		is_bookable BOOLEAN NOT NULL DEFAULT 0,
		is_sellable BOOLEAN NOT NULL DEFAULT 0,
		is_reservable BOOLEAN NOT NULL DEFAULT 0,
		duration_minutes INTEGER NOT NULL DEFAULT 0,
		max_capacity INTEGER,
		price TEXT NOT NULL DEFAULT '0',
		price_per_night TEXT,
		unit_label TEXT,
		unit_status TEXT DEFAULT 'available',
		requires_confirmation BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE service_schedules (
		id TEXT PRIMARY KEY,
		service_id TEXT NOT NULL,
		day_of_week INTEGER NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		is_available BOOLEAN NOT NULL DEFAULT 1
	);`)
}

func createBookingTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE bookings (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		service_id TEXT NOT NULL,
		customer_id TEXT NOT NULL,
		booking_date DATETIME NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		party_size INTEGER NOT NULL DEFAULT 1,
		status TEXT NOT NULL,
		service_price TEXT NOT NULL,
		fee_rate TEXT NOT NULL DEFAULT '0',
		fee_amount TEXT NOT NULL DEFAULT '0',
		total_amount TEXT NOT NULL,
		confirmed_at DATETIME,
		cancelled_at DATETIME,
		completed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createReservationTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE reservations (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		service_id TEXT NOT NULL,
		customer_id TEXT NOT NULL,
		check_in DATETIME NOT NULL,
		check_out DATETIME NOT NULL,
		nights INTEGER NOT NULL,
		guest_count INTEGER NOT NULL DEFAULT 1,
		price_per_night TEXT NOT NULL,
		total_price TEXT NOT NULL,
		fee_rate TEXT NOT NULL DEFAULT '0',
		fee_amount TEXT NOT NULL DEFAULT '0',
		total_amount TEXT NOT NULL,
		status TEXT NOT NULL,
		confirmed_at DATETIME,
		cancelled_at DATETIME,
		checked_in_at DATETIME,
		checked_out_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createServiceOrderTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE service_orders (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		service_id TEXT NOT NULL,
		customer_id TEXT NOT NULL,
		order_number TEXT NOT NULL UNIQUE,
		quantity TEXT NOT NULL,
		unit_label TEXT,
		unit_price TEXT NOT NULL,
		total_price TEXT NOT NULL,
		fee_rate TEXT NOT NULL DEFAULT '0',
		fee_amount TEXT NOT NULL DEFAULT '0',
		total_amount TEXT NOT NULL,
		status TEXT NOT NULL,
		received_at DATETIME,
		completed_at DATETIME,
		cancelled_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createNotificationOutboxTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE notification_outbox (
		id TEXT PRIMARY KEY,
		event TEXT NOT NULL,
		merchant_id TEXT NOT NULL,
		user_id TEXT,
		from_status TEXT,
		to_status TEXT NOT NULL,
		reason TEXT,
		created_at DATETIME,
		dispatched_at DATETIME
	);`)
}

func createPlatformFeeTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE platform_fees (
		id TEXT PRIMARY KEY,
		transaction_type TEXT NOT NULL,
		rate_percentage TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
