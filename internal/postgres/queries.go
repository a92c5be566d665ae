package postgres

const (
	// Order queries
	queryGetDriverOrder = `
		SELECT id, tenant_id, friendly_id, customer_id, driver_id, total_amount::text, status,
		       payment_method, amount_received::text, notes, trip_started_at, trip_completed_at, created_at
		FROM orders
		WHERE id = $1 AND driver_id = $2 AND tenant_id = $3`

	queryGetOrderItems = `
		SELECT id, order_id, tenant_id, product_name, quantity
		FROM order_items
		WHERE order_id = $1 AND tenant_id = $2`

	queryListDriverOrders = `
		SELECT id, tenant_id, friendly_id, customer_id, driver_id, total_amount::text, status,
		       payment_method, amount_received::text, notes, trip_started_at, trip_completed_at, created_at
		FROM orders
		WHERE driver_id = $1 AND tenant_id = $2 AND status = ANY($3)
		ORDER BY created_at`

	queryStartTrip = `
		UPDATE orders
		SET status = 'on_trip', trip_started_at = $1
		WHERE id = ANY($2) AND driver_id = $3 AND tenant_id = $4 AND status = 'assigned'`

	// The status predicate is the settlement idempotency guard: a second
	// attempt for an already-delivered order matches zero rows.
	queryMarkOrderDelivered = `
		UPDATE orders
		SET status = 'delivered', amount_received = $1::numeric, payment_method = $2, notes = $3, trip_completed_at = $4
		WHERE id = $5 AND tenant_id = $6 AND status IN ('assigned', 'on_trip')`

	// Cylinder queries
	queryCountDriverStock = `
		SELECT COUNT(*)
		FROM cylinders
		WHERE current_holder_id = $1 AND current_location_type = 'driver' AND status = $2 AND tenant_id = $3`

	queryListDriverCylinders = `
		SELECT id, tenant_id, serial_number, size, status, current_location_type,
		       current_holder_id, last_order_id, created_at, updated_at
		FROM cylinders
		WHERE current_holder_id = $1 AND current_location_type = 'driver' AND tenant_id = $2
		ORDER BY status DESC, serial_number`

	queryListDriverCylindersByStatus = `
		SELECT id, tenant_id, serial_number, size, status, current_location_type,
		       current_holder_id, last_order_id, created_at, updated_at
		FROM cylinders
		WHERE current_holder_id = $1 AND current_location_type = 'driver' AND status = $2 AND tenant_id = $3
		ORDER BY serial_number`

	queryMoveDeliveredByOrder = `
		UPDATE cylinders
		SET current_location_type = 'customer', current_holder_id = $1, status = 'at_customer', updated_at = $2
		WHERE last_order_id = $3 AND tenant_id = $4`

	queryMoveDeliveredFallback = `
		UPDATE cylinders
		SET current_location_type = 'customer', current_holder_id = $1, status = 'at_customer',
		    last_order_id = $2, updated_at = $3
		WHERE tenant_id = $4 AND id IN (
			SELECT id FROM cylinders
			WHERE current_holder_id = $5 AND current_location_type = 'driver' AND status = 'full' AND tenant_id = $4
			LIMIT $6)`

	queryReturnBySerial = `
		UPDATE cylinders
		SET current_location_type = 'driver', current_holder_id = $1, status = 'empty', updated_at = $2
		WHERE serial_number = ANY($3) AND current_location_type = 'customer' AND tenant_id = $4`

	queryReturnByCount = `
		UPDATE cylinders
		SET current_location_type = 'driver', current_holder_id = $1, status = 'empty', updated_at = $2
		WHERE tenant_id = $3 AND id IN (
			SELECT id FROM cylinders
			WHERE current_holder_id = $4 AND current_location_type = 'customer' AND tenant_id = $3
			LIMIT $5)`

	// FOR UPDATE holds the matched rows until the surrounding transaction
	// commits, so two concurrent lock attempts serialize on the same assets.
	querySelectLockableCylinders = `
		SELECT id, serial_number, status
		FROM cylinders
		WHERE serial_number = ANY($1)
		  AND current_holder_id = $2 AND current_location_type = 'driver'
		  AND status IN ('full', 'empty') AND tenant_id = $3
		FOR UPDATE`

	queryLockCylinders = `
		UPDATE cylinders
		SET status = 'handover_pending', updated_at = $1
		WHERE id = ANY($2) AND tenant_id = $3`

	queryUnlockCylinder = `
		UPDATE cylinders
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = 'handover_pending' AND tenant_id = $4`

	queryListPendingCylinders = `
		SELECT id, tenant_id, serial_number, size, status, current_location_type,
		       current_holder_id, last_order_id, created_at, updated_at
		FROM cylinders
		WHERE status = 'handover_pending' AND tenant_id = $1
		ORDER BY serial_number`

	// Transaction queries
	queryInsertTransaction = `
		INSERT INTO transactions (
			id, tenant_id, order_id, customer_id, user_id, receiver_id, type, amount,
			payment_method, status, description, proof_url, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8::numeric, $9, $10, $11, $12, $13, $14)
		RETURNING id, tenant_id, order_id, customer_id, user_id, receiver_id, type, amount::text,
		          payment_method, status, description, proof_url, created_at, updated_at`

	queryGetTransaction = `
		SELECT id, tenant_id, order_id, customer_id, user_id, receiver_id, type, amount::text,
		       payment_method, status, description, proof_url, created_at, updated_at
		FROM transactions
		WHERE id = $1 AND tenant_id = $2`

	queryUpdateTransactionStatus = `
		UPDATE transactions
		SET status = $1, updated_at = $2
		WHERE id = $3 AND tenant_id = $4 AND status = $5`

	queryInsertHandoverAsset = `
		INSERT INTO handover_assets (transaction_id, cylinder_id, previous_status)
		VALUES ($1, $2, $3)`

	queryGetHandoverAssets = `
		SELECT h.cylinder_id, c.serial_number, h.previous_status
		FROM handover_assets h
		JOIN cylinders c ON c.id = h.cylinder_id
		WHERE h.transaction_id = $1 AND c.tenant_id = $2`

	queryListPendingHandovers = `
		SELECT id, tenant_id, order_id, customer_id, user_id, receiver_id, type, amount::text,
		       payment_method, status, description, proof_url, created_at, updated_at
		FROM transactions
		WHERE type = 'handover_request' AND status = 'pending' AND tenant_id = $1
		ORDER BY created_at DESC`

	queryListPendingPayments = `
		SELECT id, tenant_id, order_id, customer_id, user_id, receiver_id, type, amount::text,
		       payment_method, status, description, proof_url, created_at, updated_at
		FROM transactions
		WHERE type = 'payment' AND status = 'pending_verification' AND tenant_id = $1
		ORDER BY created_at DESC`

	queryListCustomerTransactions = `
		SELECT id, tenant_id, order_id, customer_id, user_id, receiver_id, type, amount::text,
		       payment_method, status, description, proof_url, created_at, updated_at
		FROM transactions
		WHERE customer_id = $1 AND tenant_id = $2
		ORDER BY created_at`

	// Customer queries
	queryGetCustomer = `
		SELECT id, tenant_id, name, phone, address, current_balance::text, is_active, created_at
		FROM customers
		WHERE id = $1 AND tenant_id = $2`

	queryAdjustCustomerBalance = `
		UPDATE customers
		SET current_balance = current_balance + $1::numeric
		WHERE id = $2 AND tenant_id = $3`

	queryListOutstandingBalances = `
		SELECT id, tenant_id, name, phone, address, current_balance::text, is_active, created_at
		FROM customers
		WHERE tenant_id = $1 AND current_balance > 0
		ORDER BY current_balance DESC`

	// Wallet queries
	queryGetWalletBalance = `
		SELECT balance::text
		FROM employee_wallets
		WHERE user_id = $1 AND tenant_id = $2`

	queryAdjustWalletBalance = `
		INSERT INTO employee_wallets (user_id, tenant_id, balance, updated_at)
		VALUES ($1, $2, $3::numeric, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			balance = employee_wallets.balance + excluded.balance,
			updated_at = excluded.updated_at`

	// Company ledger queries
	queryInsertLedgerEntry = `
		INSERT INTO company_ledger (id, tenant_id, amount, transaction_type, category, description, admin_id, created_at)
		VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8)`

	queryCompanyCashTotal = `
		SELECT COALESCE(SUM(amount), 0)::text
		FROM company_ledger
		WHERE tenant_id = $1`

	// User queries
	queryListReceivers = `
		SELECT id, tenant_id, name, email, role, created_at
		FROM users
		WHERE role IN ('admin', 'manager', 'cashier') AND tenant_id = $1
		ORDER BY name`

	queryCountUsersByRole = `
		SELECT COUNT(*)
		FROM users
		WHERE role = $1 AND tenant_id = $2`

	// Handover approval is delegated to the database function so the whole
	// unit commits or rolls back server-side.
	queryApproveDriverHandover = `SELECT approve_driver_handover($1, $2, $3)`
)
