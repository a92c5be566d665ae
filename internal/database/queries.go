package database

const (
	// Order queries
	queryGetDriverOrder = `
		SELECT id, tenant_id, friendly_id, customer_id, driver_id, total_amount, status,
		       payment_method, amount_received, notes, trip_started_at, trip_completed_at, created_at
		FROM orders
		WHERE id = ? AND driver_id = ? AND tenant_id = ?`

	queryGetOrderItems = `
		SELECT id, order_id, tenant_id, product_name, quantity
		FROM order_items
		WHERE order_id = ? AND tenant_id = ?`

	queryListDriverOrders = `
		SELECT id, tenant_id, friendly_id, customer_id, driver_id, total_amount, status,
		       payment_method, amount_received, notes, trip_started_at, trip_completed_at, created_at
		FROM orders
		WHERE driver_id = ? AND tenant_id = ? AND status IN (%s)
		ORDER BY created_at`

	queryStartTrip = `
		UPDATE orders
		SET status = 'on_trip', trip_started_at = ?
		WHERE id IN (%s) AND driver_id = ? AND tenant_id = ? AND status = 'assigned'`

	// The status predicate is the settlement idempotency guard: a second
	// attempt for an already-delivered order matches zero rows.
	queryMarkOrderDelivered = `
		UPDATE orders
		SET status = 'delivered', amount_received = ?, payment_method = ?, notes = ?, trip_completed_at = ?
		WHERE id = ? AND tenant_id = ? AND status IN ('assigned', 'on_trip')`

	// Cylinder queries
	queryCountDriverStock = `
		SELECT COUNT(*)
		FROM cylinders
		WHERE current_holder_id = ? AND current_location_type = 'driver' AND status = ? AND tenant_id = ?`

	queryListDriverCylinders = `
		SELECT id, tenant_id, serial_number, size, status, current_location_type,
		       current_holder_id, last_order_id, created_at, updated_at
		FROM cylinders
		WHERE current_holder_id = ? AND current_location_type = 'driver' AND tenant_id = ?
		ORDER BY status DESC, serial_number`

	queryListDriverCylindersByStatus = `
		SELECT id, tenant_id, serial_number, size, status, current_location_type,
		       current_holder_id, last_order_id, created_at, updated_at
		FROM cylinders
		WHERE current_holder_id = ? AND current_location_type = 'driver' AND status = ? AND tenant_id = ?
		ORDER BY serial_number`

	queryMoveDeliveredByOrder = `
		UPDATE cylinders
		SET current_location_type = 'customer', current_holder_id = ?, status = 'at_customer', updated_at = ?
		WHERE last_order_id = ? AND tenant_id = ?`

	queryMoveDeliveredFallback = `
		UPDATE cylinders
		SET current_location_type = 'customer', current_holder_id = ?, status = 'at_customer',
		    last_order_id = ?, updated_at = ?
		WHERE tenant_id = ? AND id IN (
			SELECT id FROM cylinders
			WHERE current_holder_id = ? AND current_location_type = 'driver' AND status = 'full' AND tenant_id = ?
			LIMIT ?)`

	queryReturnBySerial = `
		UPDATE cylinders
		SET current_location_type = 'driver', current_holder_id = ?, status = 'empty', updated_at = ?
		WHERE serial_number IN (%s) AND current_location_type = 'customer' AND tenant_id = ?`

	queryReturnByCount = `
		UPDATE cylinders
		SET current_location_type = 'driver', current_holder_id = ?, status = 'empty', updated_at = ?
		WHERE tenant_id = ? AND id IN (
			SELECT id FROM cylinders
			WHERE current_holder_id = ? AND current_location_type = 'customer' AND tenant_id = ?
			LIMIT ?)`

	querySelectLockableCylinders = `
		SELECT id, serial_number, status
		FROM cylinders
		WHERE serial_number IN (%s)
		  AND current_holder_id = ? AND current_location_type = 'driver'
		  AND status IN ('full', 'empty') AND tenant_id = ?`

	queryLockCylinders = `
		UPDATE cylinders
		SET status = 'handover_pending', updated_at = ?
		WHERE id IN (%s) AND tenant_id = ?`

	queryUnlockCylinder = `
		UPDATE cylinders
		SET status = ?, updated_at = ?
		WHERE id = ? AND status = 'handover_pending' AND tenant_id = ?`

	queryListPendingCylinders = `
		SELECT id, tenant_id, serial_number, size, status, current_location_type,
		       current_holder_id, last_order_id, created_at, updated_at
		FROM cylinders
		WHERE status = 'handover_pending' AND tenant_id = ?
		ORDER BY serial_number`

	// Transaction queries
	queryInsertTransaction = `
		INSERT INTO transactions (
			id, tenant_id, order_id, customer_id, user_id, receiver_id, type, amount,
			payment_method, status, description, proof_url, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, tenant_id, order_id, customer_id, user_id, receiver_id, type, amount,
		          payment_method, status, description, proof_url, created_at, updated_at`

	queryGetTransaction = `
		SELECT id, tenant_id, order_id, customer_id, user_id, receiver_id, type, amount,
		       payment_method, status, description, proof_url, created_at, updated_at
		FROM transactions
		WHERE id = ? AND tenant_id = ?`

	queryUpdateTransactionStatus = `
		UPDATE transactions
		SET status = ?, updated_at = ?
		WHERE id = ? AND tenant_id = ? AND status = ?`

	queryInsertHandoverAsset = `
		INSERT INTO handover_assets (transaction_id, cylinder_id, previous_status)
		VALUES (?, ?, ?)`

	queryGetHandoverAssets = `
		SELECT h.cylinder_id, c.serial_number, h.previous_status
		FROM handover_assets h
		JOIN cylinders c ON c.id = h.cylinder_id
		WHERE h.transaction_id = ? AND c.tenant_id = ?`

	queryGetHandoverAssetIds = `
		SELECT cylinder_id
		FROM handover_assets
		WHERE transaction_id = ?`

	queryListPendingHandovers = `
		SELECT id, tenant_id, order_id, customer_id, user_id, receiver_id, type, amount,
		       payment_method, status, description, proof_url, created_at, updated_at
		FROM transactions
		WHERE type = 'handover_request' AND status = 'pending' AND tenant_id = ?
		ORDER BY created_at DESC`

	queryListPendingPayments = `
		SELECT id, tenant_id, order_id, customer_id, user_id, receiver_id, type, amount,
		       payment_method, status, description, proof_url, created_at, updated_at
		FROM transactions
		WHERE type = 'payment' AND status = 'pending_verification' AND tenant_id = ?
		ORDER BY created_at DESC`

	queryListCustomerTransactions = `
		SELECT id, tenant_id, order_id, customer_id, user_id, receiver_id, type, amount,
		       payment_method, status, description, proof_url, created_at, updated_at
		FROM transactions
		WHERE customer_id = ? AND tenant_id = ?
		ORDER BY created_at`

	// Customer queries
	queryGetCustomer = `
		SELECT id, tenant_id, name, phone, address, current_balance, is_active, created_at
		FROM customers
		WHERE id = ? AND tenant_id = ?`

	// Balances are stored as decimal text; arithmetic happens in Go and the
	// result is written under an optimistic version guard. SQLite would sum
	// them as binary floats otherwise.
	queryGetCustomerBalance = `
		SELECT current_balance, version
		FROM customers
		WHERE id = ? AND tenant_id = ?`

	queryUpdateCustomerBalance = `
		UPDATE customers
		SET current_balance = ?, version = version + 1
		WHERE id = ? AND tenant_id = ? AND version = ?`

	queryListOutstandingBalances = `
		SELECT id, tenant_id, name, phone, address, current_balance, is_active, created_at
		FROM customers
		WHERE tenant_id = ? AND CAST(current_balance AS REAL) > 0
		ORDER BY CAST(current_balance AS REAL) DESC`

	// Wallet queries
	queryGetWalletBalance = `
		SELECT balance
		FROM employee_wallets
		WHERE user_id = ? AND tenant_id = ?`

	queryGetWalletForUpdate = `
		SELECT balance, version
		FROM employee_wallets
		WHERE user_id = ? AND tenant_id = ?`

	queryInsertWallet = `
		INSERT OR IGNORE INTO employee_wallets (user_id, tenant_id, balance, updated_at)
		VALUES (?, ?, ?, ?)`

	queryUpdateWalletBalance = `
		UPDATE employee_wallets
		SET balance = ?, version = version + 1, updated_at = ?
		WHERE user_id = ? AND tenant_id = ? AND version = ?`

	// Company ledger queries
	queryInsertLedgerEntry = `
		INSERT INTO company_ledger (id, tenant_id, amount, transaction_type, category, description, admin_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	queryListLedgerAmounts = `
		SELECT amount
		FROM company_ledger
		WHERE tenant_id = ?`

	// User queries
	queryListReceivers = `
		SELECT id, tenant_id, name, email, role, created_at
		FROM users
		WHERE role IN ('admin', 'manager', 'cashier') AND tenant_id = ?
		ORDER BY name`

	queryCountUsersByRole = `
		SELECT COUNT(*)
		FROM users
		WHERE role = ? AND tenant_id = ?`

	// Handover approval (single atomic unit)
	queryGetHandoverForApproval = `
		SELECT id, user_id, receiver_id, amount, status
		FROM transactions
		WHERE id = ? AND tenant_id = ? AND type = 'handover_request'`

	queryApproveHandoverTxn = `
		UPDATE transactions
		SET status = 'approved', updated_at = ?
		WHERE id = ? AND tenant_id = ? AND status = 'pending'`

	queryReceiveHandoverCylinder = `
		UPDATE cylinders
		SET status = 'empty', current_location_type = 'warehouse', current_holder_id = '', updated_at = ?
		WHERE id = ? AND status = 'handover_pending' AND tenant_id = ?`

	queryListDriverPendingIds = `
		SELECT id FROM cylinders
		WHERE current_holder_id = ? AND status = 'handover_pending' AND tenant_id = ?`
)
