package postgres

// schemaStatements mirrors the embedded backend's schema on Postgres types,
// plus the approval function. Statements are applied one by one so a failure
// names the statement that broke.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS tenants (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		tenant_id  TEXT NOT NULL REFERENCES tenants(id),
		name       TEXT NOT NULL,
		email      TEXT NOT NULL DEFAULT '',
		role       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS customers (
		id              TEXT PRIMARY KEY,
		tenant_id       TEXT NOT NULL REFERENCES tenants(id),
		name            TEXT NOT NULL,
		phone           TEXT NOT NULL DEFAULT '',
		address         TEXT NOT NULL DEFAULT '',
		current_balance NUMERIC NOT NULL DEFAULT 0,
		is_active       BOOLEAN NOT NULL DEFAULT TRUE,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS cylinders (
		id                    TEXT PRIMARY KEY,
		tenant_id             TEXT NOT NULL REFERENCES tenants(id),
		serial_number         TEXT NOT NULL,
		size                  TEXT NOT NULL,
		status                TEXT NOT NULL,
		current_location_type TEXT NOT NULL,
		current_holder_id     TEXT NOT NULL DEFAULT '',
		last_order_id         TEXT NOT NULL DEFAULT '',
		created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (tenant_id, serial_number)
	)`,

	`CREATE TABLE IF NOT EXISTS orders (
		id                TEXT PRIMARY KEY,
		tenant_id         TEXT NOT NULL REFERENCES tenants(id),
		friendly_id       TEXT NOT NULL,
		customer_id       TEXT NOT NULL,
		driver_id         TEXT NOT NULL,
		total_amount      NUMERIC NOT NULL DEFAULT 0,
		status            TEXT NOT NULL,
		payment_method    TEXT NOT NULL DEFAULT '',
		amount_received   NUMERIC NOT NULL DEFAULT 0,
		notes             TEXT NOT NULL DEFAULT '',
		trip_started_at   TIMESTAMPTZ,
		trip_completed_at TIMESTAMPTZ,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS order_items (
		id           TEXT PRIMARY KEY,
		order_id     TEXT NOT NULL REFERENCES orders(id),
		tenant_id    TEXT NOT NULL REFERENCES tenants(id),
		product_name TEXT NOT NULL,
		quantity     INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS transactions (
		id             TEXT PRIMARY KEY,
		tenant_id      TEXT NOT NULL REFERENCES tenants(id),
		order_id       TEXT NOT NULL DEFAULT '',
		customer_id    TEXT NOT NULL DEFAULT '',
		user_id        TEXT NOT NULL DEFAULT '',
		receiver_id    TEXT NOT NULL DEFAULT '',
		type           TEXT NOT NULL,
		amount         NUMERIC NOT NULL,
		payment_method TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		proof_url      TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS handover_assets (
		transaction_id  TEXT NOT NULL REFERENCES transactions(id),
		cylinder_id     TEXT NOT NULL REFERENCES cylinders(id),
		previous_status TEXT NOT NULL,
		PRIMARY KEY (transaction_id, cylinder_id)
	)`,

	`CREATE TABLE IF NOT EXISTS employee_wallets (
		user_id    TEXT PRIMARY KEY,
		tenant_id  TEXT NOT NULL REFERENCES tenants(id),
		balance    NUMERIC NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS company_ledger (
		id               TEXT PRIMARY KEY,
		tenant_id        TEXT NOT NULL REFERENCES tenants(id),
		amount           NUMERIC NOT NULL,
		transaction_type TEXT NOT NULL,
		category         TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		admin_id         TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_cylinders_holder ON cylinders (tenant_id, current_holder_id, current_location_type, status)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_driver ON orders (tenant_id, driver_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_status ON transactions (tenant_id, type, status)`,

	// The one multi-statement unit in the core. Running it server-side keeps
	// the wallet debit, cylinder receipts and cash-book credit in a single
	// transaction even when the caller's connection drops mid-flight.
	`CREATE OR REPLACE FUNCTION approve_driver_handover(p_transaction_id TEXT, p_tenant_id TEXT, p_admin_id TEXT)
	RETURNS JSONB
	LANGUAGE plpgsql
	AS $$
	DECLARE
		v_driver_id TEXT;
		v_amount    NUMERIC;
		v_status    TEXT;
		v_received  INTEGER := 0;
		v_debited   INTEGER;
	BEGIN
		SELECT user_id, amount, status INTO v_driver_id, v_amount, v_status
		FROM transactions
		WHERE id = p_transaction_id AND tenant_id = p_tenant_id AND type = 'handover_request'
		FOR UPDATE;

		IF NOT FOUND THEN
			RETURN jsonb_build_object('success', false, 'message', 'Handover request not found');
		END IF;
		IF v_status <> 'pending' THEN
			RETURN jsonb_build_object('success', false, 'message', 'Handover request already processed');
		END IF;

		UPDATE transactions
		SET status = 'approved', updated_at = now()
		WHERE id = p_transaction_id;

		WITH assets AS (
			SELECT cylinder_id FROM handover_assets WHERE transaction_id = p_transaction_id
		), fallback AS (
			SELECT id AS cylinder_id FROM cylinders
			WHERE current_holder_id = v_driver_id AND status = 'handover_pending' AND tenant_id = p_tenant_id
			  AND NOT EXISTS (SELECT 1 FROM assets)
		), received AS (
			UPDATE cylinders
			SET status = 'empty', current_location_type = 'warehouse', current_holder_id = '', updated_at = now()
			WHERE status = 'handover_pending' AND tenant_id = p_tenant_id
			  AND id IN (SELECT cylinder_id FROM assets UNION ALL SELECT cylinder_id FROM fallback)
			RETURNING 1
		)
		SELECT COUNT(*) INTO v_received FROM received;

		IF v_amount > 0 THEN
			UPDATE employee_wallets
			SET balance = balance - v_amount, updated_at = now()
			WHERE user_id = v_driver_id AND tenant_id = p_tenant_id AND balance >= v_amount;
			GET DIAGNOSTICS v_debited = ROW_COUNT;
			IF v_debited = 0 THEN
				RAISE EXCEPTION 'wallet balance below handover amount'
					USING ERRCODE = 'check_violation';
			END IF;

			INSERT INTO company_ledger (id, tenant_id, amount, transaction_type, category, description, admin_id, created_at)
			VALUES (gen_random_uuid()::text, p_tenant_id, v_amount, 'credit', 'driver_handover',
				'Driver handover approved (Txn #' || left(p_transaction_id, 8) || ')', p_admin_id, now());
		END IF;

		RETURN jsonb_build_object('success', true,
			'message', format('Handover approved: %s cylinders received, Rs %s deposited', v_received, v_amount));
	END;
	$$`,
}
