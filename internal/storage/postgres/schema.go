package postgres

import (
	"context"
	"fmt"
)

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            name TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'customer',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS sessions (
            token TEXT PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            expires_at TIMESTAMPTZ NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            category TEXT NOT NULL,
            unit TEXT NOT NULL,
            price NUMERIC(12,2) NOT NULL,
            cost_price NUMERIC(12,2) NOT NULL,
            vatable BOOLEAN NOT NULL DEFAULT TRUE,
            active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS stock (
            product_id BIGINT PRIMARY KEY REFERENCES products(id),
            quantity NUMERIC(12,3) NOT NULL DEFAULT 0,
            reserved NUMERIC(12,3) NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS baskets (
            id SERIAL PRIMARY KEY,
            customer_id BIGINT UNIQUE NOT NULL REFERENCES users(id),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS basket_items (
            id SERIAL PRIMARY KEY,
            basket_id BIGINT NOT NULL REFERENCES baskets(id),
            product_id BIGINT NOT NULL REFERENCES products(id),
            name TEXT NOT NULL,
            unit_price NUMERIC(12,2) NOT NULL,
            quantity NUMERIC(12,3) NOT NULL,
            UNIQUE (basket_id, product_id)
        )`,
		`CREATE TABLE IF NOT EXISTS promo_codes (
            id SERIAL PRIMARY KEY,
            code TEXT UNIQUE NOT NULL,
            kind TEXT NOT NULL,
            value NUMERIC(12,2) NOT NULL,
            min_subtotal NUMERIC(12,2) NOT NULL DEFAULT 0,
            usage_limit INT NOT NULL DEFAULT 0,
            used_count INT NOT NULL DEFAULT 0,
            expires_at TIMESTAMPTZ,
            active BOOLEAN NOT NULL DEFAULT TRUE
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            number TEXT UNIQUE NOT NULL,
            customer_id BIGINT NOT NULL REFERENCES users(id),
            status TEXT NOT NULL,
            subtotal NUMERIC(12,2) NOT NULL,
            discount NUMERIC(12,2) NOT NULL DEFAULT 0,
            delivery_fee NUMERIC(12,2) NOT NULL DEFAULT 0,
            vat NUMERIC(12,2) NOT NULL DEFAULT 0,
            total NUMERIC(12,2) NOT NULL,
            promo_code TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            product_id BIGINT NOT NULL REFERENCES products(id),
            name TEXT NOT NULL,
            unit_price NUMERIC(12,2) NOT NULL,
            unit_cost NUMERIC(12,2) NOT NULL,
            quantity NUMERIC(12,3) NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS payments (
            id SERIAL PRIMARY KEY,
            order_id BIGINT UNIQUE NOT NULL REFERENCES orders(id),
            method TEXT NOT NULL,
            status TEXT NOT NULL,
            amount NUMERIC(12,2) NOT NULL,
            gateway_ref TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS deliveries (
            id SERIAL PRIMARY KEY,
            order_id BIGINT UNIQUE NOT NULL REFERENCES orders(id),
            driver_id BIGINT NOT NULL REFERENCES users(id),
            status TEXT NOT NULL,
            assigned_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS tracking_points (
            id SERIAL PRIMARY KEY,
            delivery_id BIGINT NOT NULL REFERENCES deliveries(id),
            latitude DOUBLE PRECISION NOT NULL,
            longitude DOUBLE PRECISION NOT NULL,
            recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS wallets (
            customer_id BIGINT PRIMARY KEY REFERENCES users(id),
            balance NUMERIC(12,2) NOT NULL DEFAULT 0,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS wallet_transactions (
            id SERIAL PRIMARY KEY,
            customer_id BIGINT NOT NULL REFERENCES users(id),
            kind TEXT NOT NULL,
            amount NUMERIC(12,2) NOT NULL,
            order_id BIGINT REFERENCES orders(id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS loyalty_accounts (
            customer_id BIGINT PRIMARY KEY REFERENCES users(id),
            points BIGINT NOT NULL DEFAULT 0,
            lifetime_points BIGINT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS finance_accounts (
            account TEXT PRIMARY KEY,
            balance NUMERIC(14,2) NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS finance_transactions (
            id SERIAL PRIMARY KEY,
            account TEXT NOT NULL REFERENCES finance_accounts(account),
            direction TEXT NOT NULL,
            amount NUMERIC(14,2) NOT NULL,
            order_id BIGINT REFERENCES orders(id),
            expense_id BIGINT,
            note TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS expenses (
            id SERIAL PRIMARY KEY,
            category TEXT NOT NULL,
            amount NUMERIC(14,2) NOT NULL,
            account TEXT NOT NULL REFERENCES finance_accounts(account),
            note TEXT NOT NULL DEFAULT '',
            spent_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS conversations (
            id SERIAL PRIMARY KEY,
            customer_id BIGINT NOT NULL REFERENCES users(id),
            status TEXT NOT NULL DEFAULT 'OPEN',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
            id SERIAL PRIMARY KEY,
            conversation_id BIGINT NOT NULL REFERENCES conversations(id),
            sender_id BIGINT NOT NULL REFERENCES users(id),
            sender_role TEXT NOT NULL,
            body TEXT NOT NULL,
            read BOOLEAN NOT NULL DEFAULT FALSE,
            sent_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS notifications (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            kind TEXT NOT NULL,
            title TEXT NOT NULL,
            body TEXT NOT NULL DEFAULT '',
            order_id BIGINT REFERENCES orders(id),
            read BOOLEAN NOT NULL DEFAULT FALSE,
            sent BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_expires ON sessions(expires_at)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_tracking_delivery ON tracking_points(delivery_id, recorded_at)`,
		`CREATE INDEX IF NOT EXISTS idx_wallet_tx_customer ON wallet_transactions(customer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_finance_tx_created ON finance_transactions(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_conversation ON chat_messages(conversation_id, sent_at)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_unsent ON notifications(sent, created_at) WHERE NOT sent`,
		`INSERT INTO finance_accounts (account) VALUES ('CASH'), ('BANK'), ('CARD'), ('COD_COLLECTIONS')
            ON CONFLICT (account) DO NOTHING`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}
