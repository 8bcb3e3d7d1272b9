package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrations creates the catalog tables when they are missing
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	// Check if table exists
	var exists bool
	err := pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = 'CATALOG_REFERENCE'
		)
	`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if CATALOG_REFERENCE table exists: %w", err)
	}

	if exists {
		return nil
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS "CATALOG_REFERENCE" (
			"Ref" VARCHAR(64) PRIMARY KEY,
			"Family" VARCHAR(64),
			"Type" VARCHAR(64),
			"Brand" VARCHAR(128),
			"Model" VARCHAR(128),
			"Priority" INTEGER NOT NULL DEFAULT 0,
			"Tags" TEXT[] NOT NULL DEFAULT '{}',
			"Notes" TEXT,
			"Active" BOOLEAN NOT NULL DEFAULT TRUE,
			"CreatedAt" TIMESTAMP NOT NULL DEFAULT NOW(),
			"UpdatedAt" TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create CATALOG_REFERENCE table: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS "CATALOG_VARIANT" (
			"ID" SERIAL PRIMARY KEY,
			"Ref" VARCHAR(64) NOT NULL,
			"Variant" VARCHAR(64) NOT NULL,
			CONSTRAINT "fk_variant_reference"
				FOREIGN KEY ("Ref")
				REFERENCES "CATALOG_REFERENCE"("Ref")
				ON DELETE CASCADE
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create CATALOG_VARIANT table: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS "idx_variant_ref"
		ON "CATALOG_VARIANT"("Ref")
	`)
	if err != nil {
		return fmt.Errorf("failed to create idx_variant_ref: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS "idx_reference_brand"
		ON "CATALOG_REFERENCE"(UPPER("Brand"))
	`)
	if err != nil {
		return fmt.Errorf("failed to create idx_reference_brand: %w", err)
	}

	return nil
}
