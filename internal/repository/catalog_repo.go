package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"scankey-catalog/internal/catalog"
	"scankey-catalog/internal/model"
)

// CatalogRepo serves catalog references stored in Postgres.
// It is a catalog.Source.
type CatalogRepo struct {
	db *pgxpool.Pool
}

func NewCatalogRepo(db *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) Name() string { return "postgres" }

// Fetch reads every active reference with its attributes and variants
func (r *CatalogRepo) Fetch(ctx context.Context) (catalog.Fragment, error) {
	refs, err := r.ListReferences(ctx)
	if err != nil {
		return catalog.Fragment{}, err
	}

	variants, err := r.ListVariants(ctx)
	if err != nil {
		return catalog.Fragment{}, err
	}

	frag := catalog.Fragment{
		Canonicals: make([]string, 0, len(refs)),
		Rich:       refs,
		Variants:   variants,
	}
	for ref := range refs {
		frag.Canonicals = append(frag.Canonicals, ref)
	}
	return frag, nil
}

// ListReferences returns active references keyed by ref
func (r *CatalogRepo) ListReferences(ctx context.Context) (map[string]model.RichData, error) {
	query := `
		SELECT
			UPPER("Ref"),
			COALESCE("Family", ''),
			COALESCE("Type", ''),
			COALESCE("Brand", ''),
			COALESCE("Model", ''),
			"Priority",
			"Tags",
			COALESCE("Notes", '')
		FROM "CATALOG_REFERENCE"
		WHERE "Active" = TRUE
		ORDER BY "Ref"
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog references: %w", err)
	}
	defer rows.Close()

	refs := make(map[string]model.RichData)
	for rows.Next() {
		var rd model.RichData
		if err := rows.Scan(&rd.Ref, &rd.Family, &rd.Type, &rd.Brand, &rd.Model, &rd.Priority, &rd.Tags, &rd.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan catalog reference: %w", err)
		}
		refs[rd.Ref] = rd
	}

	return refs, rows.Err()
}

// ListVariants returns the textual variants of active references
func (r *CatalogRepo) ListVariants(ctx context.Context) (map[string][]string, error) {
	query := `
		SELECT UPPER(v."Ref"), UPPER(v."Variant")
		FROM "CATALOG_VARIANT" v
		JOIN "CATALOG_REFERENCE" r ON r."Ref" = v."Ref"
		WHERE r."Active" = TRUE
		ORDER BY v."Ref", v."ID"
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog variants: %w", err)
	}
	defer rows.Close()

	variants := make(map[string][]string)
	for rows.Next() {
		var ref, variant string
		if err := rows.Scan(&ref, &variant); err != nil {
			return nil, fmt.Errorf("failed to scan catalog variant: %w", err)
		}
		variants[ref] = append(variants[ref], variant)
	}

	return variants, rows.Err()
}

// Upsert writes references and replaces their variants in one transaction
func (r *CatalogRepo) Upsert(ctx context.Context, refs map[string]model.RichData, variants map[string][]string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	keys := make([]string, 0, len(refs))
	for k := range refs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	batch := &pgx.Batch{}
	for _, ref := range keys {
		rd := refs[ref]
		tags := rd.Tags
		if tags == nil {
			tags = []string{}
		}
		batch.Queue(`
			INSERT INTO "CATALOG_REFERENCE"
				("Ref", "Family", "Type", "Brand", "Model", "Priority", "Tags", "Notes", "Active")
			VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, $7, NULLIF($8, ''), TRUE)
			ON CONFLICT ("Ref") DO UPDATE SET
				"Family" = EXCLUDED."Family",
				"Type" = EXCLUDED."Type",
				"Brand" = EXCLUDED."Brand",
				"Model" = EXCLUDED."Model",
				"Priority" = EXCLUDED."Priority",
				"Tags" = EXCLUDED."Tags",
				"Notes" = EXCLUDED."Notes",
				"Active" = TRUE,
				"UpdatedAt" = NOW()
		`, ref, rd.Family, rd.Type, rd.Brand, rd.Model, rd.Priority, tags, rd.Notes)

		vs, ok := variants[ref]
		if !ok {
			continue
		}
		batch.Queue(`DELETE FROM "CATALOG_VARIANT" WHERE "Ref" = $1`, ref)
		for _, v := range vs {
			batch.Queue(`INSERT INTO "CATALOG_VARIANT" ("Ref", "Variant") VALUES ($1, $2)`, ref, v)
		}
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to upsert catalog references: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit catalog references: %w", err)
	}
	return nil
}
