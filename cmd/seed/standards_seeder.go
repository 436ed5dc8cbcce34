package main

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/EmpoweredVote/rental-search/internal/standards"
)

type regionRow struct {
	Key           string
	Name          string
	Authority     string
	EffectiveDate string
	Scheme        string
}

type standardRow struct {
	Region  string
	Zip     string
	Tier    string
	Amounts standards.Amounts
}

type townZipRow struct {
	Region   string
	Town     string
	Zip      string
	Position int
}

type plan struct {
	Regions   []regionRow
	Standards []standardRow
	TownZips  []townZipRow
	Issues    []standards.Issue
}

type Counts struct {
	Regions   int64
	Standards int64
	TownZips  int64
}

// buildPlan flattens the registry into rows. ZIPs without a standard are
// skipped; they already appear in Issues.
func buildPlan(reg *standards.Registry) plan {
	var p plan
	for _, r := range reg.Regions() {
		p.Regions = append(p.Regions, regionRow{
			Key:           r.Key,
			Name:          r.Name,
			Authority:     r.Authority,
			EffectiveDate: r.EffectiveDate.Format(standards.DateLayout),
			Scheme:        string(r.Scheme),
		})

		for _, z := range r.ZipCodes() {
			amounts, err := r.AmountsFor(z)
			if err != nil {
				continue
			}
			tier, _ := r.Tier(z)
			p.Standards = append(p.Standards, standardRow{Region: r.Key, Zip: z, Tier: tier, Amounts: amounts})
		}

		towns := r.TownZips()
		names := make([]string, 0, len(towns))
		for name := range towns {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			for i, z := range towns[name] {
				p.TownZips = append(p.TownZips, townZipRow{Region: r.Key, Town: name, Zip: z, Position: i})
			}
		}
	}
	p.Issues = reg.Issues()
	return p
}

func printPlan(p plan) {
	fmt.Println("Plan preview:")
	fmt.Printf("  Regions to insert: %d\n", len(p.Regions))
	fmt.Printf("  Payment standards to insert: %d\n", len(p.Standards))
	fmt.Printf("  Town/ZIP rows to insert: %d\n", len(p.TownZips))
	fmt.Printf("  Data issues: %d\n", len(p.Issues))
	for _, is := range p.Issues {
		fmt.Printf("    - %s\n", is)
	}
	fmt.Println("  Tables affected (destructive): standards.town_zips, standards.payment_standards, standards.regions")
}

func ensureTables(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`CREATE SCHEMA IF NOT EXISTS standards`,
		`CREATE TABLE IF NOT EXISTS standards.regions (
			key            text PRIMARY KEY,
			name           text NOT NULL,
			authority      text NOT NULL DEFAULT '',
			effective_date date NOT NULL,
			scheme         text NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS standards.payment_standards (
			region  text NOT NULL REFERENCES standards.regions(key),
			zip     char(5) NOT NULL,
			tier    text NOT NULL DEFAULT '',
			studio  integer NOT NULL,
			br1     integer NOT NULL,
			br2     integer NOT NULL,
			br3     integer NOT NULL,
			br4     integer NOT NULL,
			PRIMARY KEY (region, zip)
		)`,
		`CREATE TABLE IF NOT EXISTS standards.town_zips (
			region   text NOT NULL REFERENCES standards.regions(key),
			town     text NOT NULL,
			zip      char(5) NOT NULL,
			position integer NOT NULL,
			PRIMARY KEY (region, town, zip)
		)`,
	}
	for _, q := range stmts {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func countAll(ctx context.Context, tx *sql.Tx) (Counts, error) {
	var c Counts
	if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM standards.regions`).Scan(&c.Regions); err != nil {
		return c, err
	}
	if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM standards.payment_standards`).Scan(&c.Standards); err != nil {
		return c, err
	}
	if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM standards.town_zips`).Scan(&c.TownZips); err != nil {
		return c, err
	}
	return c, nil
}

func wipeStandards(ctx context.Context, tx *sql.Tx) error {
	tables := []string{
		"standards.town_zips",
		"standards.payment_standards",
		"standards.regions",
	}
	for _, t := range tables {
		q := fmt.Sprintf("DELETE FROM %s", t)
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("delete %s: %w", t, err)
		}
	}
	return nil
}

func insertAll(ctx context.Context, tx *sql.Tx, p plan) error {
	regionStmt, err := tx.PrepareContext(ctx, `INSERT INTO standards.regions (key, name, authority, effective_date, scheme) VALUES ($1,$2,$3,$4,$5)`)
	if err != nil {
		return err
	}
	defer regionStmt.Close()

	stdStmt, err := tx.PrepareContext(ctx, `INSERT INTO standards.payment_standards (region, zip, tier, studio, br1, br2, br3, br4) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`)
	if err != nil {
		return err
	}
	defer stdStmt.Close()

	townStmt, err := tx.PrepareContext(ctx, `INSERT INTO standards.town_zips (region, town, zip, position) VALUES ($1,$2,$3,$4)`)
	if err != nil {
		return err
	}
	defer townStmt.Close()

	for _, r := range p.Regions {
		if _, err := regionStmt.ExecContext(ctx, r.Key, r.Name, r.Authority, r.EffectiveDate, r.Scheme); err != nil {
			return fmt.Errorf("insert region '%s': %w", r.Key, err)
		}
	}
	for _, s := range p.Standards {
		a := s.Amounts
		if _, err := stdStmt.ExecContext(ctx, s.Region, s.Zip, s.Tier, a[0], a[1], a[2], a[3], a[4]); err != nil {
			return fmt.Errorf("insert standard %s/%s: %w", s.Region, s.Zip, err)
		}
	}
	for _, t := range p.TownZips {
		if _, err := townStmt.ExecContext(ctx, t.Region, t.Town, t.Zip, t.Position); err != nil {
			return fmt.Errorf("insert town zip %s/%s/%s: %w", t.Region, t.Town, t.Zip, err)
		}
	}
	return nil
}
