package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"moncomptepro/internal/organization/models"
	"moncomptepro/internal/platform/postgres"
	"moncomptepro/pkg/platform/sentinel"
	"moncomptepro/pkg/platform/tx"
)

// PostgresOrganizationStore persists organizations and membership links.
// Domain set additions are single UPDATE statements so concurrent joins
// never lose an addition.
type PostgresOrganizationStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresOrganizationStore {
	return &PostgresOrganizationStore{db: db}
}

const organizationColumns = `id, siret,
	cached_libelle, cached_est_active, cached_categorie_juridique, cached_libelle_categorie_juridique,
	cached_activite_principale, cached_libelle_activite_principale, cached_code_officiel_geographique,
	cached_code_postal, cached_tranche_effectifs, organization_info_fetched_at,
	authorized_email_domains, verified_email_domains, external_authorized_email_domains,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrganization(row rowScanner) (*models.Organization, error) {
	var (
		org       models.Organization
		fetchedAt sql.NullTime
	)
	err := row.Scan(
		&org.ID, &org.Siret,
		&org.Info.Libelle, &org.Info.EstActive, &org.Info.CategorieJuridique, &org.Info.LibelleCategorieJuridique,
		&org.Info.ActivitePrincipale, &org.Info.LibelleActivitePrincipale, &org.Info.CodeOfficielGeographique,
		&org.Info.CodePostal, &org.Info.TrancheEffectifs, &fetchedAt,
		pq.Array(&org.AuthorizedEmailDomains), pq.Array(&org.VerifiedEmailDomains), pq.Array(&org.ExternalAuthorizedEmailDomains),
		&org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	org.Info.Siret = org.Siret
	if fetchedAt.Valid {
		org.Info.FetchedAt = fetchedAt.Time
	}
	return &org, nil
}

func (s *PostgresOrganizationStore) Upsert(ctx context.Context, info models.OrganizationInfo) (*models.Organization, error) {
	var fetchedAt any
	if !info.FetchedAt.IsZero() {
		fetchedAt = info.FetchedAt
	}
	row := tx.Executor(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO organizations (
			siret, cached_libelle, cached_est_active, cached_categorie_juridique, cached_libelle_categorie_juridique,
			cached_activite_principale, cached_libelle_activite_principale, cached_code_officiel_geographique,
			cached_code_postal, cached_tranche_effectifs, organization_info_fetched_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, COALESCE($11, now()))
		ON CONFLICT (siret) DO UPDATE SET
			cached_libelle = EXCLUDED.cached_libelle,
			cached_est_active = EXCLUDED.cached_est_active,
			cached_categorie_juridique = EXCLUDED.cached_categorie_juridique,
			cached_libelle_categorie_juridique = EXCLUDED.cached_libelle_categorie_juridique,
			cached_activite_principale = EXCLUDED.cached_activite_principale,
			cached_libelle_activite_principale = EXCLUDED.cached_libelle_activite_principale,
			cached_code_officiel_geographique = EXCLUDED.cached_code_officiel_geographique,
			cached_code_postal = EXCLUDED.cached_code_postal,
			cached_tranche_effectifs = EXCLUDED.cached_tranche_effectifs,
			organization_info_fetched_at = EXCLUDED.organization_info_fetched_at,
			updated_at = now()
		RETURNING `+organizationColumns,
		info.Siret, info.Libelle, info.EstActive, info.CategorieJuridique, info.LibelleCategorieJuridique,
		info.ActivitePrincipale, info.LibelleActivitePrincipale, info.CodeOfficielGeographique,
		info.CodePostal, info.TrancheEffectifs, fetchedAt,
	)
	org, err := scanOrganization(row)
	if err != nil {
		return nil, fmt.Errorf("upsert organization %s: %w", info.Siret, postgres.MapError(err))
	}
	return org, nil
}

func (s *PostgresOrganizationStore) FindByID(ctx context.Context, id int64) (*models.Organization, error) {
	return s.findOne(ctx, `SELECT `+organizationColumns+` FROM organizations WHERE id = $1`, id)
}

func (s *PostgresOrganizationStore) FindBySiret(ctx context.Context, siret string) (*models.Organization, error) {
	return s.findOne(ctx, `SELECT `+organizationColumns+` FROM organizations WHERE siret = $1`, siret)
}

func (s *PostgresOrganizationStore) findOne(ctx context.Context, query string, arg any) (*models.Organization, error) {
	org, err := scanOrganization(tx.Executor(ctx, s.db).QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find organization: %w", postgres.MapError(err))
	}
	return org, nil
}

func (s *PostgresOrganizationStore) FindByUserID(ctx context.Context, userID int64) ([]*models.Organization, error) {
	return s.findMany(ctx, `
		SELECT `+organizationColumns+`
		FROM organizations
		WHERE id IN (SELECT organization_id FROM users_organizations WHERE user_id = $1)
		ORDER BY id`, userID)
}

func (s *PostgresOrganizationStore) FindByVerifiedEmailDomain(ctx context.Context, domain string) ([]*models.Organization, error) {
	return s.findMany(ctx, `
		SELECT `+organizationColumns+`
		FROM organizations
		WHERE verified_email_domains @> ARRAY[$1::text]
		ORDER BY id`, domain)
}

// memberEmailDomain is the part after the last '@', matching email.Domain.
const memberEmailDomain = `lower(trim(substring(u.email from '@([^@]*)$')))`

// FindByMostUsedEmailDomain ranks member email domains per organization and
// keeps organizations where domain is ranked first.
func (s *PostgresOrganizationStore) FindByMostUsedEmailDomain(ctx context.Context, domain string) ([]*models.Organization, error) {
	return s.findMany(ctx, `
		WITH member_domains AS (
			SELECT uo.organization_id,
			       `+memberEmailDomain+` AS domain,
			       count(*) AS members
			FROM users_organizations uo
			JOIN users u ON u.id = uo.user_id
			GROUP BY uo.organization_id, `+memberEmailDomain+`
		), ranked AS (
			SELECT organization_id, domain,
			       rank() OVER (PARTITION BY organization_id ORDER BY members DESC) AS position
			FROM member_domains
		)
		SELECT `+organizationColumns+`
		FROM organizations
		WHERE id IN (SELECT organization_id FROM ranked WHERE position = 1 AND domain = $1)
		ORDER BY id`, domain)
}

func (s *PostgresOrganizationStore) findMany(ctx context.Context, query string, arg any) ([]*models.Organization, error) {
	rows, err := tx.Executor(ctx, s.db).QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query organizations: %w", postgres.MapError(err))
	}
	defer rows.Close()

	var out []*models.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		out = append(out, org)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate organizations: %w", postgres.MapError(err))
	}
	return out, nil
}

// MarkDomainVerified adds domain to the verified and authorized sets in one
// statement, then upgrades unverified links of members on that domain.
func (s *PostgresOrganizationStore) MarkDomainVerified(ctx context.Context, organizationID int64, domain string, verificationType models.VerificationType) error {
	exec := tx.Executor(ctx, s.db)
	res, err := exec.ExecContext(ctx, `
		UPDATE organizations SET
			verified_email_domains = CASE WHEN $2 = ANY(verified_email_domains)
				THEN verified_email_domains ELSE array_append(verified_email_domains, $2) END,
			authorized_email_domains = CASE WHEN $2 = ANY(authorized_email_domains)
				THEN authorized_email_domains ELSE array_append(authorized_email_domains, $2) END,
			updated_at = now()
		WHERE id = $1`, organizationID, domain)
	if err := affectedOne(res, err); err != nil {
		return fmt.Errorf("mark domain verified: %w", err)
	}

	_, err = exec.ExecContext(ctx, `
		UPDATE users_organizations uo SET
			verification_type = $3,
			updated_at = now()
		FROM users u
		WHERE u.id = uo.user_id
		  AND uo.organization_id = $1
		  AND uo.verification_type IS NULL
		  AND `+memberEmailDomain+` = $2`, organizationID, domain, string(verificationType))
	if err != nil {
		return fmt.Errorf("upgrade member verification: %w", postgres.MapError(err))
	}
	return nil
}

func (s *PostgresOrganizationStore) AddAuthorizedDomain(ctx context.Context, organizationID int64, domain string) error {
	res, err := tx.Executor(ctx, s.db).ExecContext(ctx, `
		UPDATE organizations SET
			authorized_email_domains = CASE WHEN $2 = ANY(authorized_email_domains)
				THEN authorized_email_domains ELSE array_append(authorized_email_domains, $2) END,
			updated_at = now()
		WHERE id = $1`, organizationID, domain)
	if err := affectedOne(res, err); err != nil {
		return fmt.Errorf("add authorized domain: %w", err)
	}
	return nil
}

func (s *PostgresOrganizationStore) AddExternalAuthorizedDomain(ctx context.Context, organizationID int64, domain string) error {
	res, err := tx.Executor(ctx, s.db).ExecContext(ctx, `
		UPDATE organizations SET
			external_authorized_email_domains = CASE WHEN $2 = ANY(external_authorized_email_domains)
				THEN external_authorized_email_domains ELSE array_append(external_authorized_email_domains, $2) END,
			updated_at = now()
		WHERE id = $1`, organizationID, domain)
	if err := affectedOne(res, err); err != nil {
		return fmt.Errorf("add external authorized domain: %w", err)
	}
	return nil
}

// LinkUser inserts the membership edge. The primary key on the pair turns a
// concurrent duplicate into sentinel.ErrAlreadyUsed.
func (s *PostgresOrganizationStore) LinkUser(ctx context.Context, link models.UserOrganizationLink) (*models.UserOrganizationLink, error) {
	var verification sql.NullString
	if link.VerificationType != models.VerificationNone {
		verification = sql.NullString{String: string(link.VerificationType), Valid: true}
	}
	err := tx.Executor(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO users_organizations (
			user_id, organization_id, is_external, verification_type, needs_official_contact_email_verification
		)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		link.UserID, link.OrganizationID, link.IsExternal, verification, link.NeedsOfficialContactEmailVerification,
	).Scan(&link.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("link user %d to organization %d: %w", link.UserID, link.OrganizationID, postgres.MapError(err))
	}
	return &link, nil
}

func (s *PostgresOrganizationStore) FindLink(ctx context.Context, userID, organizationID int64) (*models.UserOrganizationLink, error) {
	var (
		link         models.UserOrganizationLink
		verification sql.NullString
	)
	err := tx.Executor(ctx, s.db).QueryRowContext(ctx, `
		SELECT user_id, organization_id, is_external, verification_type,
		       needs_official_contact_email_verification, created_at
		FROM users_organizations
		WHERE user_id = $1 AND organization_id = $2`, userID, organizationID,
	).Scan(&link.UserID, &link.OrganizationID, &link.IsExternal, &verification,
		&link.NeedsOfficialContactEmailVerification, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find link: %w", postgres.MapError(err))
	}
	link.VerificationType = models.VerificationType(verification.String)
	return &link, nil
}

func affectedOne(res sql.Result, err error) error {
	if err != nil {
		return postgres.MapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
