package postgres

import (
	"context"
	"fmt"
	"strings"

	"tvet-connect-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const userColumns = `id, first_name, last_name, email, COALESCE(phone, ''), COALESCE(bio, ''), role,
	COALESCE(company_name, ''), COALESCE(company_size, ''), COALESCE(industry, ''),
	COALESCE(tvet_institution, ''), COALESCE(position, ''), skills, sectors, password_hash,
	is_approved, approved_by, approved_at, created_at, updated_at`

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.Bio, &u.Role,
		&u.CompanyName, &u.CompanySize, &u.Industry, &u.TVETInstitution, &u.Position,
		pq.Array(&u.Skills), pq.Array(&u.Sectors), &u.PasswordHash,
		&u.IsApproved, &u.ApprovedBy, &u.ApprovedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, first_name, last_name, email, phone, bio, role, company_name,
		company_size, industry, tvet_institution, position, skills, sectors, password_hash,
		is_approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, NULLIF($8, ''), NULLIF($9, ''),
		NULLIF($10, ''), NULLIF($11, ''), NULLIF($12, ''), $13, $14, $15, $16, $17, $18)`
	_, err := r.db.Exec(ctx, query,
		u.ID, u.FirstName, u.LastName, u.Email, u.Phone, u.Bio, u.Role, u.CompanyName,
		u.CompanySize, u.Industry, u.TVETInstitution, u.Position,
		pq.Array(nonNilStrings(u.Skills)), pq.Array(nonNilStrings(u.Sectors)), u.PasswordHash,
		u.IsApproved, u.CreatedAt, u.UpdatedAt,
	)
	return mapError(err)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *userRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id::text = ANY($1)`
	rows, err := r.db.Query(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *userRepo) UpdateProfile(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET first_name = $2, last_name = $3, phone = NULLIF($4, ''), bio = NULLIF($5, ''),
		skills = $6, sectors = $7, company_size = NULLIF($8, ''), industry = NULLIF($9, ''),
		position = NULLIF($10, ''), updated_at = $11
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		u.ID, u.FirstName, u.LastName, u.Phone, u.Bio,
		pq.Array(nonNilStrings(u.Skills)), pq.Array(nonNilStrings(u.Sectors)),
		u.CompanySize, u.Industry, u.Position, u.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) Search(ctx context.Context, f domain.UserSearchFilter) ([]domain.User, int64, error) {
	where, args := buildUserWhere(f)

	var total int64
	countQuery := `SELECT COUNT(*) FROM users` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page, limit := domain.NormalizePage(f.Page, f.Limit)
	args = append(args, limit, domain.Offset(page, limit))
	query := fmt.Sprintf(`SELECT %s FROM users%s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`,
		userColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users, err := collectUsers(rows)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// buildUserWhere renders the filter; company_name and email are deliberately not searchable
// so a search cannot confirm identities the visibility rules hide.
func buildUserWhere(f domain.UserSearchFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	next := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Role != "" {
		conds = append(conds, "role = "+next(string(f.Role)))
	}
	if len(f.ExcludeRoles) > 0 {
		roles := make([]string, len(f.ExcludeRoles))
		for i, role := range f.ExcludeRoles {
			roles[i] = string(role)
		}
		conds = append(conds, "NOT (role = ANY("+next(pq.Array(roles))+"))")
	}
	if f.Approved != nil {
		conds = append(conds, "is_approved = "+next(*f.Approved))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := next("%" + escapeLike(s) + "%")
		conds = append(conds, fmt.Sprintf(`(first_name ILIKE %[1]s OR last_name ILIKE %[1]s
			OR COALESCE(industry, '') ILIKE %[1]s OR COALESCE(tvet_institution, '') ILIKE %[1]s
			OR array_to_string(skills, ' ') ILIKE %[1]s OR array_to_string(sectors, ' ') ILIKE %[1]s)`, p))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func collectUsers(rows pgx.Rows) ([]domain.User, error) {
	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
