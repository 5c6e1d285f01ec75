package postgres

import (
	"context"

	"github.com/jhoicas/orcamentos-api/internal/domain"
	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/orcamentos-api/internal/domain/repository"
)

var (
	_ repository.UserRepository       = (*UserRepo)(nil)
	_ repository.MembershipRepository = (*MembershipRepo)(nil)
)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db Querier) *UserRepo {
	return &UserRepo{db: db}
}

// Create persiste un nuevo usuario. Email duplicado devuelve domain.ErrEmailAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	const query = `
		INSERT INTO users (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query, user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return storeErr("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, "get user by id", `WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email normalizado.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "get user by email", `WHERE email = $1`, email)
}

func (r *UserRepo) findOne(ctx context.Context, op, where string, arg string) (*entity.User, error) {
	query := `SELECT id, email, name, password_hash, created_at FROM users ` + where
	var u entity.User
	err := r.db.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, storeErr(op, err)
	}
	return &u, nil
}

// MembershipRepo implementación del puerto MembershipRepository sobre PostgreSQL.
type MembershipRepo struct {
	db Querier
}

// NewMembershipRepository construye el adaptador de membresías.
func NewMembershipRepository(db Querier) *MembershipRepo {
	return &MembershipRepo{db: db}
}

// Create vincula usuario y empresa.
func (r *MembershipRepo) Create(ctx context.Context, m *entity.Membership) error {
	const query = `INSERT INTO memberships (user_id, company_id, role) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(ctx, query, m.UserID, m.CompanyID, m.Role)
	return storeErr("insert membership", err)
}

// FirstByUser devuelve la membresía con menor company_id, o nil.
func (r *MembershipRepo) FirstByUser(ctx context.Context, userID string) (*entity.Membership, error) {
	const query = `
		SELECT m.user_id, m.company_id, m.role, c.name
		  FROM memberships m
		  JOIN companies c ON c.id = m.company_id
		 WHERE m.user_id = $1
		 ORDER BY m.company_id
		 LIMIT 1`
	var m entity.Membership
	err := r.db.QueryRow(ctx, query, userID).Scan(&m.UserID, &m.CompanyID, &m.Role, &m.CompanyName)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, storeErr("first membership", err)
	}
	return &m, nil
}
