package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/budgetme/admin-api/models"
	"github.com/budgetme/admin-api/utils"

	"github.com/google/uuid"
)

type FamilyService struct {
	db   *sql.DB
	feed *ChangeFeed
}

func NewFamilyService(db *sql.DB, feed *ChangeFeed) *FamilyService {
	return &FamilyService{db: db, feed: feed}
}

// Create inserts the family and its creator as owner member in one transaction.
func (s *FamilyService) Create(ctx context.Context, req models.CreateFamilyRequest, createdBy string) (*models.Family, error) {
	currency := req.CurrencyPref
	if currency == "" {
		currency = "PHP"
	}

	family := &models.Family{
		ID:           uuid.New().String(),
		FamilyName:   req.FamilyName,
		Description:  req.Description,
		CurrencyPref: currency,
		CreatedBy:    createdBy,
		IsPublic:     req.IsPublic,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO families (id, family_name, description, currency_pref, created_by, is_public, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		if _, err := tx.ExecContext(ctx, query,
			family.ID, family.FamilyName, family.Description, family.CurrencyPref,
			family.CreatedBy, family.IsPublic, family.CreatedAt, family.UpdatedAt); err != nil {
			return err
		}

		memberQuery := `
			INSERT INTO family_members (id, family_id, user_id, role, status, joined_at)
			VALUES ($1, $2, $3, 'owner', 'active', $4)
		`
		_, err := tx.ExecContext(ctx, memberQuery, uuid.New().String(), family.ID, createdBy, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	s.feed.Publish(ChangeEvent{Table: TableFamilies, Action: ActionCreated, ID: family.ID, Actor: createdBy})
	return family, nil
}

// GetByID returns one family with its owner name and member roster joined in.
func (s *FamilyService) GetByID(ctx context.Context, id string) (*models.Family, error) {
	query := `
		SELECT f.id, f.family_name, COALESCE(f.description, ''), f.currency_pref,
		       f.created_by, f.is_public, f.created_at, f.updated_at,
		       COALESCE(u.name, '') as owner_name
		FROM families f
		LEFT JOIN users u ON f.created_by = u.id
		WHERE f.id = $1
	`

	var family models.Family
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&family.ID,
		&family.FamilyName,
		&family.Description,
		&family.CurrencyPref,
		&family.CreatedBy,
		&family.IsPublic,
		&family.CreatedAt,
		&family.UpdatedAt,
		&family.OwnerName,
	)
	if err != nil {
		return nil, err
	}

	members, err := s.GetMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	family.Members = members
	family.MemberCount = len(members)

	return &family, nil
}

// List returns all families with owner names and member counts.
func (s *FamilyService) List(ctx context.Context) ([]models.Family, error) {
	query := `
		SELECT f.id, f.family_name, COALESCE(f.description, ''), f.currency_pref,
		       f.created_by, f.is_public, f.created_at, f.updated_at,
		       COALESCE(u.name, '') as owner_name,
		       (SELECT COUNT(*) FROM family_members fm WHERE fm.family_id = f.id) as member_count
		FROM families f
		LEFT JOIN users u ON f.created_by = u.id
		ORDER BY f.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var families []models.Family
	for rows.Next() {
		var family models.Family
		err := rows.Scan(
			&family.ID,
			&family.FamilyName,
			&family.Description,
			&family.CurrencyPref,
			&family.CreatedBy,
			&family.IsPublic,
			&family.CreatedAt,
			&family.UpdatedAt,
			&family.OwnerName,
			&family.MemberCount,
		)
		if err != nil {
			return nil, err
		}
		families = append(families, family)
	}

	return families, rows.Err()
}

func (s *FamilyService) Update(ctx context.Context, id string, req models.UpdateFamilyRequest, actor string) error {
	query := `
		UPDATE families
		SET family_name = $1,
		    description = $2,
		    currency_pref = COALESCE(NULLIF($3, ''), currency_pref),
		    is_public = COALESCE($4, is_public),
		    updated_at = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(ctx, query, req.FamilyName, req.Description, req.CurrencyPref, req.IsPublic, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	s.feed.Publish(ChangeEvent{Table: TableFamilies, Action: ActionUpdated, ID: id, Actor: actor})
	return nil
}

// Delete removes the family and its dependent rows.
func (s *FamilyService) Delete(ctx context.Context, id, actor string) error {
	err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM family_members WHERE family_id = $1", id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM family_invitations WHERE family_id = $1", id); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, "DELETE FROM families WHERE id = $1", id)
		if err != nil {
			return err
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.feed.Publish(ChangeEvent{Table: TableFamilies, Action: ActionDeleted, ID: id, Actor: actor})
	return nil
}

// GetMembers returns the member roster with user identity joined in
// application code.
func (s *FamilyService) GetMembers(ctx context.Context, familyID string) ([]models.FamilyMember, error) {
	query := `
		SELECT fm.id, fm.user_id, fm.role, fm.status, fm.joined_at,
		       u.name, u.email, COALESCE(u.avatar, '')
		FROM family_members fm
		JOIN users u ON fm.user_id = u.id
		WHERE fm.family_id = $1
		ORDER BY fm.joined_at
	`

	rows, err := s.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.FamilyMember
	for rows.Next() {
		var member models.FamilyMember
		var name, email, avatar string

		err := rows.Scan(
			&member.ID,
			&member.UserID,
			&member.Role,
			&member.Status,
			&member.JoinedAt,
			&name,
			&email,
			&avatar,
		)
		if err != nil {
			return nil, err
		}

		member.FamilyID = familyID
		member.User = &models.User{
			ID:     member.UserID,
			Name:   name,
			Email:  email,
			Avatar: avatar,
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

func (s *FamilyService) RemoveMember(ctx context.Context, familyID, memberID, actor string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM family_members WHERE id = $1 AND family_id = $2 AND role <> 'owner'",
		memberID, familyID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	s.feed.Publish(ChangeEvent{Table: TableFamilies, Action: ActionUpdated, ID: familyID, Actor: actor})
	return nil
}

// ============================================================================
// INVITATIONS
// ============================================================================

func (s *FamilyService) CreateInvitation(ctx context.Context, familyID, email, invitedBy string) (*models.FamilyInvitation, error) {
	invitation := &models.FamilyInvitation{
		ID:        uuid.New().String(),
		FamilyID:  familyID,
		Email:     email,
		InvitedBy: invitedBy,
		Token:     uuid.New().String(),
		Status:    "pending",
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO family_invitations (id, family_id, email, invited_by, token, status, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		invitation.ID, invitation.FamilyID, invitation.Email, invitation.InvitedBy,
		invitation.Token, invitation.Status, invitation.ExpiresAt, invitation.CreatedAt)
	if err != nil {
		return nil, err
	}

	return invitation, nil
}

func (s *FamilyService) ListInvitations(ctx context.Context, familyID string) ([]models.FamilyInvitation, error) {
	query := `
		SELECT id, family_id, email, invited_by, token, status, expires_at, created_at
		FROM family_invitations
		WHERE family_id = $1 AND status = 'pending' AND expires_at > NOW()
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []models.FamilyInvitation
	for rows.Next() {
		var inv models.FamilyInvitation
		err := rows.Scan(&inv.ID, &inv.FamilyID, &inv.Email, &inv.InvitedBy,
			&inv.Token, &inv.Status, &inv.ExpiresAt, &inv.CreatedAt)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}

	return invitations, rows.Err()
}

func (s *FamilyService) CancelInvitation(ctx context.Context, familyID, invitationID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM family_invitations WHERE id = $1 AND family_id = $2", invitationID, familyID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AcceptInvitation adds the user as a member, marks the invitation accepted
// and cleans up duplicate pending invites for the same email.
func (s *FamilyService) AcceptInvitation(ctx context.Context, token, userID string) error {
	var inv models.FamilyInvitation
	query := `
		SELECT id, family_id, email, expires_at
		FROM family_invitations
		WHERE token = $1 AND status = 'pending'
	`
	err := s.db.QueryRowContext(ctx, query, token).Scan(&inv.ID, &inv.FamilyID, &inv.Email, &inv.ExpiresAt)
	if err != nil {
		return err
	}
	if time.Now().After(inv.ExpiresAt) {
		return sql.ErrNoRows
	}

	err = utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		memberQuery := `
			INSERT INTO family_members (id, family_id, user_id, role, status, joined_at)
			VALUES ($1, $2, $3, 'member', 'active', $4)
			ON CONFLICT (family_id, user_id) DO NOTHING
		`
		if _, err := tx.ExecContext(ctx, memberQuery, uuid.New().String(), inv.FamilyID, userID, time.Now()); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE family_invitations SET status = 'accepted' WHERE id = $1", inv.ID); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			"DELETE FROM family_invitations WHERE family_id = $1 AND email = $2 AND status = 'pending'",
			inv.FamilyID, inv.Email)
		return err
	})
	if err != nil {
		return err
	}

	s.feed.Publish(ChangeEvent{Table: TableFamilies, Action: ActionUpdated, ID: inv.FamilyID, Actor: userID})
	return nil
}
