package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jayarmananan1994/notifyme/internal/model"
)

// RuleRepository stores notification rules; conditions and actions live in JSONB columns.
type RuleRepository struct {
	db *pgxpool.Pool
}

func NewRuleRepository(db *pgxpool.Pool) *RuleRepository {
	return &RuleRepository{db: db}
}

const ruleColumns = `id, user_id, name, conditions, actions, enabled, created_at, updated_at`

func scanRule(row pgx.Row) (*model.NotificationRule, error) {
	var (
		r          model.NotificationRule
		conditions []byte
		actions    []byte
	)
	if err := row.Scan(&r.ID, &r.UserID, &r.Name, &conditions, &actions, &r.Enabled, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(conditions, &r.Conditions); err != nil {
		return nil, fmt.Errorf("failed to decode conditions of rule %s: %w", r.ID, err)
	}
	if err := json.Unmarshal(actions, &r.Actions); err != nil {
		return nil, fmt.Errorf("failed to decode actions of rule %s: %w", r.ID, err)
	}
	return &r, nil
}

func encodeRule(r *model.NotificationRule) (conditions, actions []byte, err error) {
	if conditions, err = json.Marshal(r.Conditions); err != nil {
		return nil, nil, err
	}
	if actions, err = json.Marshal(r.Actions); err != nil {
		return nil, nil, err
	}
	return conditions, actions, nil
}

// ListByUser returns the user's rules, oldest first.
func (r *RuleRepository) ListByUser(ctx context.Context, userID string) ([]*model.NotificationRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM notification_rules WHERE user_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, userID)
}

// ListEnabledByUser is what the worker evaluates for each email.
func (r *RuleRepository) ListEnabledByUser(ctx context.Context, userID string) ([]*model.NotificationRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM notification_rules WHERE user_id = $1 AND enabled ORDER BY created_at ASC`
	return r.list(ctx, query, userID)
}

func (r *RuleRepository) list(ctx context.Context, query, userID string) ([]*model.NotificationRule, error) {
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer rows.Close()

	var rules []*model.NotificationRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// FindByID scopes the lookup to the owner; another user's rule reads as ErrNotFound.
func (r *RuleRepository) FindByID(ctx context.Context, userID, id string) (*model.NotificationRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM notification_rules WHERE id = $1 AND user_id = $2`
	rule, err := scanRule(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rule: %w", err)
	}
	return rule, nil
}

// CreateWithLimit inserts rule unless its owner already has maxRules rules.
// The owner's row is locked so concurrent creates cannot both pass the count.
func (r *RuleRepository) CreateWithLimit(ctx context.Context, rule *model.NotificationRule, maxRules int) error {
	conditions, actions, err := encodeRule(rule)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var owner string
	if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, rule.UserID).Scan(&owner); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to lock user: %w", err)
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM notification_rules WHERE user_id = $1`, rule.UserID).Scan(&count); err != nil {
		return fmt.Errorf("failed to count rules: %w", err)
	}
	if count >= maxRules {
		return ErrRuleLimitReached
	}

	query := `
        INSERT INTO notification_rules (id, user_id, name, conditions, actions, enabled)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at
    `
	err = tx.QueryRow(ctx, query, rule.ID, rule.UserID, rule.Name, conditions, actions, rule.Enabled).
		Scan(&rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert rule: %w", err)
	}

	return tx.Commit(ctx)
}

// Update replaces name, conditions, actions and enabled.
func (r *RuleRepository) Update(ctx context.Context, rule *model.NotificationRule) error {
	conditions, actions, err := encodeRule(rule)
	if err != nil {
		return err
	}

	query := `
        UPDATE notification_rules
        SET name = $3, conditions = $4, actions = $5, enabled = $6, updated_at = NOW()
        WHERE id = $1 AND user_id = $2
        RETURNING created_at, updated_at
    `
	err = r.db.QueryRow(ctx, query, rule.ID, rule.UserID, rule.Name, conditions, actions, rule.Enabled).
		Scan(&rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update rule: %w", err)
	}
	return nil
}

func (r *RuleRepository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notification_rules WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
