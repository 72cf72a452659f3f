package repository

import (
	"context"

	"murmur/internal/graph"
	"murmur/internal/models"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// UserRepository defines the interface for user node operations.
type UserRepository interface {
	GetByUUID(ctx context.Context, uuid string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByUsernames(ctx context.Context, usernames []string) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type userRepository struct {
	runner graph.Runner
}

// NewUserRepository creates a new user repository.
func NewUserRepository(runner graph.Runner) UserRepository {
	return &userRepository{runner: runner}
}

const userReturn = `
	RETURN u.uuid AS uuid, u.username AS username,
	       u.displayedUsername AS displayedUsername, u.email AS email,
	       u.description AS description, u.avatarUrl AS avatarUrl,
	       u.creationDate AS creationDate, u.roles AS roles`

func (r *userRepository) GetByUUID(ctx context.Context, uuid string) (*models.User, error) {
	result, err := r.runner.Run(ctx, `MATCH (u:User {uuid: $uuid})`+userReturn,
		map[string]any{"uuid": uuid})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(result.Records) == 0 {
		return nil, models.NewNotFoundError("user", uuid)
	}
	return mapUser(result.Records[0]), nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	result, err := r.runner.Run(ctx, `MATCH (u:User {username: $username})`+userReturn,
		map[string]any{"username": username})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(result.Records) == 0 {
		return nil, models.NewNotFoundError("user", username)
	}
	return mapUser(result.Records[0]), nil
}

// GetByUsernames resolves the subset of usernames that exist; unknown
// names are skipped silently (mention fan-out relies on this).
func (r *userRepository) GetByUsernames(ctx context.Context, usernames []string) ([]models.User, error) {
	if len(usernames) == 0 {
		return nil, nil
	}
	result, err := r.runner.Run(ctx, `
		MATCH (u:User)
		WHERE u.username IN $usernames`+userReturn+`
		ORDER BY u.username ASC`,
		map[string]any{"usernames": usernames})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	users := make([]models.User, 0, len(result.Records))
	for _, record := range result.Records {
		users = append(users, *mapUser(record))
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	result, err := r.runner.Run(ctx, `
		MERGE (u:User {username: $username})
		ON CREATE SET u.uuid = $uuid,
		              u.displayedUsername = $displayedUsername,
		              u.email = $email,
		              u.description = $description,
		              u.avatarUrl = $avatarUrl,
		              u.creationDate = $creationDate,
		              u.roles = $roles
		RETURN u.uuid AS uuid`,
		map[string]any{
			"uuid":              user.UUID,
			"username":          user.Username,
			"displayedUsername": user.DisplayedUsername,
			"email":             user.Email,
			"description":       user.Description,
			"avatarUrl":         user.AvatarURL,
			"creationDate":      millis(user.CreationDate),
			"roles":             user.Roles,
		})
	if err != nil {
		return models.NewInternalError(err)
	}
	if len(result.Records) == 0 {
		return models.NewInternalError(nil)
	}
	// Username uniqueness is enforced by MERGE: a taken name returns the
	// existing node's uuid, which the caller must treat as a conflict.
	if got := recordString(result.Records[0], "uuid"); got != user.UUID {
		return models.NewValidationError("username already taken")
	}
	return nil
}

func mapUser(record *neo4j.Record) *models.User {
	return &models.User{
		UUID:              recordString(record, "uuid"),
		Username:          recordString(record, "username"),
		DisplayedUsername: recordString(record, "displayedUsername"),
		Email:             recordString(record, "email"),
		Description:       recordString(record, "description"),
		AvatarURL:         recordString(record, "avatarUrl"),
		CreationDate:      recordTime(record, "creationDate"),
		Roles:             recordStrings(record, "roles"),
	}
}
