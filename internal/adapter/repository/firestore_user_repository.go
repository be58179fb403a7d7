package repository

import (
	"context"
	"strconv"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/internal/domain/repository"
	"wardrobe101/pkg/errors"
)

const (
	usersCollection    = "users"
	countersCollection = "counters"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	user.Email = strings.ToLower(user.Email)
	users := r.client.Collection(usersCollection)
	counter := r.client.Collection(countersCollection).Doc(usersCollection)
	explicitID := user.ID

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		taken, err := tx.Documents(users.Where("email", "==", user.Email).Limit(1)).GetAll()
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			return errors.Conflict("Email already registered")
		}

		// The closure may rerun on contention, so allocation starts over each time.
		user.ID = explicitID
		if user.ID == "" {
			var next int64 = 1
			snap, err := tx.Get(counter)
			if err != nil && status.Code(err) != codes.NotFound {
				return err
			}
			if err == nil {
				if v, ok := snap.Data()["next"].(int64); ok {
					next = v
				}
			}
			// Skip ids taken by records created with an explicit id.
			for {
				user.ID = "u" + strconv.FormatInt(next, 10)
				_, err := tx.Get(users.Doc(user.ID))
				if status.Code(err) == codes.NotFound {
					break
				}
				if err != nil {
					return err
				}
				next++
			}
			if err := tx.Set(counter, map[string]interface{}{"next": next + 1}); err != nil {
				return err
			}
		}
		return tx.Create(users.Doc(user.ID), user)
	})
	if err != nil {
		if errors.Is(err, errors.CodeConflict) {
			return err
		}
		if status.Code(err) == codes.AlreadyExists {
			return errors.Conflict("User already exists")
		}
		return errors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}

	return &user, nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := r.client.Collection(usersCollection).Where("email", "==", strings.ToLower(email)).Limit(1)
	iter := query.Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("User", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}

	return &user, nil
}

func (r *firestoreUserRepository) Count(ctx context.Context) (int, error) {
	docs, err := r.client.Collection(usersCollection).Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count users", err)
	}
	return len(docs), nil
}
