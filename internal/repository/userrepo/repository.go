package userrepo

import (
	"context"
	"fmt"
	"strings"

	"estoque/internal/domain"
	apperror "estoque/internal/errors"
	"estoque/internal/pkg/logger"
	"estoque/internal/store"
)

// UserRepository acessa a coleção "users".
type UserRepository struct {
	docs   *store.Repository[domain.User]
	logger logger.Logger
}

// NewUserRepository cria o repositório de usuários.
func NewUserRepository(backend store.Backend, logger logger.Logger) *UserRepository {
	return &UserRepository{
		docs:   store.NewRepository[domain.User](backend, store.Users),
		logger: logger,
	}
}

// Save insere um novo usuário.
func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	r.logger.Debug("Iniciando Save de usuário no repositório.", map[string]interface{}{"email": user.Email})

	created, err := r.docs.Create(ctx, user)
	if err != nil {
		r.logger.Error("Falha ao inserir usuário.", err)
		return domain.User{}, err
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": created.ID, "email": created.Email})
	return created, nil
}

// FindByEmail busca o usuário pelo email (comparação sem diferenciar maiúsculas).
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	users, err := r.docs.FindBy(ctx, "email", email)
	if err != nil {
		return domain.User{}, err
	}
	if len(users) == 0 {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com email %s não existe.", email))
	}
	return users[0], nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	user, err := r.docs.FindByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %s não existe.", id))
		}
		return domain.User{}, err
	}
	return user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	return r.docs.FindAll(ctx)
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	updated, err := r.docs.Update(ctx, user.ID, user)
	if err != nil {
		r.logger.Error("Falha ao atualizar usuário.", err)
		return domain.User{}, err
	}
	return updated, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if err := r.docs.Delete(ctx, id); err != nil {
		return err
	}
	r.logger.Info("Usuário removido.", map[string]interface{}{"user_id": id})
	return nil
}
