package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/query"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	deliverycontext "storefront/internal/delivery/context"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	uowFactory   repository.UnitOfWorkFactory
	hasher       service.PasswordHasher
	tokenService service.TokenService
	clock        service.Clock
	events       eventPublisher
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UowFactory   repository.UnitOfWorkFactory
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Clock        service.Clock
	Publisher    service.EventPublisher `optional:"true"`
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		uowFactory:   params.UowFactory,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		clock:        params.Clock,
		events:       eventPublisher{publisher: params.Publisher, clock: params.Clock, logger: params.Logger},
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, srv.logger)
}

func byBusinessEntity(id int32) query.Predicate {
	return query.Eq(entity.ColBusinessEntityID, id)
}

func validateRegistration(input *usecase.RegisterUserInput) error {
	switch {
	case strings.TrimSpace(input.EmailAddress) == "":
		return domainerrors.ErrValidationFailed.WrapMessage("email address is required")
	case input.Password == "":
		return domainerrors.ErrValidationFailed.WrapMessage("password is required")
	case len(input.Password) > constants.MaxPasswordBytes:
		return domainerrors.ErrValidationFailed.WrapMessage("password is too long")
	case strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "":
		return domainerrors.ErrValidationFailed.WrapMessage("first and last name are required")
	}

	return nil
}

// Register creates the business entity, person, email, credential, address and
// address link of a new customer in one transaction. Generated keys are
// obtained by flushing after each parent row.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	ctx = inScope(ctx, workflowRegister, 0)
	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	personType := input.PersonType
	if personType == "" {
		personType = constants.DefaultPersonType
	}
	stateProvinceID := input.StateProvinceID
	if stateProvinceID == 0 {
		stateProvinceID = constants.DefaultStateProvinceID
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", input.EmailAddress))

	uow := srv.uowFactory.New()
	defer uow.Close()

	now := srv.clock.Now()
	out := &usecase.RegisterOutput{}

	err := runTransaction(ctx, uow, domainerrors.ErrRegistrationFailed, func(uow repository.UnitOfWork) error {
		businessEntity := uow.BusinessEntities().Add(&entity.BusinessEntity{
			RowGUID:      uuid.New(),
			ModifiedDate: now,
		})
		if err := uow.SaveChanges(ctx); err != nil {
			return err
		}

		uow.People().Add(&entity.Person{
			BusinessEntityID: businessEntity.ID,
			PersonType:       personType,
			NameStyle:        input.NameStyle,
			Title:            input.Title,
			FirstName:        input.FirstName,
			MiddleName:       input.MiddleName,
			LastName:         input.LastName,
			EmailPromotion:   input.EmailPromotion,
			RowGUID:          uuid.New(),
			ModifiedDate:     now,
		})
		email := uow.EmailAddresses().Add(&entity.EmailAddress{
			BusinessEntityID: businessEntity.ID,
			EmailAddress:     input.EmailAddress,
			RowGUID:          uuid.New(),
			ModifiedDate:     now,
		})
		if err := uow.SaveChanges(ctx); err != nil {
			return err
		}

		salt, hash, err := srv.hashPassword(input.Password)
		if err != nil {
			return err
		}
		uow.Credentials().Add(&entity.Credential{
			BusinessEntityID: businessEntity.ID,
			PasswordHash:     hash,
			PasswordSalt:     salt,
			RowGUID:          uuid.New(),
			ModifiedDate:     now,
		})

		address := uow.Addresses().Add(&entity.Address{
			AddressLine1:    input.AddressLine1,
			AddressLine2:    input.AddressLine2,
			City:            input.City,
			StateProvinceID: stateProvinceID,
			PostalCode:      input.PostalCode,
			RowGUID:         uuid.New(),
			ModifiedDate:    now,
		})
		if err := uow.SaveChanges(ctx); err != nil {
			return err
		}

		uow.BusinessEntityAddresses().Add(&entity.BusinessEntityAddress{
			BusinessEntityID: businessEntity.ID,
			AddressID:        address.ID,
			AddressTypeID:    input.AddressTypeID,
			RowGUID:          uuid.New(),
			ModifiedDate:     now,
		})
		if err := uow.SaveChanges(ctx); err != nil {
			return err
		}

		out.BusinessEntityID = businessEntity.ID
		out.EmailAddressID = email.ID
		out.AddressID = address.ID

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Registration rolled back", slog.String("email", input.EmailAddress), slog.Any("error", err))

		// The email index is the only unique constraint a registration can hit.
		if errors.Is(err, domainerrors.ErrDuplicateRow) {
			return nil, errors.Join(domainerrors.ErrUserAlreadyExists, err)
		}

		return nil, err
	}

	srv.log(ctx).Info("Registration completed", slog.Any("businessEntityID", out.BusinessEntityID))
	srv.events.publish(ctx, constants.EventUserRegistered, out.BusinessEntityID, map[string]any{
		"emailAddress": input.EmailAddress,
	})

	return out, nil
}

func (srv *userService) hashPassword(password string) (salt, hash string, err error) {
	salt, err = srv.hasher.Salt()
	if err != nil {
		return "", "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	hash, err = srv.hasher.Hash(password, salt)
	if err != nil {
		return "", "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return salt, hash, nil
}

// Update applies the non-nil fields of input. A new password is stored under a fresh salt.
func (srv *userService) Update(ctx context.Context, input *usecase.UpdateUserInput) error {
	ctx = inScope(ctx, workflowUpdateUser, input.BusinessEntityID)
	if input.Password != nil && len(*input.Password) > constants.MaxPasswordBytes {
		return domainerrors.ErrValidationFailed.WrapMessage("password is too long")
	}

	uow := srv.uowFactory.New()
	defer uow.Close()

	now := srv.clock.Now()

	err := runTransaction(ctx, uow, domainerrors.ErrUserUpdateFailed, func(uow repository.UnitOfWork) error {
		businessEntity, err := uow.BusinessEntities().FindOne(ctx, byBusinessEntity(input.BusinessEntityID))
		if err != nil {
			return err
		}
		if businessEntity == nil {
			return domainerrors.ErrUserNotFound
		}

		if err := srv.updatePerson(ctx, uow, input, now); err != nil {
			return err
		}
		if err := srv.updateEmail(ctx, uow, input, now); err != nil {
			return err
		}
		if err := srv.updateCredential(ctx, uow, input, now); err != nil {
			return err
		}
		if err := srv.updateAddress(ctx, uow, input, now); err != nil {
			return err
		}

		return uow.SaveChanges(ctx)
	})
	if err != nil {
		srv.log(ctx).Error("User update failed", slog.Any("error", err))

		if errors.Is(err, domainerrors.ErrDuplicateRow) {
			return errors.Join(domainerrors.ErrUserAlreadyExists, err)
		}

		return err
	}

	srv.log(ctx).Info("User updated")

	return nil
}

func (srv *userService) updatePerson(ctx context.Context, uow repository.UnitOfWork, input *usecase.UpdateUserInput, now time.Time) error {
	person, err := uow.People().FindOne(ctx, byBusinessEntity(input.BusinessEntityID))
	if err != nil || person == nil {
		return err
	}

	changed := assign(&person.Title, input.Title)
	changed = assignValue(&person.FirstName, input.FirstName) || changed
	changed = assign(&person.MiddleName, input.MiddleName) || changed
	changed = assignValue(&person.LastName, input.LastName) || changed
	changed = assignValue(&person.EmailPromotion, input.EmailPromotion) || changed
	if !changed {
		return nil
	}
	person.ModifiedDate = now

	return uow.People().Update(ctx, person)
}

func (srv *userService) updateEmail(ctx context.Context, uow repository.UnitOfWork, input *usecase.UpdateUserInput, now time.Time) error {
	if input.EmailAddress == nil {
		return nil
	}

	email, err := uow.EmailAddresses().FindOne(ctx, byBusinessEntity(input.BusinessEntityID))
	if err != nil || email == nil {
		return err
	}

	email.EmailAddress = *input.EmailAddress
	email.ModifiedDate = now

	return uow.EmailAddresses().Update(ctx, email)
}

func (srv *userService) updateCredential(ctx context.Context, uow repository.UnitOfWork, input *usecase.UpdateUserInput, now time.Time) error {
	if input.Password == nil || *input.Password == "" {
		return nil
	}

	credential, err := uow.Credentials().FindOne(ctx, byBusinessEntity(input.BusinessEntityID))
	if err != nil || credential == nil {
		return err
	}

	salt, hash, err := srv.hashPassword(*input.Password)
	if err != nil {
		return err
	}
	credential.PasswordSalt = salt
	credential.PasswordHash = hash
	credential.ModifiedDate = now

	return uow.Credentials().Update(ctx, credential)
}

func (srv *userService) updateAddress(ctx context.Context, uow repository.UnitOfWork, input *usecase.UpdateUserInput, now time.Time) error {
	link, err := uow.BusinessEntityAddresses().FindOne(ctx, byBusinessEntity(input.BusinessEntityID))
	if err != nil || link == nil {
		return err
	}

	address, err := uow.Addresses().FindOne(ctx, query.Eq(entity.ColAddressID, link.AddressID))
	if err != nil {
		return err
	}

	if address != nil {
		changed := assignValue(&address.AddressLine1, input.AddressLine1)
		changed = assign(&address.AddressLine2, input.AddressLine2) || changed
		changed = assignValue(&address.City, input.City) || changed
		changed = assignValue(&address.StateProvinceID, input.StateProvinceID) || changed
		changed = assignValue(&address.PostalCode, input.PostalCode) || changed

		if changed {
			address.ModifiedDate = now
			if err := uow.Addresses().Update(ctx, address); err != nil {
				return err
			}
		}
	}

	if assignValue(&link.AddressTypeID, input.AddressTypeID) {
		link.ModifiedDate = now

		return uow.BusinessEntityAddresses().Update(ctx, link)
	}

	return nil
}

// Delete removes every row of a customer. The existence check runs on the
// primary before any transaction is opened.
func (srv *userService) Delete(ctx context.Context, businessEntityID int32) error {
	ctx = inScope(ctx, workflowDeleteUser, businessEntityID)
	lookup := srv.uowFactory.NewPrimary()
	businessEntity, err := lookup.BusinessEntities().FindOne(ctx, byBusinessEntity(businessEntityID))
	_ = lookup.Close()
	if err != nil {
		return err
	}
	if businessEntity == nil {
		return domainerrors.ErrUserNotFound
	}

	uow := srv.uowFactory.New()
	defer uow.Close()

	err = runTransaction(ctx, uow, domainerrors.ErrUserDeletionFailed, func(uow repository.UnitOfWork) error {
		pred := byBusinessEntity(businessEntityID)

		if err := removeIfPresent(ctx, uow.EmailAddresses(), pred); err != nil {
			return err
		}
		if err := removeIfPresent(ctx, uow.Credentials(), pred); err != nil {
			return err
		}

		link, err := uow.BusinessEntityAddresses().FindOne(ctx, pred)
		if err != nil {
			return err
		}
		if link != nil {
			address, err := uow.Addresses().FindOne(ctx, query.Eq(entity.ColAddressID, link.AddressID))
			if err != nil {
				return err
			}
			if err := uow.BusinessEntityAddresses().Remove(ctx, link); err != nil {
				return err
			}
			if err := uow.SaveChanges(ctx); err != nil {
				return err
			}
			if address != nil {
				if err := uow.Addresses().Remove(ctx, address); err != nil {
					return err
				}
			}
		}

		if err := removeIfPresent(ctx, uow.People(), pred); err != nil {
			return err
		}
		if err := uow.BusinessEntities().Remove(ctx, businessEntity); err != nil {
			return err
		}

		return uow.SaveChanges(ctx)
	})
	if err != nil {
		srv.log(ctx).Error("User deletion rolled back", slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("User deleted")
	srv.events.publish(ctx, constants.EventUserDeleted, businessEntityID, nil)

	return nil
}

func removeIfPresent[T any](ctx context.Context, store repository.Store[T], pred query.Predicate) error {
	row, err := store.FindOne(ctx, pred)
	if err != nil || row == nil {
		return err
	}

	return store.Remove(ctx, row)
}

// Login checks the password of the account registered under input.Email and
// issues an access token.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	ctx = inScope(ctx, workflowLogin, 0)
	uow := srv.uowFactory.New()
	defer uow.Close()

	businessEntityID, found, err := repository.FindSingle(ctx, uow.EmailAddresses(),
		query.Eq(entity.ColEmailAddress, input.Email),
		func(e *entity.EmailAddress) int32 { return e.BusinessEntityID },
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up email address")
	}
	if !found {
		srv.log(ctx).Info("Login rejected, unknown email", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials
	}

	credential, err := uow.Credentials().FindOne(ctx, byBusinessEntity(businessEntityID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up credential")
	}
	if credential == nil || !srv.hasher.Check(input.Password, credential.PasswordSalt, credential.PasswordHash) {
		srv.log(ctx).Info("Login rejected", slog.Any("businessEntityID", businessEntityID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokenService.GenerateToken(businessEntityID, input.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	return &usecase.LoginOutput{BusinessEntityID: businessEntityID, AccessToken: token}, nil
}

// AddressConstants returns the state and address type options.
func (srv *userService) AddressConstants(ctx context.Context) (*entity.AddressConstants, error) {
	uow := srv.uowFactory.New()
	defer uow.Close()

	states, err := repository.FindProjected(ctx, uow.StateProvinces(), query.All(), query.StateOptionOf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list state provinces")
	}

	addressTypes, err := repository.FindProjected(ctx, uow.AddressTypes(), query.All(), query.AddressTypeOptionOf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list address types")
	}

	return &entity.AddressConstants{States: states, AddressTypes: addressTypes}, nil
}
