package constants

// Pub/Sub providers accepted by pubsub.provider.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Password hashers accepted by auth.hasher.
const (
	PasswordHasherSHA256 = "sha256"
	PasswordHasherBcrypt = "bcrypt"
)

// MaxPasswordBytes keeps password plus the 10 character salt within bcrypt's 72 byte input.
const MaxPasswordBytes = 62

// RoleCustomer is the only role issued to storefront accounts.
const RoleCustomer = "Customer"

// Defaults applied to newly registered people and addresses.
const (
	DefaultPersonType      = "IN"
	DefaultStateProvinceID = int32(1)
)

// Domain event types published after a successful commit.
const (
	EventUserRegistered = "user.registered"
	EventUserDeleted    = "user.deleted"
	EventCartUpdated    = "cart.updated"
)

// EventTypes returns every domain event type the storefront publishes.
func EventTypes() []string {
	return []string{EventUserRegistered, EventUserDeleted, EventCartUpdated}
}

// EnvDevelop is the env.env value of local development.
const EnvDevelop = "develop"
