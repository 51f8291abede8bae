// Package entity contains the core business objects of the storefront,
// each mapped to one table of the relational store.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// BusinessEntity is the root identity every customer hangs off.
type BusinessEntity struct {
	ID           int32     `gorm:"column:business_entity_id;primaryKey"` // Generated on insert.
	RowGUID      uuid.UUID `gorm:"column:rowguid;type:uuid;not null"`
	ModifiedDate time.Time `gorm:"column:modified_date;not null"`
}

// TableName overrides the default table name.
func (BusinessEntity) TableName() string { return TableBusinessEntities }

// Person holds the name data of a customer.
type Person struct {
	BusinessEntityID int32     `gorm:"column:business_entity_id;primaryKey;autoIncrement:false"`
	PersonType       string    `gorm:"column:person_type;size:2;not null"`
	NameStyle        bool      `gorm:"column:name_style;not null"`
	Title            *string   `gorm:"column:title;size:8"`
	FirstName        string    `gorm:"column:first_name;size:50;not null"`
	MiddleName       *string   `gorm:"column:middle_name;size:50"`
	LastName         string    `gorm:"column:last_name;size:50;not null"`
	EmailPromotion   int       `gorm:"column:email_promotion;not null"`
	RowGUID          uuid.UUID `gorm:"column:rowguid;type:uuid;not null"`
	ModifiedDate     time.Time `gorm:"column:modified_date;not null"`
}

// TableName overrides the default table name.
func (Person) TableName() string { return TablePeople }

// EmailAddress is the login email of a customer.
type EmailAddress struct {
	ID               int32     `gorm:"column:email_address_id;primaryKey"`
	BusinessEntityID int32     `gorm:"column:business_entity_id;not null;uniqueIndex"`
	EmailAddress     string    `gorm:"column:email_address;size:50;not null;uniqueIndex"`
	RowGUID          uuid.UUID `gorm:"column:rowguid;type:uuid;not null"`
	ModifiedDate     time.Time `gorm:"column:modified_date;not null"`
}

// TableName overrides the default table name.
func (EmailAddress) TableName() string { return TableEmailAddresses }

// Credential stores the salted password hash of a customer.
type Credential struct {
	BusinessEntityID int32     `gorm:"column:business_entity_id;primaryKey;autoIncrement:false"`
	PasswordHash     string    `gorm:"column:password_hash;size:128;not null"`
	PasswordSalt     string    `gorm:"column:password_salt;size:32;not null"`
	RowGUID          uuid.UUID `gorm:"column:rowguid;type:uuid;not null"`
	ModifiedDate     time.Time `gorm:"column:modified_date;not null"`
}

// TableName overrides the default table name.
func (Credential) TableName() string { return TablePasswords }
