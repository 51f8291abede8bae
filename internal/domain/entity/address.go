package entity

import (
	"time"

	"github.com/google/uuid"
)

// Address is a postal address.
type Address struct {
	ID              int32     `gorm:"column:address_id;primaryKey"`
	AddressLine1    string    `gorm:"column:address_line1;size:60;not null"`
	AddressLine2    *string   `gorm:"column:address_line2;size:60"`
	City            string    `gorm:"column:city;size:30;not null"`
	StateProvinceID int32     `gorm:"column:state_province_id;not null"`
	PostalCode      string    `gorm:"column:postal_code;size:15;not null"`
	RowGUID         uuid.UUID `gorm:"column:rowguid;type:uuid;not null"`
	ModifiedDate    time.Time `gorm:"column:modified_date;not null"`
}

// TableName overrides the default table name.
func (Address) TableName() string { return TableAddresses }

// BusinessEntityAddress links a customer to an address of a given type.
type BusinessEntityAddress struct {
	BusinessEntityID int32     `gorm:"column:business_entity_id;primaryKey;autoIncrement:false"`
	AddressID        int32     `gorm:"column:address_id;primaryKey;autoIncrement:false"`
	AddressTypeID    int32     `gorm:"column:address_type_id;not null"`
	RowGUID          uuid.UUID `gorm:"column:rowguid;type:uuid;not null"`
	ModifiedDate     time.Time `gorm:"column:modified_date;not null"`
}

// TableName overrides the default table name.
func (BusinessEntityAddress) TableName() string { return TableBusinessEntityAddresses }

// StateProvince is reference data for address forms.
type StateProvince struct {
	ID                int32  `gorm:"column:state_province_id;primaryKey"`
	StateProvinceCode string `gorm:"column:state_province_code;size:3;not null"`
	CountryRegionCode string `gorm:"column:country_region_code;size:3;not null"`
	Name              string `gorm:"column:name;size:50;not null"`
}

// TableName overrides the default table name.
func (StateProvince) TableName() string { return TableStateProvinces }

// AddressType is reference data for address forms (Home, Shipping, ...).
type AddressType struct {
	ID   int32  `gorm:"column:address_type_id;primaryKey"`
	Name string `gorm:"column:name;size:50;not null"`
}

// TableName overrides the default table name.
func (AddressType) TableName() string { return TableAddressTypes }
