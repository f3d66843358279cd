// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// An order is stored as one row in orders plus ordered child rows in order_boxes and
// order_line_items. Rule warnings are kept as a jsonb document on the order row.
package orderrepo

import (
	"encoding/json"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Totals are denormalized for the read side; the domain recomputes them on load.
type OrderDTO struct {
	ID                     uuid.UUID           `gorm:"type:uuid;primaryKey"`
	MemberCode             string              `gorm:"type:varchar(64);not null;default:''"`
	SubmitterApproved      bool                `gorm:"not null"`
	Currency               string              `gorm:"type:char(3);not null"`
	Status                 string              `gorm:"type:varchar(32);not null;index"`
	ShippingMode           string              `gorm:"type:varchar(8);not null"`
	TotalVolume            decimal.Decimal     `gorm:"type:numeric(18,6);not null"`
	TotalWeight            decimal.Decimal     `gorm:"type:numeric(18,2);not null"`
	TotalAmount            decimal.Decimal     `gorm:"type:numeric(18,2);not null"`
	ReferenceAmount        decimal.NullDecimal `gorm:"type:numeric(18,2)"`
	RequiresExtraRecipient bool                `gorm:"not null"`
	HasNoMemberCode        bool                `gorm:"not null"`
	HSCodeValidated        bool                `gorm:"column:hs_code_validated;not null"`
	Warnings               datatypes.JSON      `gorm:"type:jsonb;not null"`
	CreatedAt              time.Time           `gorm:"not null"`
	UpdatedAt              time.Time           `gorm:"not null"`
	Version                int64               `gorm:"not null"`
	Boxes                  []BoxDTO            `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	LineItems              []LineItemDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// BoxDTO is one carton of an order. Position keeps insertion order.
// Lengths and weight share the scale kernel.NewDimensions rounds to.
type BoxDTO struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position int             `gorm:"not null"`
	Width    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Height   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Depth    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Weight   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	VolumeM3 decimal.Decimal `gorm:"column:volume_m3;type:numeric(14,6);not null"`
}

func (BoxDTO) TableName() string {
	return "order_boxes"
}

// LineItemDTO is one declared product line. Unit dimensions are optional.
type LineItemDTO struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	Position    int                 `gorm:"not null"`
	Description string              `gorm:"type:varchar(255);not null"`
	Quantity    int                 `gorm:"not null"`
	UnitPrice   decimal.Decimal     `gorm:"type:numeric(18,2);not null"`
	HSCode      string              `gorm:"column:hs_code;type:varchar(16);not null;default:''"`
	Width       decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Height      decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Depth       decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Weight      decimal.NullDecimal `gorm:"type:numeric(10,2)"`
}

func (LineItemDTO) TableName() string {
	return "order_line_items"
}

// fromDomain converts an order aggregate with its boxes and line items.
func fromDomain(o *order.Order) (OrderDTO, error) {
	orderID := o.ID().Bytes()

	warnings := o.Warnings()
	if warnings == nil {
		warnings = []order.Warning{}
	}
	rawWarnings, err := json.Marshal(warnings)
	if err != nil {
		return OrderDTO{}, err
	}

	boxes := make([]BoxDTO, 0, len(o.Boxes()))
	for i, b := range o.Boxes() {
		d := b.Dimensions()
		boxes = append(boxes, BoxDTO{
			ID:       b.ID().Bytes(),
			OrderID:  orderID,
			Position: i,
			Width:    d.Width(),
			Height:   d.Height(),
			Depth:    d.Depth(),
			Weight:   d.Weight(),
			VolumeM3: b.VolumeM3(),
		})
	}

	items := make([]LineItemDTO, 0, len(o.LineItems()))
	for i, item := range o.LineItems() {
		dto := LineItemDTO{
			ID:          item.ID().Bytes(),
			OrderID:     orderID,
			Position:    i,
			Description: item.Description(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
			HSCode:      item.HSCode(),
		}
		if d := item.Dimensions(); d != nil {
			dto.Width = decimal.NewNullDecimal(d.Width())
			dto.Height = decimal.NewNullDecimal(d.Height())
			dto.Depth = decimal.NewNullDecimal(d.Depth())
			dto.Weight = decimal.NewNullDecimal(d.Weight())
		}
		items = append(items, dto)
	}

	return OrderDTO{
		ID:                     orderID,
		MemberCode:             o.MemberCode(),
		SubmitterApproved:      o.SubmitterApproved(),
		Currency:               o.Currency(),
		Status:                 o.Status().String(),
		ShippingMode:           o.ShippingMode().String(),
		TotalVolume:            o.TotalVolume(),
		TotalWeight:            o.TotalWeight(),
		TotalAmount:            o.TotalAmount(),
		ReferenceAmount:        o.ReferenceAmount(),
		RequiresExtraRecipient: o.RequiresExtraRecipient(),
		HasNoMemberCode:        o.HasNoMemberCode(),
		HSCodeValidated:        o.HSCodeValidated(),
		Warnings:               datatypes.JSON(rawWarnings),
		CreatedAt:              o.CreatedAt(),
		UpdatedAt:              o.UpdatedAt(),
		Version:                o.Version(),
		Boxes:                  boxes,
		LineItems:              items,
	}, nil
}

// toDomain rebuilds the aggregate. Children must already be sorted by Position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	mode, err := order.ParseShippingMode(dto.ShippingMode)
	if err != nil {
		return nil, err
	}

	var warnings []order.Warning
	if len(dto.Warnings) > 0 {
		if err = json.Unmarshal(dto.Warnings, &warnings); err != nil {
			return nil, err
		}
	}

	boxes := make([]*order.Box, 0, len(dto.Boxes))
	for _, b := range dto.Boxes {
		box, boxErr := boxToDomain(b)
		if boxErr != nil {
			return nil, boxErr
		}
		boxes = append(boxes, box)
	}

	items := make([]*order.LineItem, 0, len(dto.LineItems))
	for _, i := range dto.LineItems {
		item, itemErr := lineItemToDomain(i)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                     id,
		MemberCode:             dto.MemberCode,
		SubmitterApproved:      dto.SubmitterApproved,
		Currency:               dto.Currency,
		Status:                 status,
		ShippingMode:           mode,
		Boxes:                  boxes,
		LineItems:              items,
		RequiresExtraRecipient: dto.RequiresExtraRecipient,
		HasNoMemberCode:        dto.HasNoMemberCode,
		HSCodeValidated:        dto.HSCodeValidated,
		Warnings:               warnings,
		ReferenceAmount:        dto.ReferenceAmount,
		CreatedAt:              dto.CreatedAt,
		UpdatedAt:              dto.UpdatedAt,
		Version:                dto.Version,
	})
}

func boxToDomain(dto BoxDTO) (*order.Box, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	dims, err := kernel.NewDimensions(dto.Width, dto.Height, dto.Depth, dto.Weight)
	if err != nil {
		return nil, err
	}
	return order.NewBox(id, dims)
}

func lineItemToDomain(dto LineItemDTO) (*order.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var dims *kernel.Dimensions
	if dto.Width.Valid && dto.Height.Valid && dto.Depth.Valid {
		d, dimsErr := kernel.NewDimensions(
			dto.Width.Decimal, dto.Height.Decimal, dto.Depth.Decimal, dto.Weight.Decimal)
		if dimsErr != nil {
			return nil, dimsErr
		}
		dims = &d
	}

	return order.NewLineItem(id, dto.Description, dto.Quantity, dto.UnitPrice, dto.HSCode, dims)
}
