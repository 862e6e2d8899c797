package twsave

import "fmt"

// EntityID is a 64-bit campaign object identifier: a type tag in the high
// 32 bits and a unique value in the low 32 bits. Zero means "no entity".
type EntityID uint64

// EntityType is the tag stored in the high 32 bits of an EntityID.
type EntityType uint32

// Entity type tags used by the save format.
const (
	TypeNone            EntityType = 0
	TypeHero            EntityType = 1
	TypeParty           EntityType = 2
	TypeSettlement      EntityType = 3
	TypeClan            EntityType = 4
	TypeKingdom         EntityType = 5
	TypeFaction         EntityType = 6
	TypeArmy            EntityType = 10
	TypeMapEvent        EntityType = 11
	TypeSiege           EntityType = 12
	TypeWorkshop        EntityType = 20
	TypeCaravan         EntityType = 21
	TypeVillage         EntityType = 22
	TypeTown            EntityType = 23
	TypeCastle          EntityType = 24
	TypeQuest           EntityType = 30
	TypeIssue           EntityType = 31
	TypeItemObject      EntityType = 50
	TypeItemRoster      EntityType = 51
	TypeEquipment       EntityType = 52
	TypeFleet           EntityType = 100
	TypeShip            EntityType = 101
	TypePort            EntityType = 102
	TypeSeaRoute        EntityType = 103
	TypeNavalBattle     EntityType = 104
	TypeCharacterObject EntityType = 200
	TypeCultureObject   EntityType = 201
	TypePolicyObject    EntityType = 202
	TypeBuildingType    EntityType = 203
	TypeCustomBase      EntityType = 1000
)

// NewEntityID builds an id from a type tag and a unique value.
func NewEntityID(tag EntityType, unique uint32) EntityID {
	return EntityID(uint64(tag)<<32 | uint64(unique))
}

// Type returns the type tag in the high 32 bits.
func (id EntityID) Type() EntityType {
	return EntityType(id >> 32)
}

// Unique returns the unique value in the low 32 bits.
func (id EntityID) Unique() uint32 {
	return uint32(id)
}

// IsZero reports whether the id refers to no entity.
func (id EntityID) IsZero() bool {
	return id == 0
}

// String formats the id as "tag-unique", or "none" for the zero id.
func (id EntityID) String() string {
	if id.IsZero() {
		return "none"
	}
	return fmt.Sprintf("%d-%d", id.Type(), id.Unique())
}
