package inventory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxDurability is what Repair restores a weapon to
	MaxDurability = 100
	// wearPerUse is how much durability one Use costs
	wearPerUse = 10
)

var (
	// ErrNotAWeapon is returned by weapon operations called on a plain item
	ErrNotAWeapon = errors.New("item is not a weapon")
	// ErrBroken is returned when using a weapon whose durability is already zero
	ErrBroken = errors.New("weapon is broken")
)

// Rarity grades how hard an item is to find
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// WeaponStats is the capability payload carried by weapons
type WeaponStats struct {
	Damage     int `json:"damage"`
	Durability int `json:"durability"`
}

// Item is a catalogue entry. Weapon is nil for plain items.
// Methods never modify the receiver.
type Item struct {
	Name   string       `json:"name"`
	Weight float64      `json:"weight"`
	Rarity Rarity       `json:"rarity"`
	Weapon *WeaponStats `json:"weapon,omitempty"`
}

// NewItem creates a plain item
func NewItem(name string, weight float64, rarity Rarity) Item {
	return Item{Name: name, Weight: weight, Rarity: rarity}
}

// NewWeapon creates an item carrying weapon stats
func NewWeapon(name string, weight float64, rarity Rarity, damage, durability int) Item {
	item := NewItem(name, weight, rarity)
	item.Weapon = &WeaponStats{Damage: damage, Durability: durability}
	return item
}

// IsWeapon reports whether the item carries weapon stats
func (i Item) IsWeapon() bool {
	return i.Weapon != nil
}

// Info describes the item, appending weapon stats when present
func (i Item) Info() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s, Weight: %s kg, Rarity: %s",
		i.Name, strconv.FormatFloat(i.Weight, 'f', -1, 64), i.Rarity)

	if i.Weapon != nil {
		fmt.Fprintf(&b, ", Damage: %d, Durability: %d%%", i.Weapon.Damage, i.Weapon.Durability)
	}

	return b.String()
}

// WithWeight returns a copy of the item with a new weight
func (i Item) WithWeight(weight float64) Item {
	out := i.clone()
	out.Weight = weight
	return out
}

// Use returns a copy with durability lowered by 10, never below zero.
// A weapon already at zero durability fails with ErrBroken.
func (i Item) Use() (Item, error) {
	if i.Weapon == nil {
		return i, ErrNotAWeapon
	}
	if i.Weapon.Durability <= 0 {
		return i, fmt.Errorf("%s: %w", i.Name, ErrBroken)
	}

	out := i.clone()
	out.Weapon.Durability = max(0, out.Weapon.Durability-wearPerUse)
	return out, nil
}

// Repair returns a copy with durability restored to MaxDurability
func (i Item) Repair() (Item, error) {
	if i.Weapon == nil {
		return i, ErrNotAWeapon
	}

	out := i.clone()
	out.Weapon.Durability = MaxDurability
	return out, nil
}

func (i Item) clone() Item {
	if i.Weapon != nil {
		stats := *i.Weapon
		i.Weapon = &stats
	}
	return i
}
