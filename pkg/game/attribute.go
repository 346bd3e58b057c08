package game

import "fmt"

// Attribute identifies one slot of a character card. The enumeration
// replaces the string-keyed attribute lookup of earlier prototypes, so
// accessor switches are checked at compile time.
type Attribute int

const (
	AttrGender Attribute = iota
	AttrBody
	AttrTrait
	AttrProfession
	AttrHealth
	AttrHobby
	AttrPhobia
	AttrGear
	AttrBackpack
	AttrFact
	AttrAbility

	numAttributes
)

// Attributes lists every attribute in card order.
func Attributes() []Attribute {
	out := make([]Attribute, 0, numAttributes)
	for a := Attribute(0); a < numAttributes; a++ {
		out = append(out, a)
	}
	return out
}

// String returns the wire/storage name of the attribute.
func (a Attribute) String() string {
	switch a {
	case AttrGender:
		return "gender"
	case AttrBody:
		return "body"
	case AttrTrait:
		return "trait"
	case AttrProfession:
		return "profession"
	case AttrHealth:
		return "health"
	case AttrHobby:
		return "hobby"
	case AttrPhobia:
		return "phobia"
	case AttrGear:
		return "gear"
	case AttrBackpack:
		return "backpack"
	case AttrFact:
		return "fact"
	case AttrAbility:
		return "ability"
	default:
		return fmt.Sprintf("attribute(%d)", int(a))
	}
}

// Label returns the human-readable card label of the attribute.
func (a Attribute) Label() string {
	switch a {
	case AttrGender:
		return "Gender"
	case AttrBody:
		return "Body"
	case AttrTrait:
		return "Trait"
	case AttrProfession:
		return "Profession"
	case AttrHealth:
		return "Health"
	case AttrHobby:
		return "Hobby"
	case AttrPhobia:
		return "Phobia"
	case AttrGear:
		return "Gear"
	case AttrBackpack:
		return "Backpack"
	case AttrFact:
		return "Fact"
	case AttrAbility:
		return "Special ability"
	default:
		return "Unknown"
	}
}

// ParseAttribute maps a wire name back to its Attribute.
func ParseAttribute(name string) (Attribute, error) {
	for a := Attribute(0); a < numAttributes; a++ {
		if a.String() == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: attribute %q", ErrUnknownAttribute, name)
}
