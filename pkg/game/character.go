package game

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Character is the full set of survival attributes rolled for one
// player. Values are display strings, fixed at generation time. The
// biography is filled in separately by the narrative provider and may
// stay empty when generation fails.
type Character struct {
	Gender     string `json:"gender"`
	Body       string `json:"body"`
	Trait      string `json:"trait"`
	Profession string `json:"profession"`
	Health     string `json:"health"`
	Hobby      string `json:"hobby"`
	Phobia     string `json:"phobia"`
	Gear       string `json:"gear"`
	Backpack   string `json:"backpack"`
	Fact       string `json:"fact"`
	Ability    string `json:"ability,omitempty"`
	Biography  string `json:"biography,omitempty"`
}

// Attribute returns the display value of one slot.
func (c *Character) Attribute(a Attribute) string {
	switch a {
	case AttrGender:
		return c.Gender
	case AttrBody:
		return c.Body
	case AttrTrait:
		return c.Trait
	case AttrProfession:
		return c.Profession
	case AttrHealth:
		return c.Health
	case AttrHobby:
		return c.Hobby
	case AttrPhobia:
		return c.Phobia
	case AttrGear:
		return c.Gear
	case AttrBackpack:
		return c.Backpack
	case AttrFact:
		return c.Fact
	case AttrAbility:
		return c.Ability
	default:
		return ""
	}
}

// Sheet renders the full dossier with every real value visible. Used
// for narrative prompts, never shown to other players.
func (c *Character) Sheet() string {
	var b strings.Builder
	if c.Biography != "" {
		b.WriteString(c.Biography)
		b.WriteString("\n")
	}
	for _, a := range Attributes() {
		if a == AttrAbility && c.Ability == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", a.Label(), c.Attribute(a))
	}
	return b.String()
}

// RollCharacter generates the structured attribute set from the data
// tables. It is pure value generation; the biography is requested by
// the session afterwards so a narrative failure never corrupts the
// rolled attributes.
func RollCharacter(r *rand.Rand) Character {
	gender := weightedChoice(r, genders)
	affix := weightedChoice(r, genderAffixes)
	bucket := weightedChoice(r, ageBuckets)
	age := intBetween(r, bucket.min, bucket.max)

	body := weightedChoice(r, bodyTypes)
	height := rollHeight(r, age, gender)

	health := weightedChoice(r, healthStates)
	if health != healthyState {
		health = fmt.Sprintf("%s (%s)", health, weightedChoice(r, healthStages))
	}

	return Character{
		Gender:     fmt.Sprintf("%s, %s (%d y.o.)", gender, affix, age),
		Body:       fmt.Sprintf("%s (%d cm)", body, height),
		Trait:      uniformChoice(r, traits),
		Profession: fmt.Sprintf("%s (%s)", uniformChoice(r, professions), weightedChoice(r, skillLevels)),
		Health:     health,
		Hobby:      fmt.Sprintf("%s (%s)", uniformChoice(r, hobbies), weightedChoice(r, skillLevels)),
		Phobia:     uniformChoice(r, phobias),
		Gear:       uniformChoice(r, largeItems),
		Backpack:   rollBackpack(r),
		Fact:       uniformChoice(r, facts),
		Ability:    rollAbility(r),
	}
}

// rollHeight draws from the age bracket's normal distribution, shifts
// for the female category and clamps to the global range.
func rollHeight(r *rand.Rand, age int, gender string) int {
	bracket := heightBracketElder
	for _, b := range heightBrackets {
		if age < b.maxAge {
			bracket = b
			break
		}
	}

	height := normalInt(r, bracket.mean, bracket.stddev)
	if gender == "Female" {
		height += heightFemaleShift
	}
	return clampInt(height, heightMin, heightMax)
}

func rollBackpack(r *rand.Rand) string {
	count := intBetween(r, 1, backpackMaxItems)
	items := sampleWithoutReplacement(r, backpackItems, count)

	parts := make([]string, 0, len(items))
	for _, item := range items {
		if item.max > 0 {
			parts = append(parts, fmt.Sprintf("%s (x%d)", item.name, intBetween(r, item.min, item.max)))
		} else {
			parts = append(parts, item.name)
		}
	}
	return strings.Join(parts, ", ")
}

func rollAbility(r *rand.Rand) string {
	if r.Float64() >= specialAbilityChance {
		return ""
	}
	return uniformChoice(r, specialAbilities)
}
