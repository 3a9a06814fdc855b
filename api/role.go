// Package api defines the data contracts shared across crest: the closed
// role enumeration carried by scene objects, the friendly-name tables used
// when labeling layers, and the persisted template file format.
//
// Everything here is pure data. Behavior lives in internal packages; any
// component that needs to know "is this a color layer" tests membership via
// Role.Family rather than string-matching attributes ad hoc.
package api

import "strings"

// Role is the semantic tag on a scene object identifying which external
// value it represents. The set is closed: an unrecognized value is treated
// as absent and the object stays static.
type Role string

const (
	// Color roles, each carried by a filled rectangle.
	RolePrimaryColor   Role = "primary_color"
	RoleSecondaryColor Role = "secondary_color"
	RoleTertiaryColor  Role = "tertiary_color"
	RoleCustomColor    Role = "custom_color"
	RoleUserColor1     Role = "user_color_1"
	RoleUserColor2     Role = "user_color_2"
	RoleUserColor3     Role = "user_color_3"
	RoleUserColor4     Role = "user_color_4"

	// Text roles, carried by text objects. RoleText is the generic bucket,
	// disambiguated by the object's valueKey.
	RoleText           Role = "text"
	RoleTeamName       Role = "team_name"
	RoleJerseyNumber   Role = "jersey_number"
	RoleFirstName      Role = "first_name"
	RoleLastName       Role = "last_name"
	RoleAdditionalText Role = "additional_text"

	// Image roles.
	RoleTeamLogo Role = "team_logo"
)

// Family is the coarse grouping of roles by underlying primitive type and
// update mechanism.
type Family int

const (
	FamilyNone Family = iota // static object, no role
	FamilyColor
	FamilyText
	FamilyImage
)

// Value keys for the generic text role. A valueKey is only meaningful on a
// text object and distinguishes which text slot the object fills when two
// objects share the coarse "text" role.
const (
	ValueKeyName           = "name"
	ValueKeyTeamName       = "team name"
	ValueKeyJerseyNumber   = "jersey number"
	ValueKeyFirstName      = "first name"
	ValueKeyLastName       = "last name"
	ValueKeyAdditionalText = "additional text"
)

var colorRoles = map[Role]bool{
	RolePrimaryColor:   true,
	RoleSecondaryColor: true,
	RoleTertiaryColor:  true,
	RoleCustomColor:    true,
	RoleUserColor1:     true,
	RoleUserColor2:     true,
	RoleUserColor3:     true,
	RoleUserColor4:     true,
}

var textRoles = map[Role]bool{
	RoleText:           true,
	RoleTeamName:       true,
	RoleJerseyNumber:   true,
	RoleFirstName:      true,
	RoleLastName:       true,
	RoleAdditionalText: true,
}

// Family returns the role family, or FamilyNone for an empty or
// unrecognized role.
func (r Role) Family() Family {
	switch {
	case colorRoles[r]:
		return FamilyColor
	case textRoles[r]:
		return FamilyText
	case r == RoleTeamLogo:
		return FamilyImage
	default:
		return FamilyNone
	}
}

// Valid reports whether r is a member of the closed enumeration.
func (r Role) Valid() bool { return r.Family() != FamilyNone }

// displayNames maps each role to its human-readable layer label.
var displayNames = map[Role]string{
	RolePrimaryColor:   "Primary Color",
	RoleSecondaryColor: "Secondary Color",
	RoleTertiaryColor:  "Tertiary Color",
	RoleCustomColor:    "Custom Color",
	RoleUserColor1:     "User Color 1",
	RoleUserColor2:     "User Color 2",
	RoleUserColor3:     "User Color 3",
	RoleUserColor4:     "User Color 4",
	RoleText:           "Text",
	RoleTeamName:       "Team Name",
	RoleJerseyNumber:   "Jersey Number",
	RoleFirstName:      "First Name",
	RoleLastName:       "Last Name",
	RoleAdditionalText: "Additional Text",
	RoleTeamLogo:       "Team Logo",
}

// DisplayName returns the friendly label for r, or "" if r is not a member
// of the enumeration.
func (r Role) DisplayName() string { return displayNames[r] }

// colorNameToRole is the reverse of displayNames, color roles only. Used by
// normalization to infer a role on documents saved before role inference
// existed, where only the display name survived.
var colorNameToRole = func() map[string]Role {
	m := make(map[string]Role, len(colorRoles))
	for r := range colorRoles {
		m[displayNames[r]] = r
	}
	return m
}()

// ColorRoleForDisplayName returns the color role whose friendly label is
// name, if any.
func ColorRoleForDisplayName(name string) (Role, bool) {
	r, ok := colorNameToRole[name]
	return r, ok
}

// valueKeyNames maps value keys to the friendly labels shown in layer
// lists and report output.
var valueKeyNames = map[string]string{
	ValueKeyName:           "Name",
	ValueKeyTeamName:       "Team Name",
	ValueKeyJerseyNumber:   "Jersey Number",
	ValueKeyFirstName:      "First Name",
	ValueKeyLastName:       "Last Name",
	ValueKeyAdditionalText: "Additional Text",
}

// ValueKeyDisplayName returns the friendly label for a value key. Unknown
// keys are title-cased as-is so a report row is never blank.
func ValueKeyDisplayName(key string) string {
	if n, ok := valueKeyNames[key]; ok {
		return n
	}
	return Capitalize(key)
}

// Capitalize upper-cases the first letter of each space-separated word.
// Used as the last-resort display name for untagged primitives.
func Capitalize(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ColorRoles returns the color roles in a fixed, presentation-friendly
// order (primary first, user slots last).
func ColorRoles() []Role {
	return []Role{
		RolePrimaryColor, RoleSecondaryColor, RoleTertiaryColor,
		RoleCustomColor,
		RoleUserColor1, RoleUserColor2, RoleUserColor3, RoleUserColor4,
	}
}

// TextRoles returns the text roles, generic bucket first.
func TextRoles() []Role {
	return []Role{
		RoleText, RoleTeamName, RoleJerseyNumber,
		RoleFirstName, RoleLastName, RoleAdditionalText,
	}
}
