package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sections groups the planning-related parts of the profile's preferences
// mapping. Extra keys in the file are ignored.
type Sections struct {
	PlanningPreferences RawPreferences   `json:"planning_preferences" yaml:"planning_preferences"`
	EnergyProfile       []RawEnergyEntry `json:"energy_profile" yaml:"energy_profile"`
}

// UserProfile is the on-disk user profile. Only the preference sections are
// interpreted here; identity fields are carried through for display.
type UserProfile struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Roles       []string `json:"roles,omitempty" yaml:"roles,omitempty"`
	Preferences Sections `json:"preferences" yaml:"preferences"`
	Narrative   string   `json:"narrative,omitempty" yaml:"narrative,omitempty"`
}

// LoadUserProfile reads a profile file, accepting JSON or YAML by extension.
// A missing file yields an empty profile so that defaults apply everywhere.
func LoadUserProfile(path string) (UserProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return UserProfile{}, nil
		}
		return UserProfile{}, fmt.Errorf("failed to read user profile: %w", err)
	}

	var profile UserProfile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &profile); err != nil {
			return UserProfile{}, fmt.Errorf("failed to parse user profile %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &profile); err != nil {
			return UserProfile{}, fmt.Errorf("failed to parse user profile %s: %w", path, err)
		}
	}

	return profile, nil
}

// Planning resolves the profile's planning preferences and energy profile,
// applying defaults for anything the file omits.
func (p UserProfile) Planning() (Preferences, []EnergyEntry, error) {
	prefs, err := ParsePreferences(p.Preferences.PlanningPreferences)
	if err != nil {
		return Preferences{}, nil, err
	}
	energy, err := ParseEnergyProfile(p.Preferences.EnergyProfile)
	if err != nil {
		return Preferences{}, nil, err
	}
	return prefs, energy, nil
}
