// Package mapping defines the table translating UCUM atom codes to registry identifiers.
// The table serves two purposes: atoms spelled with characters a registry identifier cannot contain,
// and atoms whose spelling is a valid identifier denoting a different unit in the registry.
package mapping

import (
	"sort"
)

// Table is an immutable UCUM atom code to registry identifier map.
// Zero value is an empty table. Table is safe for concurrent use.
type Table struct {
	entries map[string]string
}

// invalid lists atoms whose UCUM spelling is not a valid registry identifier.
var invalid = map[string]string{
	"cal_[20]": "cal_20",
	"cal_[15]": "cal_15",
	"m[H2O]":   "meter_H2O",
	"m[Hg]":    "meter_Hg",
	"B[SPL]":   "B_SPL",
	"B[V]":     "B_V",
	"B[mV]":    "B_mV",
	"B[uV]":    "B_uV",
	"B[10.nV]": "B_10nV",
	"B[W]":     "B_W",
	"B[kW]":    "B_kW",
	"10*":      "_10",
	"10^":      "_10",
	"'":        "arcminute",
	"''":       "arcsecond",

	"[in_i'H2O]": "in_i_H2O",
	"[in_i'Hg]":  "in_i_Hg",
	"[wood'U]":   "wood_U",
	"[p'diop]":   "p_diop",
	"%[slope]":   "percent_slope",
	"[hnsf'U]":   "hnsf_U",
	"[hp'_X]":    "hp_X",
	"[hp'_C]":    "hp_C",
	"[hp'_M]":    "hp_M",
	"[hp'_Q]":    "hp_Q",

	"[arb'U]":     "arb_U",
	"[USP'U]":     "USP_U",
	"[GPL'U]":     "GPL_U",
	"[MPL'U]":     "MPL_U",
	"[APL'U]":     "APL_U",
	"[beth'U]":    "beth_U",
	"[anti'Xa'U]": "anti_Xa_U",
	"[todd'U]":    "todd_U",
	"[dye'U]":     "dye_U",
	"[smgy'U]":    "smgy_U",
	"[bdsk'U]":    "bdsk_U",
	"[ka'U]":      "ka_U",
	"[knk'U]":     "knk_U",
	"[mclg'U]":    "mclg_U",
	"[tb'U]":      "tb_U",
	"[Amb'a'1'U]": "Amb_a_1_U",
	"[D'ag'U]":    "D_ag_U",

	"[m/s2/Hz^(1/2)]": "meter_per_square_second_per_square_root_of_hertz",
}

// colliding lists atoms whose UCUM spelling means another unit in a registry.
var colliding = map[string]string{
	"B":        "bel",
	"AU":       "astronomical_unit",
	"R":        "roentgen",
	"ph":       "phot",
	"[crd_us]": "cord",
	"[dqt_us]": "US_dry_quart",
	"[dpt_us]": "US_dry_pint",
	"[min_us]": "minim",
	"[min_br]": "imperial_minim",
	"[mi_i]":   "international_mile",
	"[nmi_i]":  "nautical_mile",
	"[pH]":     "pH_value",
	"[S]":      "svedberg",
	"[AU]":     "allergen_unit",
	"[EU]":     "Ehrlich_unit",
	"[g]":      "standard_gravity",
	"[G]":      "gravitational_constant",
	"[h]":      "planck_constant",
}

var defaultTable = func() Table {
	entries := make(map[string]string, len(invalid)+len(colliding))
	for code, id := range invalid {
		entries[code] = id
	}
	for code, id := range colliding {
		entries[code] = id
	}
	return Table{entries}
}()

// Default returns the built-in table.
func Default() Table {
	return defaultTable
}

// New creates table from a copy of entries, empty identifiers are ignored.
func New(entries map[string]string) Table {
	return Table{}.With(entries)
}

// Get returns registry identifier for atom code.
func (t Table) Get(code string) (string, bool) {
	id, has := t.entries[code]
	return id, has
}

// GetOr returns registry identifier for atom code or the code itself.
func (t Table) GetOr(code string) string {
	if id, has := t.entries[code]; has {
		return id
	}
	return code
}

// With returns new table with entries added or replaced by overrides.
// An override with empty identifier removes the entry.
func (t Table) With(overrides map[string]string) Table {
	entries := make(map[string]string, len(t.entries)+len(overrides))
	for code, id := range t.entries {
		entries[code] = id
	}
	for code, id := range overrides {
		if id == "" {
			delete(entries, code)
		} else {
			entries[code] = id
		}
	}
	return Table{entries}
}

// Codes returns sorted atom codes present in the table.
func (t Table) Codes() []string {
	result := make([]string, 0, len(t.entries))
	for code := range t.entries {
		result = append(result, code)
	}
	sort.Strings(result)
	return result
}

func (t Table) Len() int {
	return len(t.entries)
}

// IsColliding tells whether the built-in table maps the code because of a spelling collision.
func IsColliding(code string) bool {
	_, has := colliding[code]
	return has
}
