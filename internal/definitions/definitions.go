// Package definitions loads teams, commands, units and scenarios from YAML
// and builds combat rosters from them.
package definitions

import (
	"bytes"
	_ "embed"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/mine/internal/domain/combat"
	"github.com/KirkDiggler/mine/internal/errors"
)

// Every unit is offered these around its own commands
const (
	FirstCommand = "attack"
	LastCommand  = "pass"
)

//go:embed default.yaml
var defaultDefinitions []byte

// Scalars are kept as text so each one is parsed, and reported, on its own
type document struct {
	Teams     map[string]teamEntry     `yaml:"teams"`
	Commands  map[string]commandEntry  `yaml:"commands"`
	Units     map[string]unitEntry     `yaml:"units"`
	Scenarios map[string]scenarioEntry `yaml:"scenarios"`
}

type teamEntry struct {
	Name   string   `yaml:"name"`
	Allies []string `yaml:"allies"`
}

type commandEntry struct {
	Name              string   `yaml:"name"`
	Description       string   `yaml:"description"`
	Action            string   `yaml:"action"`
	Amount            string   `yaml:"amount"`
	SelfOnly          string   `yaml:"self_only"`
	Offensive         string   `yaml:"offensive"`
	Delay             string   `yaml:"delay"`
	Expiry            string   `yaml:"expiry"`
	DelayDescription  string   `yaml:"delay_description"`
	ExpiryDescription string   `yaml:"expiry_description"`
	Buffs             []string `yaml:"buffs"`
}

type unitEntry struct {
	Name       string   `yaml:"name"`
	UniqueName string   `yaml:"unique_name"`
	Hitpoints  string   `yaml:"hitpoints"`
	Defence    string   `yaml:"defence"`
	Evasion    string   `yaml:"evasion"`
	Speed      string   `yaml:"speed"`
	Melee      string   `yaml:"melee"`
	Ranged     string   `yaml:"ranged"`
	Commands   []string `yaml:"commands"`
}

type scenarioEntry struct {
	Description string           `yaml:"description"`
	Units       []placementEntry `yaml:"units"`
}

type placementEntry struct {
	Unit       string `yaml:"unit"`
	Team       string `yaml:"team"`
	UniqueName string `yaml:"unique_name"`
	Automated  string `yaml:"automated"`
}

// Scenario is a named starting roster
type Scenario struct {
	ID          string
	Description string
	Units       []Placement
}

// Placement puts one unit on one team
type Placement struct {
	Unit       string
	Team       string
	UniqueName string
	Automated  bool
}

// Catalog holds validated definitions by id
type Catalog struct {
	teams     map[string]*combat.Team
	commands  map[string]*combat.CommandDefinition
	units     map[string]combat.UnitDefinition
	scenarios map[string]Scenario
}

// Default returns the built-in catalog
func Default() (*Catalog, error) {
	catalog, err := Parse(defaultDefinitions)
	if err != nil {
		return nil, errors.Wrap(err, "built-in definitions")
	}
	return catalog, nil
}

// Load reads a catalog from a YAML file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeConfiguration, "reading definitions "+path)
	}

	catalog, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "definitions %s", path)
	}
	return catalog, nil
}

// Parse decodes and validates a catalog. Any malformed field or reference to
// a missing id is a configuration error.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeConfiguration, "decoding definitions")
	}

	c := &Catalog{
		teams:     make(map[string]*combat.Team, len(doc.Teams)),
		commands:  make(map[string]*combat.CommandDefinition, len(doc.Commands)),
		units:     make(map[string]combat.UnitDefinition, len(doc.Units)),
		scenarios: make(map[string]Scenario, len(doc.Scenarios)),
	}

	for _, id := range sortedKeys(doc.Teams) {
		entry := doc.Teams[id]
		for _, ally := range entry.Allies {
			if _, ok := doc.Teams[ally]; !ok {
				return nil, errors.Configurationf("team %s: unknown ally %q", id, ally).WithMeta("team", id)
			}
		}
		c.teams[id] = combat.NewTeam(id, nameOr(entry.Name, id), entry.Allies)
	}

	for _, id := range sortedKeys(doc.Commands) {
		command, err := parseCommand(id, doc.Commands[id])
		if err != nil {
			return nil, err
		}
		c.commands[id] = command
	}

	for _, id := range sortedKeys(doc.Units) {
		def, err := parseUnit(id, doc.Units[id])
		if err != nil {
			return nil, err
		}
		for _, ref := range def.Commands {
			if _, ok := c.commands[ref]; !ok {
				return nil, errors.Configurationf("unit %s: unknown command %q", id, ref).WithMeta("unit", id)
			}
		}
		c.units[id] = def
	}

	for _, id := range sortedKeys(doc.Scenarios) {
		scenario, err := c.parseScenario(id, doc.Scenarios[id])
		if err != nil {
			return nil, err
		}
		c.scenarios[id] = scenario
	}

	return c, nil
}

func parseCommand(id string, entry commandEntry) (*combat.CommandDefinition, error) {
	p := fieldParser{kind: "command", id: id}

	command := &combat.CommandDefinition{
		ID:                id,
		Name:              nameOr(entry.Name, id),
		Description:       entry.Description,
		Kind:              combat.ActionKind(strings.ToLower(entry.Action)),
		Amount:            p.integer("amount", entry.Amount),
		SelfOnly:          p.boolean("self_only", entry.SelfOnly, false),
		Offensive:         p.boolean("offensive", entry.Offensive, false),
		Delay:             p.integer("delay", entry.Delay),
		Expiry:            p.integer("expiry", entry.Expiry),
		DelayDescription:  entry.DelayDescription,
		ExpiryDescription: entry.ExpiryDescription,
	}
	for _, buff := range entry.Buffs {
		command.Buffs = append(command.Buffs, combat.AttributeKey(strings.ToLower(buff)))
	}

	if p.err != nil {
		return nil, p.err
	}
	if err := command.Validate(); err != nil {
		return nil, err
	}
	return command, nil
}

func parseUnit(id string, entry unitEntry) (combat.UnitDefinition, error) {
	p := fieldParser{kind: "unit", id: id}

	def := combat.UnitDefinition{
		ID:         id,
		Name:       nameOr(entry.Name, id),
		UniqueName: entry.UniqueName,
		Hitpoints:  p.integer("hitpoints", entry.Hitpoints),
		Defence:    p.integer("defence", entry.Defence),
		Evasion:    p.integer("evasion", entry.Evasion),
		Speed:      p.integer("speed", entry.Speed),
		Melee:      p.integer("melee", entry.Melee),
		Ranged:     p.integer("ranged", entry.Ranged),
		Commands:   entry.Commands,
	}
	if p.err != nil {
		return combat.UnitDefinition{}, p.err
	}
	if def.Hitpoints < 1 {
		return combat.UnitDefinition{}, errors.Configurationf("unit %s: hitpoints must be positive", id).WithMeta("unit", id)
	}
	if def.Speed < 1 {
		return combat.UnitDefinition{}, errors.Configurationf("unit %s: speed must be positive", id).WithMeta("unit", id)
	}
	return def, nil
}

func (c *Catalog) parseScenario(id string, entry scenarioEntry) (Scenario, error) {
	if len(entry.Units) == 0 {
		return Scenario{}, errors.Configurationf("scenario %s has no units", id).WithMeta("scenario", id)
	}

	scenario := Scenario{ID: id, Description: entry.Description}
	for i, raw := range entry.Units {
		p := fieldParser{kind: "scenario", id: id}
		placement := Placement{
			Unit:       raw.Unit,
			Team:       raw.Team,
			UniqueName: raw.UniqueName,
			Automated:  p.boolean("automated", raw.Automated, true),
		}
		if p.err != nil {
			return Scenario{}, p.err
		}
		if _, ok := c.units[placement.Unit]; !ok {
			return Scenario{}, errors.Configurationf("scenario %s: entry %d: unknown unit %q", id, i, placement.Unit).
				WithMeta("scenario", id)
		}
		if _, ok := c.teams[placement.Team]; !ok {
			return Scenario{}, errors.Configurationf("scenario %s: entry %d: unknown team %q", id, i, placement.Team).
				WithMeta("scenario", id)
		}
		scenario.Units = append(scenario.Units, placement)
	}
	return scenario, nil
}

// Team returns a team by id
func (c *Catalog) Team(id string) (*combat.Team, error) {
	team, ok := c.teams[id]
	if !ok {
		return nil, errors.Configurationf("unknown team %q", id)
	}
	return team, nil
}

// Command returns a command by id
func (c *Catalog) Command(id string) (*combat.CommandDefinition, error) {
	command, ok := c.commands[id]
	if !ok {
		return nil, errors.Configurationf("unknown command %q", id)
	}
	return command, nil
}

// UnitDefinition returns a unit's stat block by id
func (c *Catalog) UnitDefinition(id string) (combat.UnitDefinition, error) {
	def, ok := c.units[id]
	if !ok {
		return combat.UnitDefinition{}, errors.Configurationf("unknown unit %q", id)
	}
	return def, nil
}

// Scenario returns a scenario by id
func (c *Catalog) Scenario(id string) (Scenario, error) {
	scenario, ok := c.scenarios[id]
	if !ok {
		return Scenario{}, errors.Configurationf("unknown scenario %q", id)
	}
	return scenario, nil
}

// ScenarioIDs lists every scenario id in order
func (c *Catalog) ScenarioIDs() []string { return sortedKeys(c.scenarios) }

// TeamIDs lists every team id in order
func (c *Catalog) TeamIDs() []string { return sortedKeys(c.teams) }

// NewUnit builds a fresh unit. Its commands are attack, then the unit's own
// commands, then pass.
func (c *Catalog) NewUnit(unitID, teamID string, automated bool) (*combat.Unit, error) {
	def, err := c.UnitDefinition(unitID)
	if err != nil {
		return nil, err
	}
	team, err := c.Team(teamID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(def.Commands)+2)
	ids = append(ids, FirstCommand)
	for _, id := range def.Commands {
		if id != FirstCommand && id != LastCommand {
			ids = append(ids, id)
		}
	}
	ids = append(ids, LastCommand)

	commands := make([]*combat.CommandDefinition, 0, len(ids))
	for _, id := range ids {
		command, err := c.Command(id)
		if err != nil {
			return nil, errors.Wrapf(err, "unit %s", unitID)
		}
		commands = append(commands, command)
	}

	return combat.NewUnit(def, team, commands, automated), nil
}

// BuildRoster builds a scenario's units in order. Unless interactive, every
// unit is automated regardless of its placement.
func (c *Catalog) BuildRoster(scenarioID string, interactive bool) ([]*combat.Unit, error) {
	scenario, err := c.Scenario(scenarioID)
	if err != nil {
		return nil, err
	}

	roster := make([]*combat.Unit, 0, len(scenario.Units))
	for _, placement := range scenario.Units {
		automated := placement.Automated || !interactive
		unit, err := c.NewUnit(placement.Unit, placement.Team, automated)
		if err != nil {
			return nil, errors.Wrapf(err, "scenario %s", scenarioID)
		}
		if placement.UniqueName != "" {
			unit.SetUniqueName(placement.UniqueName)
		}
		roster = append(roster, unit)
	}
	return roster, nil
}

// fieldParser keeps the first parse failure so a whole entry can be read in
// one expression
type fieldParser struct {
	kind string
	id   string
	err  error
}

func (p *fieldParser) integer(field, value string) int {
	if value == "" || p.err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		p.err = errors.Configurationf("%s %s: %s must be an integer, got %q", p.kind, p.id, field, value).
			WithMeta(p.kind, p.id).
			WithMeta("field", field)
		return 0
	}
	if n < -combat.MaxAmount || n > combat.MaxAmount {
		p.err = errors.Configurationf("%s %s: %s must be within [-%d, %d], got %d",
			p.kind, p.id, field, combat.MaxAmount, combat.MaxAmount, n).
			WithMeta(p.kind, p.id).
			WithMeta("field", field)
		return 0
	}
	return n
}

func (p *fieldParser) boolean(field, value string, fallback bool) bool {
	if value == "" || p.err != nil {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true":
		return true
	case "false":
		return false
	}
	p.err = errors.Configurationf("%s %s: %s must be true or false, got %q", p.kind, p.id, field, value).
		WithMeta(p.kind, p.id).
		WithMeta("field", field)
	return fallback
}

func nameOr(name, id string) string {
	if name == "" {
		return id
	}
	return name
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
