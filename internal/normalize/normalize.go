// Package normalize converts raw survey records into canonical bodies.
//
// The raw data is hand-entered and messy. Fields with a safe default recover
// from bad values with a logged warning; everything else fails the run, on
// the grounds that a wrong guess in the canonical file is worse than no file.
package normalize

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wrenholt/galaxydb/internal/galaxy"
	"github.com/wrenholt/galaxydb/internal/survey"
)

// defaultPlanetLength is the fallback day length in hours.
const defaultPlanetLength = 24

// Normalizer converts raw survey records into canonical bodies.
type Normalizer struct {
	log *zap.Logger
}

// New creates a Normalizer that reports recoverable anomalies to log.
func New(log *zap.Logger) *Normalizer {
	return &Normalizer{log: log}
}

// Galaxy normalizes every body in the survey and assembles the canonical
// dataset. Systems and bodies are walked in sorted order, so diagnostics and
// output are the same from run to run. The first unrecoverable record fails
// the whole conversion.
func (n *Normalizer) Galaxy(raw survey.Survey) (galaxy.Galaxy, error) {
	var bodies []galaxy.Body
	for _, systemName := range raw.SystemNames() {
		system := raw[systemName]
		bodyNames := make([]string, 0, len(system))
		for name := range system {
			bodyNames = append(bodyNames, name)
		}
		sort.Strings(bodyNames)
		for _, bodyName := range bodyNames {
			b, err := n.Body(systemName, bodyName, system[bodyName])
			if err != nil {
				return nil, err
			}
			bodies = append(bodies, b)
		}
	}
	return galaxy.Assemble(bodies), nil
}

// Body converts one raw record into its canonical form.
func (n *Normalizer) Body(system, name string, rec survey.Record) (galaxy.Body, error) {
	b := galaxy.Body{System: system, Name: name}

	var err error
	if b.Atmosphere, err = n.lowered(system, name, rec, "atmosphere"); err != nil {
		return b, err
	}
	if b.Temperature, err = n.lowered(system, name, rec, "temperature"); err != nil {
		return b, err
	}
	if b.Water, err = n.lowered(system, name, rec, "water"); err != nil {
		return b, err
	}
	if b.Magnetosphere, err = n.lowered(system, name, rec, "magnetosphere"); err != nil {
		return b, err
	}
	if b.Type, err = rec.String("type"); err != nil {
		return b, fmt.Errorf("body %s/%s: %w", system, name, err)
	}

	if b.Fauna, err = n.intField(system, name, rec, "fauna"); err != nil {
		return b, err
	}
	if b.Flora, err = n.intField(system, name, rec, "flora"); err != nil {
		return b, err
	}
	if b.HabRank, err = n.intField(system, name, rec, "hab_rank"); err != nil {
		return b, err
	}
	if b.PlanetLength, err = n.planetLength(system, name, rec); err != nil {
		return b, err
	}
	if b.Gravity, err = n.gravity(system, name, rec); err != nil {
		return b, err
	}

	if b.Biomes, err = n.biomes(system, name, rec); err != nil {
		return b, err
	}

	traits, err := rec.Strings("traits")
	if err != nil {
		return b, fmt.Errorf("body %s/%s: %w", system, name, err)
	}
	b.Traits = append([]string{}, traits...)
	sort.Strings(b.Traits)

	resources, err := rec.Strings("resources")
	if err != nil {
		return b, fmt.Errorf("body %s/%s: %w", system, name, err)
	}
	b.Resources = append([]string{}, resources...)
	sort.Strings(b.Resources)

	if b.Domesticable, err = n.organics(system, name, rec, "domesticable"); err != nil {
		return b, err
	}
	if b.Gatherable, err = n.organics(system, name, rec, "gatherable"); err != nil {
		return b, err
	}

	return b, nil
}

// lowered returns the named string field folded to lower case.
func (n *Normalizer) lowered(system, body string, rec survey.Record, key string) (string, error) {
	s, err := rec.String(key)
	if err != nil {
		return "", fmt.Errorf("body %s/%s: %w", system, body, err)
	}
	return strings.ToLower(s), nil
}

// intField parses a count-like integer field. JSON numbers are truncated,
// strings parsed after trimming; anything else falls back to zero with a
// warning. A missing field is an error.
func (n *Normalizer) intField(system, body string, rec survey.Record, key string) (int, error) {
	_, v, ok := rec.Lookup(key)
	if !ok {
		return 0, fmt.Errorf("body %s/%s: field %q: %w", system, body, key, survey.ErrMissing)
	}
	switch t := v.(type) {
	case float64:
		return int(t), nil
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return i, nil
		}
	}
	n.log.Warn("invalid integer value, using default",
		zap.String("system", system),
		zap.String("body", body),
		zap.String("field", key),
		zap.Any("value", v),
		zap.Int("default", 0))
	return 0, nil
}

// planetLength parses day lengths recorded as "24 hours", "86 hrs" and the
// like: the leading token must be a whole number. Everything else falls back
// to a 24 hour day with a warning.
func (n *Normalizer) planetLength(system, body string, rec survey.Record) (int, error) {
	_, v, ok := rec.Lookup("planet_length")
	if !ok {
		return 0, fmt.Errorf("body %s/%s: field %q: %w", system, body, "planet_length", survey.ErrMissing)
	}
	if s, ok := v.(string); ok {
		if fields := strings.Fields(s); len(fields) > 0 {
			if hours, err := strconv.Atoi(fields[0]); err == nil {
				return hours, nil
			}
		}
	}
	n.log.Warn("invalid planet length, using default",
		zap.String("system", system),
		zap.String("body", body),
		zap.Any("value", v),
		zap.Int("default", defaultPlanetLength))
	return defaultPlanetLength, nil
}

// gravity parses values like "1.0g" or "0.44 g". Gravity has no safe
// fallback, so a value that does not parse fails the run.
func (n *Normalizer) gravity(system, body string, rec survey.Record) (float64, error) {
	raw, err := rec.String("gravity")
	if err != nil {
		return 0, fmt.Errorf("body %s/%s: %w", system, body, err)
	}
	g, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(raw, "g", "")), 64)
	if err != nil {
		return 0, fmt.Errorf("body %s/%s: invalid gravity %q", system, body, raw)
	}
	return g, nil
}

// biomes parses entries like "Frozen Craters 25%". An entry without a
// percent sign is a biome with zero coverage; an entry whose percentage does
// not parse is dropped with a warning. Results are sorted by name.
func (n *Normalizer) biomes(system, body string, rec survey.Record) ([]galaxy.Biome, error) {
	entries, err := rec.Strings("biomes")
	if err != nil {
		return nil, fmt.Errorf("body %s/%s: %w", system, body, err)
	}
	biomes := make([]galaxy.Biome, 0, len(entries))
	for _, entry := range entries {
		if !strings.Contains(entry, "%") {
			biomes = append(biomes, galaxy.Biome{Name: entry})
			continue
		}
		fields := strings.Fields(entry)
		last := fields[len(fields)-1]
		pct, err := strconv.ParseFloat(strings.ReplaceAll(last, "%", ""), 64)
		if err != nil {
			n.log.Warn("invalid biome coverage, dropping entry",
				zap.String("system", system),
				zap.String("body", body),
				zap.String("value", entry))
			continue
		}
		biomes = append(biomes, galaxy.Biome{
			Name:     strings.Join(fields[:len(fields)-1], " "),
			Coverage: pct / 100,
		})
	}
	sort.SliceStable(biomes, func(i, j int) bool { return biomes[i].Name < biomes[j].Name })
	return biomes, nil
}

// organics parses entries like "Void Sloth (Argon)", splitting organism from
// yielded resource on the first parenthesis. Results are sorted by organism
// name.
func (n *Normalizer) organics(system, body string, rec survey.Record, key string) ([]galaxy.OrganicResource, error) {
	entries, err := rec.Strings(key)
	if err != nil {
		return nil, fmt.Errorf("body %s/%s: %w", system, body, err)
	}
	organics := make([]galaxy.OrganicResource, 0, len(entries))
	for _, entry := range entries {
		organics = append(organics, parseOrganic(entry))
	}
	sort.SliceStable(organics, func(i, j int) bool { return organics[i].Name < organics[j].Name })
	return organics, nil
}

func parseOrganic(entry string) galaxy.OrganicResource {
	name, rest, found := strings.Cut(entry, "(")
	if !found {
		return galaxy.OrganicResource{Name: strings.TrimSpace(entry)}
	}
	return galaxy.OrganicResource{
		Name:     strings.TrimSpace(name),
		Resource: strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), ")")),
	}
}
