package pandoccmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// PresetStorageKey is the single key all presets are stored under.
const PresetStorageKey = "pandoc-presets"

// KeyValueStore is the persistence a PresetStore needs.
// Get reports ok=false for a missing key.
type KeyValueStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// PresetStore saves named settings as one JSON object
// {name: {settingID: value}} under PresetStorageKey.
// Stored data that does not parse reads as an empty store.
type PresetStore struct {
	kv KeyValueStore
}

// NewPresetStore returns a store persisting through kv.
func NewPresetStore(kv KeyValueStore) *PresetStore {
	return &PresetStore{kv: kv}
}

// Save stores the settings of s under name, replacing any preset with
// the same name.
func (p *PresetStore) Save(name string, s Snapshot) error {
	name, err := presetName(name)
	if err != nil {
		return err
	}
	all, err := p.readAll()
	if err != nil {
		return err
	}
	all[name] = s.Values()
	return p.writeAll(all)
}

// Load returns the settings saved under name. Keys outside SettingIDs are
// dropped. ok is false when no such preset exists.
func (p *PresetStore) Load(name string) (values Values, ok bool, err error) {
	name, err = presetName(name)
	if err != nil {
		return nil, false, err
	}
	all, err := p.readAll()
	if err != nil {
		return nil, false, err
	}
	v, ok := all[name]
	if !ok {
		return nil, false, nil
	}
	return v.Restrict(), true, nil
}

// Delete removes the preset. It returns ErrPresetNotFound when name is not
// stored.
func (p *PresetStore) Delete(name string) error {
	name, err := presetName(name)
	if err != nil {
		return err
	}
	all, err := p.readAll()
	if err != nil {
		return err
	}
	if _, ok := all[name]; !ok {
		return fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	delete(all, name)
	return p.writeAll(all)
}

// List returns the preset names in sorted order.
func (p *PresetStore) List() ([]string, error) {
	all, err := p.readAll()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (p *PresetStore) readAll() (map[string]Values, error) {
	raw, ok, err := p.kv.Get(PresetStorageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPresetStore, err)
	}
	all := map[string]Values{}
	if !ok || raw == "" {
		return all, nil
	}
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		return map[string]Values{}, nil
	}
	// A preset stored as null decodes to a nil map.
	for name, v := range all {
		if v == nil {
			all[name] = Values{}
		}
	}
	return all, nil
}

func (p *PresetStore) writeAll(all map[string]Values) error {
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("%w: encoding presets: %v", ErrPresetStore, err)
	}
	if err := p.kv.Set(PresetStorageKey, string(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrPresetStore, err)
	}
	return nil
}

func presetName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyPresetName
	}
	return name, nil
}
