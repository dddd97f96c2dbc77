package encodings

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed encodings.yaml
var tableYAML []byte

// named holds the embedded named-encoding table. It is read-only after init.
var named = mustLoadTable(tableYAML)

type tableFile struct {
	Encodings []Info `yaml:"encodings"`
}

// loadTable decodes and validates a named-encoding table.
func loadTable(data []byte) (map[string]Info, error) {
	var tf tableFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse encoding table: %w", err)
	}

	table := make(map[string]Info, len(tf.Encodings))
	for i, info := range tf.Encodings {
		if info.Name == "" {
			return nil, fmt.Errorf("entry %d: missing name", i)
		}
		if _, dup := table[info.Name]; dup {
			return nil, fmt.Errorf("entry %q: duplicate name", info.Name)
		}
		if genericPattern.MatchString(info.Name) {
			return nil, fmt.Errorf("entry %q: generic names must not be listed", info.Name)
		}
		if info.Channels <= 0 {
			return nil, fmt.Errorf("entry %q: channels must be positive, got %d", info.Name, info.Channels)
		}
		switch info.BitDepth {
		case 8, 16, 32, 64:
		default:
			return nil, fmt.Errorf("entry %q: unsupported bit depth %d", info.Name, info.BitDepth)
		}
		switch info.Kind {
		case Unsigned, Signed, Float:
		default:
			return nil, fmt.Errorf("entry %q: unknown kind %q", info.Name, info.Kind)
		}
		switch info.Family {
		case FamilyColor, FamilyMono, FamilyBayer, FamilyYUV:
		default:
			return nil, fmt.Errorf("entry %q: invalid family %q", info.Name, info.Family)
		}
		table[info.Name] = info
	}
	return table, nil
}

func mustLoadTable(data []byte) map[string]Info {
	table, err := loadTable(data)
	if err != nil {
		panic(fmt.Sprintf("encodings: invalid embedded table: %v", err))
	}
	return table
}

// Named returns the named encodings sorted by name.
//
// The returned slice is a copy and may be modified by the caller.
func Named() []Info {
	out := make([]Info, 0, len(named))
	for _, info := range named {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
