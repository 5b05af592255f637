package modelstore

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/hsnony97-cyber/Load-Ext/internal/model"
)

// raw is one undecoded tagged entity.
type raw interface {
	decode(v any) error
}

type jsonRaw json.RawMessage

func (r jsonRaw) decode(v any) error { return json.Unmarshal(r, v) }

type yamlRaw struct{ node *yaml.Node }

func (r yamlRaw) decode(v any) error { return r.node.Decode(v) }

type jsonDump struct {
	model.Model
	Elements   []json.RawMessage `json:"elements"`
	Properties []json.RawMessage `json:"properties"`
	Materials  []json.RawMessage `json:"materials"`
}

type yamlDump struct {
	model.Model `yaml:",inline"`
	Elements    []yaml.Node `yaml:"elements"`
	Properties  []yaml.Node `yaml:"properties"`
	Materials   []yaml.Node `yaml:"materials"`
}

// DecodeJSON decodes a JSON model dump.
func DecodeJSON(data []byte) (*model.Model, error) {
	var d jsonDump
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	conv := func(in []json.RawMessage) []raw {
		out := make([]raw, len(in))
		for i, r := range in {
			out[i] = jsonRaw(r)
		}
		return out
	}
	return assemble(&d.Model, conv(d.Elements), conv(d.Properties), conv(d.Materials))
}

// DecodeYAML decodes a YAML model dump.
func DecodeYAML(data []byte) (*model.Model, error) {
	var d yamlDump
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	conv := func(in []yaml.Node) []raw {
		out := make([]raw, len(in))
		for i := range in {
			out[i] = yamlRaw{node: &in[i]}
		}
		return out
	}
	return assemble(&d.Model, conv(d.Elements), conv(d.Properties), conv(d.Materials))
}

func assemble(m *model.Model, elems, props, mats []raw) (*model.Model, error) {
	var err error
	if m.Elements, err = decodeAll(elems, elementTypes, "element"); err != nil {
		return nil, err
	}
	if m.Properties, err = decodeAll(props, propertyTypes, "property"); err != nil {
		return nil, err
	}
	if m.Materials, err = decodeAll(mats, materialTypes, "material"); err != nil {
		return nil, err
	}
	return m, nil
}

// tag is the discriminator and identifier of a tagged entity.
type tag struct {
	Type string `json:"type" yaml:"type"`
	EID  int64  `json:"eid" yaml:"eid"`
	PID  int64  `json:"pid" yaml:"pid"`
	MID  int64  `json:"mid" yaml:"mid"`
}

func (t tag) id() int64 {
	switch {
	case t.EID != 0:
		return t.EID
	case t.PID != 0:
		return t.PID
	default:
		return t.MID
	}
}

func decodeAll[I any](in []raw, types map[string]func(raw) (I, error), what string) ([]I, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]I, 0, len(in))
	for i, r := range in {
		var t tag
		if err := r.decode(&t); err != nil {
			return nil, fmt.Errorf("%s %d: %w", what, i, err)
		}
		name := strings.ToUpper(strings.TrimSpace(t.Type))
		if name == "" {
			return nil, fmt.Errorf("%s %d: missing type", what, i)
		}
		fn, ok := types[name]
		if !ok {
			out = append(out, any(model.Unsupported{Type: name, ID: t.id()}).(I))
			continue
		}
		v, err := fn(r)
		if err != nil {
			return nil, fmt.Errorf("%s %d (%s): %w", what, i, name, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func as[T, I any](r raw) (I, error) {
	var v T
	if err := r.decode(&v); err != nil {
		var zero I
		return zero, err
	}
	return any(v).(I), nil
}

func solid(wrap func(model.Solid) model.Element) func(raw) (model.Element, error) {
	return func(r raw) (model.Element, error) {
		var s model.Solid
		if err := r.decode(&s); err != nil {
			return nil, err
		}
		return wrap(s), nil
	}
}

var elementTypes = map[string]func(raw) (model.Element, error){
	"CQUAD4": as[model.CQuad4, model.Element],
	"CTRIA3": as[model.CTria3, model.Element],
	"CBAR":   as[model.CBar, model.Element],
	"CBEAM":  as[model.CBeam, model.Element],
	"CROD":   as[model.CRod, model.Element],
	"CONROD": as[model.Conrod, model.Element],
	"CBUSH":  as[model.CBush, model.Element],
	"CHEXA":  solid(func(s model.Solid) model.Element { return model.CHexa{Solid: s} }),
	"CPENTA": solid(func(s model.Solid) model.Element { return model.CPenta{Solid: s} }),
	"CTETRA": solid(func(s model.Solid) model.Element { return model.CTetra{Solid: s} }),
}

var propertyTypes = map[string]func(raw) (model.Property, error){
	"PSHELL": as[model.PShell, model.Property],
	"PCOMP":  as[model.PComp, model.Property],
	"PROD":   as[model.PRod, model.Property],
	"PBAR":   as[model.PBar, model.Property],
	"PBUSH":  as[model.PBush, model.Property],
	"PSOLID": as[model.PSolid, model.Property],
}

var materialTypes = map[string]func(raw) (model.Material, error){
	"MAT1": as[model.Mat1, model.Material],
	"MAT2": as[model.Mat2, model.Material],
	"MAT8": as[model.Mat8, model.Material],
}
