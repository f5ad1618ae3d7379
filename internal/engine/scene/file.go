package scene

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/scenekit/internal/config"
	"github.com/Faultbox/scenekit/pkg/math"
)

// sceneFile is the on-disk YAML layout of a scene.
type sceneFile struct {
	Objects []sceneFileObject `yaml:"objects"`
}

type sceneFileObject struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name,omitempty"`
	Mesh     string       `yaml:"mesh,omitempty"`
	Hidden   bool         `yaml:"hidden,omitempty"`
	Position [3]float32   `yaml:"position"`
	Rotation [3]float32   `yaml:"rotation,omitempty"`
	Scale    *[3]float32  `yaml:"scale,omitempty"`
	Bounds   *sceneBounds `yaml:"bounds,omitempty"`
}

type sceneBounds struct {
	Min [3]float32 `yaml:"min"`
	Max [3]float32 `yaml:"max"`
}

// LoadFile reads a scene from a YAML file.
func LoadFile(path string, cfg config.SceneConfig) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}

	var doc sceneFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}

	s := New(cfg)
	for i, o := range doc.Objects {
		if o.ID == "" {
			return nil, fmt.Errorf("parse scene %s: object %d has no id", path, i)
		}
		spec := ObjectSpec{
			Position: vec3From(o.Position),
			Rotation: vec3From(o.Rotation),
			Object: &Object{
				Name:     o.Name,
				MeshPath: o.Mesh,
				Visible:  !o.Hidden,
			},
		}
		if spec.Object.Name == "" {
			spec.Object.Name = o.ID
		}
		if o.Scale != nil {
			sc := vec3From(*o.Scale)
			spec.Scale = &sc
		}
		if o.Bounds != nil {
			b := math.NewBox3(vec3From(o.Bounds.Min), vec3From(o.Bounds.Max))
			spec.LocalBounds = &b
		}
		if _, err := s.AddObject(o.ID, spec); err != nil {
			return nil, fmt.Errorf("load scene %s: %w", path, err)
		}
	}
	return s, nil
}

// SaveFile writes the scene as YAML. Objects are sorted by id so saves
// diff cleanly.
func (s *Scene) SaveFile(path string) error {
	nodes := s.index.All()
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].ID() < nodes[j].ID()
	})

	doc := sceneFile{Objects: make([]sceneFileObject, 0, len(nodes))}
	for _, n := range nodes {
		o := sceneFileObject{
			ID:       n.ID(),
			Position: arrFrom(n.Position()),
			Rotation: arrFrom(n.Rotation()),
		}
		if obj := n.Payload; obj != nil {
			if obj.Name != n.ID() {
				o.Name = obj.Name
			}
			o.Mesh = obj.MeshPath
			o.Hidden = !obj.Visible
		}
		if sc := n.Scale(); sc != (math.Vec3{X: 1, Y: 1, Z: 1}) {
			a := arrFrom(sc)
			o.Scale = &a
		}
		if lb := n.LocalBounds(); lb != math.UnitBox3() {
			o.Bounds = &sceneBounds{Min: arrFrom(lb.Min), Max: arrFrom(lb.Max)}
		}
		doc.Objects = append(doc.Objects, o)
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	return nil
}

func vec3From(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

func arrFrom(v math.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}
