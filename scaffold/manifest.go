package scaffold

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"

	"github.com/hexforge/hexforge/blueprint/schema"
	"github.com/hexforge/hexforge/model"
)

// ManifestPath is where the generation manifest lives inside a generated
// project, relative to the project root.
const ManifestPath = ".hexforge/manifest.yaml"

// Manifest records one generation run so successive runs over the same
// tree stay diffable and attributable.
type Manifest struct {
	// Run is the ULID minted for the generation run.
	Run string `yaml:"run"`
	// GeneratedAt is the UTC completion time of the run.
	GeneratedAt time.Time `yaml:"generatedAt"`
	// SchemaVersion is the blueprint schema the generator understood.
	SchemaVersion string `yaml:"schemaVersion"`
	// Module is the generated module name.
	Module string `yaml:"module"`
	// BlueprintDigest is the digest of the blueprint document, when known.
	BlueprintDigest string `yaml:"blueprintDigest,omitempty"`
	// Files lists every written path relative to the project root, in
	// write order. The manifest itself is not listed.
	Files []string `yaml:"files"`
}

// newManifest assembles the manifest for one run.
func newManifest(m *model.ResolvedModel, digest string, files []File) *Manifest {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	return &Manifest{
		Run:             newRunID(),
		GeneratedAt:     time.Now().UTC(),
		SchemaVersion:   schema.SchemaVersion,
		Module:          m.Module,
		BlueprintDigest: digest,
		Files:           paths,
	}
}

// newRunID mints a ULID for one generation run.
func newRunID() string {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(src, 0)).String()
}

// writeManifest encodes and writes the manifest into the generated tree.
func (s *Scaffolder) writeManifest(m *Manifest) error {
	body, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("scaffold: encode manifest: %w", err)
	}
	return s.writeFile(File{Path: ManifestPath, Content: body})
}
