package blueprint

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"

	"github.com/hexforge/hexforge/blueprint/schema"
)

// DefaultFilename is the conventional blueprint file name.
const DefaultFilename = "blueprint.yaml"

// Sentinel errors returned by loading operations.
var (
	// ErrInvalidDocument is returned when a document cannot be decoded into
	// the blueprint structure.
	ErrInvalidDocument = errors.New("blueprint: invalid document")

	// ErrIncompatibleVersion is returned when a document declares a schema
	// version outside the supported range.
	ErrIncompatibleVersion = errors.New("blueprint: incompatible schema version")
)

// LoadOptions provides options for loading blueprint documents.
type LoadOptions struct {
	// Filesystem allows injecting a custom filesystem implementation.
	// If nil, the native OS filesystem is used.
	Filesystem billy.Filesystem
	// SkipSchemaValidation disables CUE schema validation. Strict decoding
	// and the version gate still apply.
	SkipSchemaValidation bool
}

// baseOSFS is a billy.Filesystem that acts like the native filesystem:
// relative paths resolve against the working directory and absolute paths
// are honored as-is.
type baseOSFS struct {
	osfs.ChrootOS
}

//nolint:ireturn // billy.Filesystem is an interface; signature is dictated by upstream.
func (b *baseOSFS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

func (b *baseOSFS) Root() string {
	return "/"
}

// Load loads a blueprint document from the given file path.
func Load(path string) (*Document, error) {
	return LoadWithOptions(path, nil)
}

// LoadWithOptions loads a blueprint document with custom options.
func LoadWithOptions(path string, opts *LoadOptions) (*Document, error) {
	if opts == nil {
		opts = &LoadOptions{}
	}

	filesystem := opts.Filesystem
	if filesystem == nil {
		filesystem = &baseOSFS{}
	}

	source, err := util.ReadFile(filesystem, path)
	if err != nil {
		return nil, fmt.Errorf("blueprint: reading %s: %w", path, err)
	}

	return decode(path, source, opts)
}

// LoadBytes loads a blueprint document from raw YAML bytes. The name is
// used in error messages and recorded as the document source.
func LoadBytes(source []byte, name string) (*Document, error) {
	return LoadBytesWithOptions(source, name, nil)
}

// LoadBytesWithOptions loads a blueprint document from raw YAML bytes with
// custom options.
func LoadBytesWithOptions(source []byte, name string, opts *LoadOptions) (*Document, error) {
	if opts == nil {
		opts = &LoadOptions{}
	}
	return decode(name, source, opts)
}

// LoadReader loads a blueprint document from a reader. The name is used in
// error messages and recorded as the document source.
func LoadReader(reader io.Reader, name string) (*Document, error) {
	return LoadReaderWithOptions(reader, name, nil)
}

// LoadReaderWithOptions loads a blueprint document from a reader with
// custom options.
func LoadReaderWithOptions(reader io.Reader, name string, opts *LoadOptions) (*Document, error) {
	if opts == nil {
		opts = &LoadOptions{}
	}

	source, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("blueprint: reading %s: %w", name, err)
	}

	return decode(name, source, opts)
}

// decode runs the loading pipeline on raw document bytes: schema
// validation, strict decoding, then the version gate.
func decode(name string, source []byte, opts *LoadOptions) (*Document, error) {
	if !opts.SkipSchemaValidation {
		if err := schema.ValidateYAML(name, source); err != nil {
			return nil, fmt.Errorf("blueprint: %s: %w", name, err)
		}
	}

	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(source))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s is empty", ErrInvalidDocument, name)
		}
		return nil, fmt.Errorf("%w: decoding %s: %s", ErrInvalidDocument, name, err)
	}

	compatible, err := schema.IsCompatible(doc.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidDocument, name, err)
	}
	if !compatible {
		return nil, fmt.Errorf("%w: %s declares version %s, supported range is ^%s",
			ErrIncompatibleVersion, name, doc.Version, schema.SchemaVersion)
	}

	doc.Source = name
	doc.Digest = fmt.Sprintf("sha256:%x", sha256.Sum256(source))
	return &doc, nil
}
