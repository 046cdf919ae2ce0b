package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"

	"github.com/chunksplit/chunksplit/internal/chunker"
	"github.com/chunksplit/chunksplit/internal/lib"
)

// manifestSchema constrains the shape of a manifest file before it is
// unmarshaled into Go structs: every unit needs a kind, an ident and a
// non-negative size.
const manifestSchema = `{
	"type": "object",
	"required": ["units"],
	"properties": {
		"units": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["kind", "ident", "size"],
				"properties": {
					"kind": {"type": "string", "minLength": 1},
					"ident": {"type": "string", "minLength": 1},
					"size": {"type": "integer", "minimum": 0},
					"async": {"type": "boolean"},
					"payload_path": {"type": "string"}
				}
			}
		}
	}
}`

var manifestSchemaCompiled = func() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(manifestSchema))
	if err != nil {
		panic(fmt.Sprintf("manifest schema failed to compile: %v", err))
	}
	return schema
}()

// manifestUnit is the on-disk shape of one compiled unit in a manifest file.
type manifestUnit struct {
	Kind        string          `json:"kind"`
	Ident       string          `json:"ident"`
	Size        int             `json:"size"`
	Async       bool            `json:"async,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	PayloadPath string          `json:"payload_path,omitempty"`
}

type manifestFile struct {
	Units []manifestUnit `json:"units"`
}

// jsonItem is the reference chunker.Item backing one manifest unit.
type jsonItem struct {
	kind  *jsonKind
	ident string
	size  int
}

func (i *jsonItem) ResolveKind(ctx context.Context) (chunker.Kind, error) { return i.kind, nil }

func (i *jsonItem) Ident(ctx context.Context) (string, error) { return i.ident, nil }

// jsonKind is the reference chunker.Kind implementation for manifest-driven
// runs. The manifest loader constructs exactly one *jsonKind per distinct
// kind string, so Kind identity comparisons inside the partitioner line up
// with the manifest's own kind names.
type jsonKind struct {
	name string
}

func (k *jsonKind) Name(ctx context.Context) (string, error) { return k.name, nil }

func (k *jsonKind) ItemSize(ctx context.Context, item chunker.Item, asyncInfo any) (int, error) {
	ji, ok := item.(*jsonItem)
	if !ok {
		return 0, fmt.Errorf("jsonKind.ItemSize: unexpected item type %T", item)
	}
	return ji.size, nil
}

// JSONChunkHandle is the ChunkHandle produced by jsonKind.MakeChunk: the
// members of one emitted chunk, keyed by ident, for serialization to
// plan.json.
type JSONChunkHandle struct {
	Kind      string   `json:"kind"`
	Idents    []string `json:"idents"`
	TotalSize int      `json:"total_size"`
}

func (k *jsonKind) MakeChunk(ctx context.Context, members []chunker.Member, sideRefs chunker.SideRefs) (chunker.ChunkHandle, error) {
	handle := &JSONChunkHandle{Kind: k.name}
	for _, m := range members {
		ji, ok := m.Payload.(*jsonItem)
		if !ok {
			return nil, fmt.Errorf("jsonKind.MakeChunk: unexpected item type %T", m.Payload)
		}
		handle.Idents = append(handle.Idents, ji.ident)
		handle.TotalSize += ji.size
	}
	return handle, nil
}

// jsonSideRefsSource resolves the empty side-refs handle for manifest-driven
// runs: plain nil, since jsonKind.MakeChunk never inspects it.
type jsonSideRefsSource struct{}

func (jsonSideRefsSource) Empty(ctx context.Context) (chunker.SideRefs, error) { return nil, nil }

// LoadManifest reads a manifest file and returns the members and the
// sideRefs source a MakeChunks call needs, plus the total unit count.
func LoadManifest(path string) ([]chunker.Member, chunker.SideRefsSource, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, 0, lib.ErrFileNotFound(path)
		}
		return nil, nil, 0, lib.WrapError(lib.CategoryFileSystem, "failed to read manifest", err)
	}

	result, err := manifestSchemaCompiled.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, nil, 0, lib.ErrInvalidManifest(path, err)
	}
	if !result.Valid() {
		return nil, nil, 0, lib.ErrInvalidManifest(path, fmt.Errorf("%s", result.Errors()[0].String()))
	}

	var mf manifestFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, nil, 0, lib.ErrInvalidManifest(path, err)
	}

	manifestDir := filepath.Dir(path)
	kinds := make(map[string]*jsonKind)
	members := make([]chunker.Member, 0, len(mf.Units))

	for _, u := range mf.Units {
		if u.Kind == "" || u.Ident == "" {
			return nil, nil, 0, lib.ErrInvalidManifest(path, fmt.Errorf("unit missing kind or ident"))
		}
		if u.PayloadPath != "" {
			if err := lib.ValidatePayloadPath(u.PayloadPath); err != nil {
				return nil, nil, 0, lib.ErrUnsafeManifestPayloadPath(filepath.Join(manifestDir, u.PayloadPath))
			}
		}

		k, ok := kinds[u.Kind]
		if !ok {
			k = &jsonKind{name: u.Kind}
			kinds[u.Kind] = k
		}

		var asyncInfo any
		if u.Async {
			asyncInfo = true
		}

		members = append(members, chunker.Member{
			Payload:   &jsonItem{kind: k, ident: u.Ident, size: u.Size},
			AsyncInfo: asyncInfo,
		})
	}

	return members, jsonSideRefsSource{}, len(mf.Units), nil
}
