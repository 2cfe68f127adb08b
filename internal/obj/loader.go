package obj

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"Tracer3D/internal/logger"
	"Tracer3D/internal/math3d"
	"go.uber.org/zap"
)

// LoadError wraps the path of the OBJ/MTL file being parsed and the
// underlying cause, so that every parse/IO failure surfaces as a single
// opaque "file error" kind to callers while still preserving the root
// cause for errors.Is/errors.As.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("obj: %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ErrMixedFaceAttributes is returned (wrapped in a LoadError) when a
// face mixes vertices that carry a texture/normal index with vertices
// that omit it — texture/normal presence must be uniform across all
// of a face's vertices.
var ErrMixedFaceAttributes = errors.New("face mixes present and absent texture/normal indices")

// ErrUnknownMaterial is returned when a face references a material name
// via usemtl that was never defined by a loaded MTL file.
var ErrUnknownMaterial = errors.New("usemtl references an unknown material")

type faceVertex struct {
	v, vt, vn int // 0-based; -1 means absent
}

type mtlEntry struct {
	material Material
	texture  *Map
}

// LoadOBJ parses a Wavefront OBJ file (and any MTL files it references
// via mtllib) into an authored Mesh. Scale defaults to (1,1,1), matching
// the mesh's own default so an unscaled mesh renders at authored size.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	dir := filepath.Dir(path)

	var positions []math3d.Vec3
	var texcoords []math3d.Vec3
	var normals []math3d.Vec3

	materials := map[string]mtlEntry{}
	textureCache := map[string]*Map{}
	currentMaterial := ""

	var triangles []Triangle

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:], 3)
			if err != nil {
				return nil, &LoadError{Path: path, Err: fmt.Errorf("line %d: %w", lineNo, err)}
			}
			positions = append(positions, v)

		case "vt":
			v, err := parseVec3(fields[1:], 2)
			if err != nil {
				return nil, &LoadError{Path: path, Err: fmt.Errorf("line %d: %w", lineNo, err)}
			}
			texcoords = append(texcoords, v)

		case "vn":
			v, err := parseVec3(fields[1:], 3)
			if err != nil {
				return nil, &LoadError{Path: path, Err: fmt.Errorf("line %d: %w", lineNo, err)}
			}
			// Vertex normals are negated upon ingestion to match the
			// sign convention the shading code expects them in.
			normals = append(normals, v.Negate())

		case "usemtl":
			if len(fields) < 2 {
				continue
			}
			currentMaterial = fields[1]

		case "mtllib":
			if len(fields) < 2 {
				continue
			}
			mtlPath := filepath.Join(dir, fields[1])
			loaded, err := loadMTL(mtlPath, textureCache)
			if err != nil {
				return nil, &LoadError{Path: path, Err: err}
			}
			for name, entry := range loaded {
				materials[name] = entry
			}

		case "f":
			if len(fields) < 4 {
				continue
			}
			faceTriangles, err := parseFace(fields[1:])
			if err != nil {
				return nil, &LoadError{Path: path, Err: fmt.Errorf("line %d: %w", lineNo, err)}
			}

			var entry mtlEntry
			if currentMaterial != "" {
				e, ok := materials[currentMaterial]
				if !ok {
					return nil, &LoadError{Path: path, Err: fmt.Errorf("line %d: %q: %w", lineNo, currentMaterial, ErrUnknownMaterial)}
				}
				entry = e
			} else {
				entry = mtlEntry{material: DefaultMaterial()}
			}

			for _, fv := range faceTriangles {
				tri, err := buildTriangle(fv, positions, texcoords, normals, entry)
				if err != nil {
					return nil, &LoadError{Path: path, Err: fmt.Errorf("line %d: %w", lineNo, err)}
				}
				triangles = append(triangles, tri)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	logger.Log.Debug("loaded obj",
		zap.String("path", path),
		zap.Int("triangles", len(triangles)),
		zap.Int("materials", len(materials)),
	)

	mesh := NewMesh()
	mesh.Triangles = triangles
	mesh.Maps = textureCache
	return mesh, nil
}

func parseVec3(parts []string, want int) (math3d.Vec3, error) {
	if len(parts) < want {
		return math3d.Vec3{}, fmt.Errorf("expected %d numeric fields, got %d", want, len(parts))
	}
	var vals [3]float64
	for i := 0; i < want && i < 3; i++ {
		f, err := strconv.ParseFloat(parts[i], 64)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("invalid numeric value %q: %w", parts[i], err)
		}
		vals[i] = f
	}
	return math3d.V3(vals[0], vals[1], vals[2]), nil
}

// parseFace tokenizes a face's vertex references and fan-triangulates
// polygons with more than 3 vertices (f a b c d -> (a,b,c),(a,c,d),...),
// matching the teacher's n-gon handling.
func parseFace(tokens []string) ([][3]faceVertex, error) {
	verts := make([]faceVertex, len(tokens))
	for i, tok := range tokens {
		fv, err := parseFaceVertex(tok)
		if err != nil {
			return nil, err
		}
		verts[i] = fv
	}
	if err := checkUniformPresence(verts); err != nil {
		return nil, err
	}

	var triangles [][3]faceVertex
	for i := 1; i+1 < len(verts); i++ {
		triangles = append(triangles, [3]faceVertex{verts[0], verts[i], verts[i+1]})
	}
	return triangles, nil
}

// checkUniformPresence enforces that vt and vn are either present on
// every vertex of the face or absent from every vertex — mixed forms
// are rejected.
func checkUniformPresence(verts []faceVertex) error {
	vtPresent := verts[0].vt >= 0
	vnPresent := verts[0].vn >= 0
	for _, v := range verts[1:] {
		if (v.vt >= 0) != vtPresent || (v.vn >= 0) != vnPresent {
			return ErrMixedFaceAttributes
		}
	}
	return nil
}

// parseFaceVertex parses one face vertex token: "v", "v/vt", "v//vn", or
// "v/vt/vn". Indices are 1-based in the file; this returns 0-based
// indices, with -1 marking an absent component.
func parseFaceVertex(tok string) (faceVertex, error) {
	parts := strings.Split(tok, "/")
	fv := faceVertex{v: -1, vt: -1, vn: -1}

	parseIdx := func(s string) (int, error) {
		if s == "" {
			return -1, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("invalid face index %q: %w", s, err)
		}
		return n - 1, nil
	}

	if len(parts) == 0 || parts[0] == "" {
		return fv, fmt.Errorf("missing vertex index in face token %q", tok)
	}
	v, err := parseIdx(parts[0])
	if err != nil {
		return fv, err
	}
	fv.v = v

	if len(parts) > 1 {
		vt, err := parseIdx(parts[1])
		if err != nil {
			return fv, err
		}
		fv.vt = vt
	}
	if len(parts) > 2 {
		vn, err := parseIdx(parts[2])
		if err != nil {
			return fv, err
		}
		fv.vn = vn
	}
	return fv, nil
}

// buildTriangle dereferences a triangle's three face-vertex index sets
// against the position/texcoord/normal pools, optionally attaching a
// UVMap when the bound material carries a texture.
func buildTriangle(fv [3]faceVertex, positions, texcoords, normals []math3d.Vec3, entry mtlEntry) (Triangle, error) {
	tri := Triangle{Material: entry.material}

	p, err := lookupVec3("vertex", positions, fv[0].v, fv[1].v, fv[2].v)
	if err != nil {
		return Triangle{}, err
	}
	tri.P1, tri.P2, tri.P3 = p[0], p[1], p[2]

	if fv[0].vn >= 0 {
		n, err := lookupVec3("normal", normals, fv[0].vn, fv[1].vn, fv[2].vn)
		if err != nil {
			return Triangle{}, err
		}
		tri.Normals = &VertexNormals{N1: n[0], N2: n[1], N3: n[2]}
	}

	if fv[0].vt >= 0 && entry.texture != nil {
		uv, err := lookupVec3("texcoord", texcoords, fv[0].vt, fv[1].vt, fv[2].vt)
		if err != nil {
			return Triangle{}, err
		}
		tri.UVMap = &UVMap{Image: entry.texture, T1: uv[0], T2: uv[1], T3: uv[2]}
	}

	return tri, nil
}

func lookupVec3(kind string, pool []math3d.Vec3, indices ...int) ([3]math3d.Vec3, error) {
	var out [3]math3d.Vec3
	for i, idx := range indices {
		if idx < 0 || idx >= len(pool) {
			return out, fmt.Errorf("missing face %s at index %d", kind, idx+1)
		}
		out[i] = pool[idx]
	}
	return out, nil
}

// loadMTL parses an MTL file into a map of material entries keyed by
// material name. Textures referenced by map_Kd are loaded at most once
// per OBJ parse, cached by filename in textureCache (shared across every
// mtllib directive in the same OBJ file).
func loadMTL(path string, textureCache map[string]*Map) (map[string]mtlEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mtllib %q: %w", path, err)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	out := map[string]mtlEntry{}
	var currentName string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				continue
			}
			currentName = fields[1]
			out[currentName] = mtlEntry{material: DefaultMaterial()}

		case "Kd":
			if currentName == "" {
				continue
			}
			c, err := parseVec3(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("%s: invalid Kd: %w", path, err)
			}
			entry := out[currentName]
			entry.material.Colour = c
			out[currentName] = entry

		case "map_Kd":
			if currentName == "" || len(fields) < 2 {
				continue
			}
			texPath := filepath.Join(dir, fields[1])
			tex, ok := textureCache[fields[1]]
			if !ok {
				loaded, err := LoadMap(texPath)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", path, err)
				}
				tex = loaded
				textureCache[fields[1]] = tex
			}
			entry := out[currentName]
			entry.texture = tex
			out[currentName] = entry
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan mtllib %q: %w", path, err)
	}

	return out, nil
}
