package step

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/formlabs-oss/stepmesh/internal/parallel"
)

// File is the decoded entity graph: a flat, read-only vector indexed by
// STEP instance id. A nil slot means the id was never assigned (a gap
// in the numbering) or its block failed to parse.
type File struct {
	Entities []Entity
}

// At returns the entity at id, or nil if id is out of range or unset.
func (f *File) At(id int) Entity {
	if id < 0 || id >= len(f.Entities) {
		return nil
	}
	return f.Entities[id]
}

// Decode parses a raw ISO-10303-21 exchange file into a File. Parsing
// within the DATA section is fanned out over a worker pool: each block
// is independent and writes its (id, Entity) pair into its own
// pre-sized slot, so no locking is needed to assemble the result.
func Decode(data []byte) (*File, error) {
	flat := StripFlatten(data)
	blocks := IntoBlocks(flat)

	dataStart, dataEnd := -1, -1
	for i, b := range blocks {
		if b == "DATA;" {
			dataStart = i + 1
			break
		}
	}
	if dataStart < 0 {
		return nil, ErrNoDataSection
	}
	dataEnd = len(blocks)
	for i := dataStart; i < len(blocks); i++ {
		if blocks[i] == "ENDSEC;" {
			dataEnd = i
			break
		}
	}
	section := blocks[dataStart:dataEnd]

	type parsed struct {
		id  int
		ent Entity
	}
	results := make([]parsed, len(section))
	errs := make([]error, len(section))

	pool := parallel.NewWorkerPool(0)
	defer pool.Close()

	work := make([]func(), len(section))
	for i, block := range section {
		i, block := i, block
		work[i] = func() {
			id, ent, err := parseBlock(block)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = parsed{id: id, ent: ent}
		}
	}
	pool.ExecuteAll(work)

	maxID := -1
	for _, r := range results {
		if r.ent != nil && r.id > maxID {
			maxID = r.id
		}
	}
	out := &File{Entities: make([]Entity, maxID+1)}
	for i, r := range results {
		if errs[i] != nil || r.ent == nil {
			continue
		}
		out.Entities[r.id] = r.ent
	}
	return out, nil
}

// parseBlock parses one "#id=...;" block into its id and Entity.
func parseBlock(block string) (int, Entity, error) {
	s := strings.TrimSuffix(block, ";")
	if len(s) == 0 || s[0] != '#' {
		return 0, nil, &BlockParseError{Block: block, Reason: "does not start with '#'"}
	}
	eq := strings.IndexByte(s, '=')
	if eq < 0 {
		return 0, nil, &BlockParseError{Block: block, Reason: "missing '='"}
	}
	id, err := strconv.Atoi(s[1:eq])
	if err != nil {
		return 0, nil, &BlockParseError{Block: block, Reason: "malformed id"}
	}
	rest := s[eq+1:]

	var ent Entity
	if strings.HasPrefix(rest, "(") {
		ent, err = parseComplexInstance(rest)
	} else {
		ent, err = parseSimpleInstance(rest)
	}
	if err != nil {
		return 0, nil, &BlockParseError{Block: block, Reason: err.Error()}
	}
	return id, ent, nil
}

// parseSimpleInstance parses "KEYWORD(args...)" into an Entity.
func parseSimpleInstance(s string) (Entity, error) {
	v, rest, err := parseKeywordCall(s)
	if err != nil {
		return nil, err
	}
	if rest != "" {
		return nil, fmt.Errorf("trailing data %q after simple instance", rest)
	}
	kw := v.(keywordValue)
	return buildEntity(kw.name, kw.args)
}

// parseComplexInstance parses a sequence of "KEYWORD(args)KEYWORD(args)..."
// groups wrapped in one outer pair of parens (an AP214 complex entity,
// used for rational B-splines and assembly transform edges), merging
// them into a single Entity.
func parseComplexInstance(s string) (Entity, error) {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return nil, fmt.Errorf("malformed complex instance %q", s)
	}
	inner := s[1 : len(s)-1]
	groups := map[string][]value{}
	order := []string{}
	for inner != "" {
		v, next, err := parseKeywordCall(inner)
		if err != nil {
			return nil, err
		}
		kw := v.(keywordValue)
		groups[kw.name] = kw.args
		order = append(order, kw.name)
		inner = next
	}
	return buildComplexEntity(order, groups)
}
