package resource

import (
	"encoding/csv"
	"encoding/gob"
	"encoding/json"
	"io"
	"sync"

	"gopkg.in/yaml.v3"
)

func init() {
	gob.Register(map[string]any{})
	gob.Register([]any{})
}

// Parser turns the raw bytes of a resource into a value.
type Parser func(r io.Reader) (any, error)

// Parsers maps mimetypes to parsers. Safe for concurrent use.
type Parsers struct {
	mu      sync.RWMutex
	parsers map[string]Parser
}

// NewParsers creates an empty parser registry.
func NewParsers() *Parsers {
	return &Parsers{parsers: make(map[string]Parser)}
}

// Add binds a parser to a mimetype, replacing any previous binding.
func (p *Parsers) Add(mimetype string, fn Parser) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.parsers[mimetype] = fn
}

// Remove drops the parser bound to a mimetype.
func (p *Parsers) Remove(mimetype string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.parsers, mimetype)
}

// Get returns the parser bound to a mimetype.
func (p *Parsers) Get(mimetype string) (Parser, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	fn, ok := p.parsers[mimetype]
	return fn, ok
}

// Parse applies the parser bound to mimetype. Unknown mimetypes fall back to
// IdentityParser so binary payloads survive untouched.
func (p *Parsers) Parse(mimetype string, r io.Reader) (any, error) {
	fn, ok := p.Get(mimetype)
	if !ok {
		fn = IdentityParser
	}
	return fn(r)
}

// JSONParser decodes a JSON document. Whole numbers come back as int64
// rather than float64.
func JSONParser(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return normalizeJSON(v), nil
}

func normalizeJSON(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeJSON(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalizeJSON(e)
		}
		return t
	default:
		return v
	}
}

// YAMLParser decodes a YAML document.
func YAMLParser(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// CSVParser reads all records as [][]string.
func CSVParser(r io.Reader) (any, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	return records, nil
}

// TextParser reads the whole payload as a string.
func TextParser(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// GobParser decodes a stream written by EncodeGob. Concrete types inside the
// value must be registered with gob.Register on both sides.
func GobParser(r io.Reader) (any, error) {
	var v any
	if err := gob.NewDecoder(r).Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// EncodeGob writes v in the format GobParser reads.
func EncodeGob(w io.Writer, v any) error {
	return gob.NewEncoder(w).Encode(&v)
}

// IdentityParser returns the raw payload bytes.
func IdentityParser(r io.Reader) (any, error) {
	return io.ReadAll(r)
}

// DefaultParsers serves Load calls that do not bring their own registry.
var DefaultParsers = func() *Parsers {
	p := NewParsers()
	p.Add("application/json", JSONParser)
	p.Add("application/yaml", YAMLParser)
	p.Add("text/csv", CSVParser)
	p.Add("text/plain", TextParser)
	p.Add("application/gob", GobParser)
	p.Add("application/octet-stream", IdentityParser)
	return p
}()

// Register binds a parser to a mimetype in DefaultParsers and maps the given
// extensions to it in DefaultMimeTable.
func Register(mimetype string, fn Parser, exts ...string) {
	DefaultParsers.Add(mimetype, fn)
	for _, ext := range exts {
		DefaultMimeTable.Add(ext, mimetype)
	}
}
